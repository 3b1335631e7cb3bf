package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pixelforge/utils"

	"github.com/gin-gonic/gin"
)

// CounterStore tracks request counts per identifier inside a fixed window.
// It is an explicit dependency rather than package state so a shared cache
// can replace the in-memory implementation in multi-instance deployments.
type CounterStore interface {
	// Hit registers one request for key and reports whether it is allowed,
	// how many requests remain in the window, and when the window resets.
	Hit(key string) (allowed bool, remaining int, reset time.Time)
}

type windowEntry struct {
	count int
	reset time.Time
}

// MemoryCounterStore is a mutex-guarded in-process CounterStore. State is
// ephemeral: a process restart clears all windows.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
}

// NewMemoryCounterStore creates a store allowing limit requests per window
// per key. A janitor goroutine sweeps expired entries so the map cannot
// grow without bound.
func NewMemoryCounterStore(limit int, window time.Duration) *MemoryCounterStore {
	store := &MemoryCounterStore{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
	}
	go func() {
		for {
			time.Sleep(window)
			store.sweep()
		}
	}()
	return store
}

// Hit implements CounterStore. The first request for a key, or the first
// after its window expired, resets the count to 1 and starts a new window.
func (s *MemoryCounterStore) Hit(key string) (bool, int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.reset) {
		entry = &windowEntry{count: 1, reset: now.Add(s.window)}
		s.entries[key] = entry
	} else {
		entry.count++
	}

	remaining := s.limit - entry.count
	if remaining < 0 {
		remaining = 0
	}
	return entry.count <= s.limit, remaining, entry.reset
}

func (s *MemoryCounterStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.reset) {
			delete(s.entries, key)
		}
	}
}

// RateLimit guards a route with the given store, keyed by client IP.
// Rejected requests get 429 with Retry-After and X-RateLimit-* headers.
func RateLimit(store CounterStore, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset := store.Hit(c.ClientIP())

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Writer.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			utils.SendJSONError(c, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter), nil)
			return
		}
		c.Next()
	}
}
