package utils

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

const wordsPerMinute = 200

// Slugify converts free text into a URL-safe slug: lower-cased,
// transliterated, punctuation stripped, whitespace collapsed to hyphens.
// Input that slugs to nothing (empty, all punctuation) yields a generated
// token instead, because an empty slug is never valid.
func Slugify(text string) string {
	s := slug.Make(text)
	if s == "" {
		return "post-" + strings.ToLower(shortuuid.New())
	}
	return s
}

// PlainText strips any HTML markup from rich post content, returning the
// visible text. Content without markup passes through unchanged.
func PlainText(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	return strings.TrimSpace(doc.Text())
}

// WordCount counts whitespace-separated words in the visible text of content.
func WordCount(content string) int {
	return len(strings.Fields(PlainText(content)))
}

// ReadTime estimates reading time at 200 words per minute, rounding up,
// with a 1 minute floor. Formatted as "N min read".
func ReadTime(content string) string {
	words := WordCount(content)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Excerpt derives a short plain-text excerpt from content, cut at the last
// word boundary within maxLen with an ellipsis when truncated.
func Excerpt(content string, maxLen int) string {
	text := strings.Join(strings.Fields(PlainText(content)), " ")
	if len(text) <= maxLen {
		return text
	}
	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
