package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const normalUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

func TestClassifySpam(t *testing.T) {
	cleanMessage := "We'd like to discuss a redesign of our marketing site next quarter."

	t.Run("Honeypot always wins regardless of content", func(t *testing.T) {
		verdict := ClassifySpam(cleanMessage, "http://bot.example", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "honeypot field filled", verdict.Reason)

		// Even whitespace padding does not hide a filled honeypot.
		verdict = ClassifySpam(cleanMessage, "  x  ", normalUA)
		assert.True(t, verdict.IsSpam)
	})

	t.Run("Whitespace-only honeypot is ignored", func(t *testing.T) {
		verdict := ClassifySpam(cleanMessage, "   ", normalUA)
		assert.False(t, verdict.IsSpam)
	})

	t.Run("Promotional keywords", func(t *testing.T) {
		verdict := ClassifySpam("Buy cheap pills today, best prices around", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Contains(t, verdict.Reason, "promotional keyword")
	})

	t.Run("Urgency language", func(t *testing.T) {
		verdict := ClassifySpam("Act now to claim this exclusive partnership offer", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Contains(t, verdict.Reason, "urgency language")
	})

	t.Run("Bare URLs", func(t *testing.T) {
		verdict := ClassifySpam("Check out https://spam.example/offer for details", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "message contains a URL", verdict.Reason)
	})

	t.Run("Long all-caps run", func(t *testing.T) {
		verdict := ClassifySpam("PLEASERESPOND to this message immediately", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "long all-caps run", verdict.Reason)
	})

	t.Run("Oversized single token", func(t *testing.T) {
		verdict := ClassifySpam("hello "+strings.Repeat("a1", 30)+" world, this is long enough", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "oversized token", verdict.Reason)
	})

	t.Run("Repeated character run", func(t *testing.T) {
		verdict := ClassifySpam("hellooooooo there, I have a question", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "repeated character run", verdict.Reason)
	})

	t.Run("Five-character message is always spam", func(t *testing.T) {
		verdict := ClassifySpam("hi yo", "", normalUA)
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "message too short", verdict.Reason)
	})

	t.Run("Bot user agent", func(t *testing.T) {
		verdict := ClassifySpam(cleanMessage, "", "python-requests/2.31")
		assert.True(t, verdict.IsSpam)
		assert.Equal(t, "bot user agent", verdict.Reason)

		verdict = ClassifySpam(cleanMessage, "", "Googlebot/2.1 (+http://www.google.com/bot.html)")
		assert.True(t, verdict.IsSpam)
	})

	t.Run("Clean well-formed message passes", func(t *testing.T) {
		verdict := ClassifySpam(cleanMessage, "", normalUA)
		assert.False(t, verdict.IsSpam)
		assert.Empty(t, verdict.Reason)
	})

	t.Run("Exactly ten characters is long enough", func(t *testing.T) {
		verdict := ClassifySpam("ten chars!", "", normalUA)
		assert.False(t, verdict.IsSpam)
	})
}
