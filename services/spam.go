package services

import (
	"regexp"
	"strings"
)

// SpamVerdict is the result of classifying a contact submission.
type SpamVerdict struct {
	IsSpam bool
	Reason string
}

var (
	promoKeywords = []string{
		"viagra", "casino", "lottery", "jackpot", "crypto giveaway",
		"make money fast", "work from home", "weight loss", "free trial",
		"cheap pills", "seo services", "buy followers", "guest post",
		"backlinks", "earn $$",
	}
	urgencyPhrases = []string{
		"act now", "limited time", "urgent response", "final notice",
		"winner selected", "claim your prize", "last chance",
		"don't miss out", "immediate action required",
	}
	urlPattern      = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	capsRunPattern  = regexp.MustCompile(`[A-Z]{10,}`)
	repeatedPattern = regexp.MustCompile(`(.)\1{5,}`)
	botUAPattern    = regexp.MustCompile(`(?i)(bot\b|crawler|crawling|spider|scraper|scrapy|curl|wget|python-requests|httpclient|headless)`)
)

const (
	minMessageLength = 10
	maxTokenLength   = 50
)

// ClassifySpam applies the anti-abuse heuristics to a contact submission.
// Rules are evaluated in order and the first match wins. The verdict is
// advisory: the contact flow tags flagged submissions rather than rejecting
// them, so callers decide enforcement.
func ClassifySpam(message, honeypot, userAgent string) SpamVerdict {
	if strings.TrimSpace(honeypot) != "" {
		return SpamVerdict{IsSpam: true, Reason: "honeypot field filled"}
	}

	lower := strings.ToLower(message)
	for _, kw := range promoKeywords {
		if strings.Contains(lower, kw) {
			return SpamVerdict{IsSpam: true, Reason: "promotional keyword: " + kw}
		}
	}
	for _, phrase := range urgencyPhrases {
		if strings.Contains(lower, phrase) {
			return SpamVerdict{IsSpam: true, Reason: "urgency language: " + phrase}
		}
	}
	if urlPattern.MatchString(message) {
		return SpamVerdict{IsSpam: true, Reason: "message contains a URL"}
	}
	if capsRunPattern.MatchString(message) {
		return SpamVerdict{IsSpam: true, Reason: "long all-caps run"}
	}
	for _, token := range strings.Fields(message) {
		if len(token) >= maxTokenLength {
			return SpamVerdict{IsSpam: true, Reason: "oversized token"}
		}
	}
	if repeatedPattern.MatchString(message) {
		return SpamVerdict{IsSpam: true, Reason: "repeated character run"}
	}
	if len(strings.TrimSpace(message)) < minMessageLength {
		return SpamVerdict{IsSpam: true, Reason: "message too short"}
	}
	if botUAPattern.MatchString(userAgent) {
		return SpamVerdict{IsSpam: true, Reason: "bot user agent"}
	}

	return SpamVerdict{}
}
