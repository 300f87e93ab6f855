package services

import (
	"regexp"
	"unicode"
)

var spamWords = []string{
	"fuck", "fucking", "shit", "bullshit", "bitch", "cunt",
	"porn", "porno", "nude", "nudes", "casino", "viagra", "cialis",
	"crypto giveaway", "bitcoin doubler", "forex signals",
	"scam", "phishing", "malware", "seo services", "backlinks",
}

// LeadScreen flags inquiries that look like spam. Flagged leads are still
// stored so staff can review them.
type LeadScreen struct {
	wordPatterns   []*regexp.Regexp
	urlPattern     *regexp.Regexp
	allCapsPattern *regexp.Regexp
}

func NewLeadScreen() *LeadScreen {
	ls := &LeadScreen{
		wordPatterns: make([]*regexp.Regexp, 0, len(spamWords)),
	}
	for _, word := range spamWords {
		ls.wordPatterns = append(ls.wordPatterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	ls.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ls.allCapsPattern = regexp.MustCompile(`\b[A-Z]{5,}\b`)
	return ls
}

// Check returns the reason a message is considered spam, or "" when it is
// acceptable.
func (ls *LeadScreen) Check(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range ls.wordPatterns {
		if re.MatchString(text) {
			return "banned_word"
		}
	}
	if ls.urlPattern.MatchString(text) {
		return "link"
	}
	if hasRepeatedRun(text) {
		return "repeated_characters"
	}
	if len(ls.allCapsPattern.FindAllString(text, -1)) > 4 {
		return "excessive_caps"
	}
	return ""
}

// hasRepeatedRun reports whether any non-space rune repeats eight or more
// times in a row. RE2 has no backreferences.
func hasRepeatedRun(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			prev, run = 0, 0
			continue
		}
		if r == prev {
			run++
			if run >= 8 {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}
