package services

import (
	"regexp"
	"strings"
)

// Flag reasons recorded on comments held for moderation.
const (
	FlagInappropriateLanguage = "inappropriate_language"
	FlagLink                  = "link"
	FlagSpam                  = "spam"
)

var flaggedWords = []string{
	"fuck", "fucking", "shit", "bullshit", "asshole", "bastard", "bitch", "cunt",
	"retard", "porn", "nudes", "scam", "scammer", "phishing", "malware",
}

// ContentFilter screens user text before it reaches the moderation queue.
// It never rejects content; it only names why a moderator should look closer.
type ContentFilter struct {
	words *regexp.Regexp
	link  *regexp.Regexp
}

// maxRepeats is the longest run of one word tolerated before text reads as spam.
const maxRepeats = 4

func NewContentFilter() *ContentFilter {
	quoted := make([]string, len(flaggedWords))
	for i, w := range flaggedWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return &ContentFilter{
		words: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
		link:  regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
	}
}

// Screen returns the flag reason for text, or "" when nothing matched.
func (f *ContentFilter) Screen(text string) string {
	switch {
	case f.words.MatchString(text):
		return FlagInappropriateLanguage
	case f.link.MatchString(text):
		return FlagLink
	case repeatsWord(text):
		return FlagSpam
	}
	return ""
}

func repeatsWord(text string) bool {
	run := 0
	prev := ""
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if w == prev {
			run++
			if run > maxRepeats {
				return true
			}
			continue
		}
		prev, run = w, 1
	}
	return false
}
