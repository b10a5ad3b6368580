package services

import (
	"regexp"
	"strings"
)

var (
	scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	iframeTagRe = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
)

// SanitizeText normalizes user input: strips null bytes, collapses
// whitespace, removes script/iframe tags and truncates to maxLength.
func SanitizeText(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\x00", "")

	if len(text) > maxLength {
		text = text[:maxLength]
	}

	text = scriptTagRe.ReplaceAllString(text, "")
	text = iframeTagRe.ReplaceAllString(text, "")

	text = strings.Join(strings.Fields(text), " ")

	return strings.TrimSpace(text)
}

// SanitizeNote cleans an optional mood note. Returns nil when nothing
// survives sanitization.
func SanitizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}

	cleaned := SanitizeText(*note, 500)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// ValidMoodScore reports whether a mood score is in the accepted 1-10 range.
func ValidMoodScore(score int) bool {
	return score >= 1 && score <= 10
}
