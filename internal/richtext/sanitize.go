package richtext

import (
	"regexp"
	"strings"
)

var (
	emphasis   = strings.NewReplacer("`", "", "**", "", "__", "")
	listMarker = regexp.MustCompile(`(?m)^[ \t]*(?:[-*]|\d+\.)[ \t]+`)
)

// Sanitize strips markdown emphasis and leading list markers from AI prose
// and trims the result. Removing one marker can expose another ("*__*"), so
// the pass repeats until nothing changes.
func Sanitize(text string) string {
	for {
		next := sanitizeOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func sanitizeOnce(text string) string {
	text = emphasis.Replace(text)
	text = listMarker.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
