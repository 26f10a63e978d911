package richtext

import "strings"

const (
	imageOpen  = "[[image:"
	imageClose = "]]"
)

// ImageMarker returns the inline placeholder the scraper leaves for an image
// the assembler should render as its own block.
func ImageMarker(url string) string {
	return imageOpen + url + imageClose
}

// Fragment is either a run of text or an image reference.
type Fragment struct {
	Text     string
	ImageURL string
}

// IsImage reports whether the fragment is an image reference.
func (f Fragment) IsImage() bool { return f.ImageURL != "" }

// SplitImages cuts text at image markers. Whitespace-only text between
// markers is dropped.
func SplitImages(text string) []Fragment {
	var out []Fragment
	for {
		start := strings.Index(text, imageOpen)
		if start < 0 {
			break
		}
		end := strings.Index(text[start+len(imageOpen):], imageClose)
		if end < 0 {
			break
		}
		url := text[start+len(imageOpen) : start+len(imageOpen)+end]
		out = appendText(out, text[:start])
		if url = strings.TrimSpace(url); url != "" {
			out = append(out, Fragment{ImageURL: url})
		}
		text = text[start+len(imageOpen)+end+len(imageClose):]
	}
	return appendText(out, text)
}

func appendText(out []Fragment, text string) []Fragment {
	if strings.TrimSpace(text) == "" {
		return out
	}
	return append(out, Fragment{Text: strings.Trim(text, "\n")})
}
