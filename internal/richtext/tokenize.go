// Package richtext turns display text into rich text segments for the
// document store: inline math, code spans and plain runs.
package richtext

import (
	"strings"

	"boj-notion/internal/domain/model"
)

type delimiter struct {
	open, close string
	kind        model.SegmentKind
	multiline   bool // content may contain line breaks
	nonEmpty    bool // an empty payload does not match
}

// Candidates in priority order. At a given position the first one with a
// matching close wins.
var delimiters = []delimiter{
	{open: "```", close: "```", kind: model.SegmentCode, multiline: true},
	{open: `\(`, close: `\)`, kind: model.SegmentEquation},
	{open: "$", close: "$", kind: model.SegmentEquation, multiline: true, nonEmpty: true},
}

const lineBreaks = "\r\n\u2028\u2029"

// Tokenize splits text into plain, equation and code segments in one
// left-to-right pass. Delimiters are dropped from the output and an opener
// without a matching close stays plain text. Zero-length plain runs are
// never emitted; delimited segments are, even with an empty payload.
func Tokenize(text string) []model.Segment {
	if text == "" {
		return nil
	}

	var (
		out   []model.Segment
		start int
	)
	for i := 0; i < len(text); {
		seg, width, ok := matchAt(text, i)
		if !ok {
			// Delimiters are ASCII, so stepping bytewise never matches inside a rune.
			i++
			continue
		}
		if i > start {
			out = append(out, model.Text(text[start:i]))
		}
		out = append(out, seg)
		i += width
		start = i
	}
	if start < len(text) {
		out = append(out, model.Text(text[start:]))
	}
	return out
}

func matchAt(text string, pos int) (model.Segment, int, bool) {
	rest := text[pos:]
	for _, d := range delimiters {
		if !strings.HasPrefix(rest, d.open) {
			continue
		}
		body := rest[len(d.open):]
		end := strings.Index(body, d.close)
		if end < 0 {
			continue
		}
		content := body[:end]
		if !d.multiline && strings.ContainsAny(content, lineBreaks) {
			continue
		}
		if d.nonEmpty && content == "" {
			continue
		}
		return model.Segment{Kind: d.kind, Content: content}, len(d.open) + end + len(d.close), true
	}
	return model.Segment{}, 0, false
}
