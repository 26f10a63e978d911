package notion

import (
	"fmt"

	"boj-notion/internal/domain/model"
)

const (
	// MaxTextLength is the longest content a single rich text item may hold.
	MaxTextLength = 2000
	// MaxRichText is the number of rich text items accepted per block.
	MaxRichText = 100
	// MaxChildren is the number of child blocks accepted per request.
	MaxChildren = 100
)

// encodeBlocks converts blocks to API objects. Toggle children beyond
// MaxChildren are dropped and counted in the returned total.
func encodeBlocks(blocks []model.Block) ([]map[string]any, int) {
	out := make([]map[string]any, 0, len(blocks))
	dropped := 0
	for _, b := range blocks {
		encoded, n := encodeBlock(b)
		out = append(out, encoded)
		dropped += n
	}
	return out, dropped
}

func encodeBlock(b model.Block) (map[string]any, int) {
	kind := string(b.Kind)
	body := map[string]any{}
	dropped := 0

	switch b.Kind {
	case model.BlockHeading:
		level := b.Level
		if level < 1 || level > 3 {
			level = 2
		}
		kind = fmt.Sprintf("heading_%d", level)
		body["rich_text"] = encodeRichText(b.Text)
	case model.BlockCode:
		body["rich_text"] = encodeRichText(b.Text)
		body["language"] = b.Language
	case model.BlockToggle:
		body["rich_text"] = encodeRichText(b.Text)
		children := b.Children
		if len(children) > MaxChildren {
			dropped = len(children) - MaxChildren
			children = children[:MaxChildren]
		}
		encoded, n := encodeBlocks(children)
		body["children"] = encoded
		dropped += n
	case model.BlockImage:
		body["type"] = "external"
		body["external"] = map[string]string{"url": b.URL}
	default:
		body["rich_text"] = encodeRichText(b.Text)
	}

	return map[string]any{
		"object": "block",
		"type":   kind,
		kind:     body,
	}, dropped
}

// encodeRichText maps segments to rich text items. Empty payloads are
// skipped and long payloads are split into MaxTextLength pieces.
func encodeRichText(segments []model.Segment) []map[string]any {
	items := make([]map[string]any, 0, len(segments))
	for _, seg := range segments {
		for _, piece := range splitRunes(seg.Content, MaxTextLength) {
			if len(items) == MaxRichText {
				return items
			}
			items = append(items, richTextItem(seg.Kind, piece))
		}
	}
	return items
}

func richTextItem(kind model.SegmentKind, content string) map[string]any {
	switch kind {
	case model.SegmentEquation:
		return map[string]any{
			"type":     "equation",
			"equation": map[string]string{"expression": content},
		}
	case model.SegmentCode:
		return map[string]any{
			"type":        "text",
			"text":        map[string]string{"content": content},
			"annotations": map[string]bool{"code": true},
		}
	default:
		return map[string]any{
			"type": "text",
			"text": map[string]string{"content": content},
		}
	}
}

func splitRunes(s string, size int) []string {
	if s == "" {
		return nil
	}
	r := []rune(s)
	pieces := make([]string, 0, len(r)/size+1)
	for len(r) > size {
		pieces = append(pieces, string(r[:size]))
		r = r[size:]
	}
	return append(pieces, string(r))
}
