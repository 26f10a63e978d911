package model

import "strings"

// SegmentKind tags a rich text segment.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentEquation
	SegmentCode
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentEquation:
		return "equation"
	case SegmentCode:
		return "code"
	default:
		return "text"
	}
}

// Segment is one run of a formatted paragraph.
type Segment struct {
	Kind    SegmentKind
	Content string
}

func Text(content string) Segment { return Segment{Kind: SegmentText, Content: content} }
func Equation(expr string) Segment { return Segment{Kind: SegmentEquation, Content: expr} }
func CodeSpan(content string) Segment { return Segment{Kind: SegmentCode, Content: content} }

// Concat joins the payloads of segments, ignoring their kinds.
func Concat(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Content)
	}
	return b.String()
}
