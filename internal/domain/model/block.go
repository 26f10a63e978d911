package model

// BlockKind identifies the structural type of a content block.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockQuote     BlockKind = "quote"
	BlockBulleted  BlockKind = "bulleted_list_item"
	BlockCode      BlockKind = "code"
	BlockToggle    BlockKind = "toggle"
	BlockImage     BlockKind = "image"
)

// Block is one structural unit of an uploaded document.
type Block struct {
	Kind     BlockKind
	Level    int // heading level, 2 or 3
	Text     []Segment
	Language string  // code blocks only
	URL      string  // image blocks only
	Children []Block // toggle blocks only
}

// Paragraph builds a paragraph block.
func Paragraph(text []Segment) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// Heading builds a heading block with a plain text title.
func Heading(level int, title string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: []Segment{Text(title)}}
}

// Quote builds a quote block.
func Quote(text []Segment) Block {
	return Block{Kind: BlockQuote, Text: text}
}

// Bulleted builds a bulleted list item.
func Bulleted(text []Segment) Block {
	return Block{Kind: BlockBulleted, Text: text}
}

// Code builds a code block holding content verbatim.
func Code(language, content string) Block {
	return Block{Kind: BlockCode, Language: language, Text: []Segment{Text(content)}}
}

// Toggle builds a collapsible section.
func Toggle(title string, children []Block) Block {
	return Block{Kind: BlockToggle, Text: []Segment{Text(title)}, Children: children}
}

// Image builds an external image block.
func Image(url string) Block {
	return Block{Kind: BlockImage, URL: url}
}
