package boj

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"boj-notion/internal/richtext"
)

const fence = "```"

// renderer flattens a statement subtree into display text much like the
// browser's innerText. Tables and <pre> become fenced monospace blocks so
// their line breaks survive; images become markers or links.
type renderer struct {
	base    *url.URL
	trusted map[string]struct{}

	b            strings.Builder
	pendingSpace bool
}

func newRenderer(base *url.URL, trusted map[string]struct{}) *renderer {
	return &renderer{base: base, trusted: trusted}
}

// Render returns the text of n, trimmed line by line.
func (r *renderer) Render(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(c)
	}
	lines := strings.Split(r.b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (r *renderer) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
		return
	case atom.Br:
		r.newline()
		return
	case atom.Table:
		r.fenced(tableText(n))
		return
	case atom.Pre:
		r.fenced(strings.TrimRight(textContent(n), "\n"))
		return
	case atom.Img:
		r.image(n)
		return
	}

	block := isBlock(n.DataAtom)
	if block {
		r.lineBreak()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(c)
	}
	if block {
		r.lineBreak()
	}
}

// text writes s with whitespace runs collapsed to one space.
func (r *renderer) text(s string) {
	for _, ch := range s {
		if unicode.IsSpace(ch) {
			r.pendingSpace = true
			continue
		}
		if r.pendingSpace && !r.atLineStart() {
			r.b.WriteByte(' ')
		}
		r.pendingSpace = false
		r.b.WriteRune(ch)
	}
}

func (r *renderer) newline() {
	r.b.WriteByte('\n')
	r.pendingSpace = false
}

// lineBreak ends the current line unless it is already empty.
func (r *renderer) lineBreak() {
	if !r.atLineStart() {
		r.newline()
	}
	r.pendingSpace = false
}

func (r *renderer) atLineStart() bool {
	s := r.b.String()
	return s == "" || s[len(s)-1] == '\n'
}

func (r *renderer) fenced(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	r.lineBreak()
	r.b.WriteString(fence + "\n" + content + "\n" + fence)
	r.lineBreak()
}

func (r *renderer) image(n *html.Node) {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" {
		return
	}
	ref, err := url.Parse(src)
	if err != nil {
		return
	}
	abs := r.base.ResolveReference(ref)

	if _, ok := r.trusted[strings.ToLower(abs.Hostname())]; ok {
		r.lineBreak()
		r.b.WriteString(richtext.ImageMarker(abs.String()))
		r.lineBreak()
		return
	}
	r.text("(이미지 보기: " + abs.String() + ")")
}

// tableText renders every row on its own line, cells joined by two spaces.
func tableText(table *html.Node) string {
	var rows []string
	walk(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
			return
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, strings.Join(strings.Fields(textContent(c)), " "))
			}
		}
		rows = append(rows, strings.Join(cells, "  "))
	})
	return strings.Join(rows, "\n")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Blockquote, atom.Center,
		atom.Ul, atom.Ol, atom.Li, atom.Dl, atom.Dt, atom.Dd, atom.Hr, atom.Tr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
