package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/dirgest/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings open
// sections; every other block keeps its source lines.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".md", ".markdown"),
	}

	b := newSectionBuilder(tree.Title)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			b.heading(h.Level, string(blockText(h, src)))
			continue
		}
		b.text(blockText(n, src))
	}
	b.finish(tree)

	return tree, nil
}

// blockText returns the source lines of a block. Container blocks such as
// lists contribute the lines of their children, one per line.
func blockText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.Write(bytes.TrimRight(seg.Value(src), "\r\n"))
		}
		return bytes.TrimSpace(buf.Bytes())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		t := blockText(c, src)
		if len(t) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(t)
	}
	return bytes.TrimSpace(buf.Bytes())
}

// sectionBuilder nests text under the most recent heading of a lower level.
// The HTML, DOCX and Markdown parsers share it.
type sectionBuilder struct {
	root    *doctree.DocNode
	stack   []sectionEntry
	current strings.Builder
}

type sectionEntry struct {
	node  *doctree.DocNode
	level int
}

func newSectionBuilder(title string) *sectionBuilder {
	root := &doctree.DocNode{Title: title}
	return &sectionBuilder{
		root:  root,
		stack: []sectionEntry{{node: root, level: 0}},
	}
}

func (b *sectionBuilder) flush() {
	t := strings.TrimSpace(b.current.String())
	if t != "" {
		top := b.stack[len(b.stack)-1].node
		if top.Text != "" {
			top.Text += "\n" + t
		} else {
			top.Text = t
		}
	}
	b.current.Reset()
}

func (b *sectionBuilder) heading(level int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	b.flush()
	node := &doctree.DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, sectionEntry{node: node, level: level})
}

func (b *sectionBuilder) text(t []byte) {
	t = bytes.TrimSpace(t)
	if len(t) == 0 {
		return
	}
	if b.current.Len() > 0 {
		b.current.WriteByte('\n')
	}
	b.current.Write(t)
}

func (b *sectionBuilder) finish(tree *doctree.DocTree) {
	b.flush()
	tree.Children = b.root.Children
	// Text before the first heading stays in reading order.
	if b.root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: b.root.Text}}, tree.Children...)
	}
}
