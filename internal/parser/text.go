package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/dirgest/internal/doctree"
)

// TextParser handles plain text files, such as pdftotext output. A form
// feed starts a new page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".txt"),
	}

	page := 1
	paged := false
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		node := &doctree.DocNode{Text: current.String()}
		if paged {
			node.Page = page
		}
		tree.Children = append(tree.Children, node)
		current.Reset()
	}

	for scanner.Scan() {
		segments := strings.Split(scanner.Text(), "\f")
		for i, line := range segments {
			if i > 0 {
				flush()
				page++
				paged = true
			}
			if strings.TrimSpace(line) == "" {
				flush()
				continue
			}
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Nodes flushed before the first form feed belong to page 1.
	if paged {
		for _, n := range tree.Children {
			if n.Page == 0 {
				n.Page = 1
			}
		}
	}

	return tree, nil
}
