package doctree

import "strings"

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections or pages
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content, one printed line per "\n"
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Lines flattens the tree into document reading order: a node's heading,
// then its text, then its children. Synthetic page titles are not part of
// the printed content and are skipped.
func (t *DocTree) Lines() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, n := range t.Children {
		out = n.appendLines(out)
	}
	return out
}

func (n *DocNode) appendLines(out []string) []string {
	if n.Title != "" && n.Page == 0 {
		out = append(out, n.Title)
	}
	if n.Text != "" {
		out = append(out, strings.Split(n.Text, "\n")...)
	}
	for _, c := range n.Children {
		out = c.appendLines(out)
	}
	return out
}

// Pages returns the number of paged nodes at the top level.
func (t *DocTree) Pages() int {
	n := 0
	for _, c := range t.Children {
		if c.Page > 0 {
			n++
		}
	}
	return n
}
