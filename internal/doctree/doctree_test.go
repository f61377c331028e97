package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocTreeLines(t *testing.T) {
	tree := &DocTree{
		Title: "directory",
		Children: []*DocNode{
			{Title: "Page 1", Page: 1, Text: "1\nRAM KUMAR"},
			{Title: "Page 2", Page: 2, Text: "PROGRAMMER"},
			{Title: "Jaipur", Text: "2", Children: []*DocNode{
				{Text: "SITA DEVI\n\nCLERK"},
			}},
		},
	}

	assert.Equal(t, []string{
		"1", "RAM KUMAR",
		"PROGRAMMER",
		"Jaipur", "2",
		"SITA DEVI", "", "CLERK",
	}, tree.Lines())
	assert.Equal(t, 2, tree.Pages())
}

func TestDocTreeLines_Nil(t *testing.T) {
	var tree *DocTree
	assert.Nil(t, tree.Lines())
	assert.Empty(t, (&DocTree{}).Lines())
}
