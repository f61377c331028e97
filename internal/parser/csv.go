package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/dirgest/internal/doctree"
)

// CSVParser handles CSV exports of directory tables. Every non-empty cell
// becomes a line, row by row, which matches how the same table reads once
// printed and converted to text.
type CSVParser struct{}

const csvBatchRows = 50

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".csv"),
	}

	for i := 0; i < len(records); i += csvBatchRows {
		end := min(i+csvBatchRows, len(records))

		var lines []string
		for _, row := range records[i:end] {
			for _, cell := range row {
				for _, l := range strings.Split(cell, "\n") {
					if l = strings.TrimSpace(l); l != "" {
						lines = append(lines, l)
					}
				}
			}
		}
		if len(lines) == 0 {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Text: strings.Join(lines, "\n"),
		})
	}

	return tree, nil
}
