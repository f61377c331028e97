package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_TableCellsBecomeLines(t *testing.T) {
	input := `<html><head><title>Staff Directory</title><style>td{}</style></head>
<body>
<h2>DoIT&amp;C</h2>
<table>
<tr><th>S.No</th><th>Name</th></tr>
<tr><td>1</td><td>RAM KUMAR<br>PROGRAMMER</td><td>9812345678</td></tr>
</table>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "staff.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Staff Directory" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}

	want := []string{"DoIT&C", "S.No", "Name", "1", "RAM KUMAR", "PROGRAMMER", "9812345678"}
	got := tree.Lines()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected lines %q, got %q", want, got)
	}
}

func TestHTMLParser_FilenameTitle(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("<p>hello</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", tree.Title)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "hello" {
		t.Errorf("expected a single text node, got %+v", tree.Children)
	}
}
