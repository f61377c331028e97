package parser

import (
	"strings"
	"testing"
)

func TestCSVParser_CellsBecomeLines(t *testing.T) {
	input := "S.No,Name,Designation\n1,RAM KUMAR,Programmer\n2,\"SITA\nDEVI\",,extra\n"
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "staff.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "staff" {
		t.Errorf("expected title %q, got %q", "staff", tree.Title)
	}

	want := []string{"S.No", "Name", "Designation", "1", "RAM KUMAR", "Programmer", "2", "SITA", "DEVI", "extra"}
	got := tree.Lines()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected lines %q, got %q", want, got)
	}
}

func TestCSVParser_Batches(t *testing.T) {
	var b strings.Builder
	for i := 0; i < csvBatchRows+1; i++ {
		b.WriteString("x,y\n")
	}
	tree, err := (&CSVParser{}).Parse(strings.NewReader(b.String()), "big.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(tree.Children))
	}
	if len(tree.Lines()) != 2*(csvBatchRows+1) {
		t.Errorf("expected %d lines, got %d", 2*(csvBatchRows+1), len(tree.Lines()))
	}
}
