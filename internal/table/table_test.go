package table

import (
	"strings"
	"testing"
)

func TestAppendAndReadBack(t *testing.T) {
	tbl := New("Roll", "Die 1", "Die 2")
	tbl.Append("1", "3", "5")
	tbl.Append("2", "6")

	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	if tbl.Cell(0, 2) != "5" {
		t.Errorf("expected cell (0,2) to be 5, got %q", tbl.Cell(0, 2))
	}

	// Short rows are padded to header width.
	if tbl.Cell(1, 2) != "" {
		t.Errorf("expected padded empty cell, got %q", tbl.Cell(1, 2))
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	tbl := New("A")
	tbl.Append("x")

	rows := tbl.Rows()
	rows[0][0] = "mutated"

	if tbl.Cell(0, 0) != "x" {
		t.Error("mutating Rows() output leaked into the table")
	}
}

func TestRenderContainsAllCells(t *testing.T) {
	tbl := New("Face", "Count")
	tbl.Append("6", "42")

	out := tbl.Render()
	for _, want := range []string{"Face", "Count", "6", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}
}
