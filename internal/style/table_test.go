package style

import (
	"strings"
	"testing"
)

func TestTableRenderPadsAndAligns(t *testing.T) {
	tbl := NewTable(
		Column{Name: "File", Width: 10, Align: AlignLeft},
		Column{Name: "Count", Width: 5, Align: AlignRight},
	).SetIndent("").SetHeaderSeparator(false)
	tbl.AddRow("crash.log", "3")

	out := tbl.Render()
	want := "crash.log " + " " + "    3" + "\n"
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a header and a row, got %q", out)
	}
	gotRow := lines[1] + "\n"
	if gotRow != want {
		t.Errorf("row = %q, want %q", gotRow, want)
	}
}

func TestTableRenderTruncatesOverlongValues(t *testing.T) {
	tbl := NewTable(Column{Name: "File", Width: 10, Align: AlignLeft}).
		SetIndent("").SetHeaderSeparator(false)
	tbl.AddRow("a-very-long-filename.log")

	out := tbl.Render()
	lines := strings.Split(out, "\n")
	row := lines[1]
	if !strings.HasSuffix(row, "...") {
		t.Errorf("expected truncated value to end in '...', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("expected truncated column to be exactly width 10, got %d: %q", len(row), row)
	}
}
