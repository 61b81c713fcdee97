package stats

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestFormatTableAlignsWideRunes(t *testing.T) {
	headers := []string{"Language", "Sessions"}
	rows := [][]string{
		{"日本語", "12"},
		{"go", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	width := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		if runewidth.StringWidth(line) != width {
			t.Fatalf("misaligned line %q (want display width %d)", line, width)
		}
	}
}

func TestPadCellUsesDisplayWidth(t *testing.T) {
	// Three wide runes occupy six columns, so only two spaces fit.
	if got := padCell("日本語", 8, false); got != "日本語  " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := padCell("日本語", 8, true); got != "  日本語" {
		t.Fatalf("unexpected right-aligned padding: %q", got)
	}
}
