package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Letter", "Count", "Share"}
	rows := [][]string{
		{"E", "12", "12.70%"},
		{"Q", "3", "0.10%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Letter Count  Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "E         12 12.70%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Q          3  0.10%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Text", "N"}, [][]string{{"日本", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab   2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestPrintableAndTruncate(t *testing.T) {
	if got := printable("a\nb\tc\x00"); got != "a b c" {
		t.Fatalf("unexpected printable output: %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("unexpected truncate output: %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("expected short text unchanged, got %q", got)
	}
}
