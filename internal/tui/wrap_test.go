package tui

import "testing"

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "hello", width: 10, want: "hello"},
		{name: "break at overflowing space", in: "hello world", width: 5, want: "hello\nworld"},
		{name: "break at earlier space", in: "a bcdef", width: 3, want: "a\nbcd\nef"},
		{name: "hard break", in: "abcdefgh", width: 3, want: "abc\ndef\ngh"},
		{name: "keeps paragraphs", in: "ab cd\nef", width: 2, want: "ab\ncd\nef"},
		{name: "wide runes", in: "日本語", width: 4, want: "日本\n語"},
		{name: "no width", in: "hello world", width: 0, want: "hello world"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapText(tc.in, tc.width); got != tc.want {
				t.Fatalf("wrapText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefghij", 6); got != "abc..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected short truncation: %q", got)
	}
	if got := truncateLine("abc", 0); got != "abc" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("a\nb\nc", 2, 2)
	if got != "a \nb " {
		t.Fatalf("unexpected fit: %q", got)
	}
	got = fitLines("a", 1, 2)
	if got != "a\n " {
		t.Fatalf("unexpected padding: %q", got)
	}
}
