package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/tprotect/internal/frequency"
)

func TestRenderCandidates(t *testing.T) {
	candidates := []frequency.Candidate{
		{Shift: 7, Text: "hello\nworld", Score: 12.5},
		{Shift: 12, Text: "", Score: math.Inf(1)},
	}
	var buf bytes.Buffer
	if err := RenderCandidates(&buf, candidates, true, CandidatePreviewWidth); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Shift Score Text" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "    7 12.50 hello world" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "   12     -" {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestCandidateRowsTruncates(t *testing.T) {
	_, rows := CandidateRows([]frequency.Candidate{{Shift: 1, Text: strings.Repeat("x", 20)}}, false, 8)
	if rows[0][1] != "xxxxx..." {
		t.Fatalf("unexpected preview: %q", rows[0][1])
	}
}

func TestRenderCandidatesWidth(t *testing.T) {
	long := strings.Repeat("abcdefghij", 10)
	candidates := []frequency.Candidate{{Shift: 1, Text: long}}

	var buf bytes.Buffer
	if err := RenderCandidates(&buf, candidates, false, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "    1 "+long+"\n") {
		t.Fatalf("expected full text, got %q", buf.String())
	}

	buf.Reset()
	if err := RenderCandidates(&buf, candidates, false, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "    1 abcdefg...\n") {
		t.Fatalf("expected cut text, got %q", buf.String())
	}
}

func TestRenderCandidatesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCandidates(&buf, nil, false, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No candidates.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
