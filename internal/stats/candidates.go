package stats

import (
	"fmt"
	"io"
	"math"

	"github.com/verte-zerg/tprotect/internal/frequency"
)

// CandidatePreviewWidth is the text width used when candidates go to a terminal.
const CandidatePreviewWidth = 60

// CandidateRows builds table rows for brute-force candidates. Text is folded
// to a single line and cut to previewWidth; 0 keeps it whole.
func CandidateRows(candidates []frequency.Candidate, withScore bool, previewWidth int) ([]string, [][]string) {
	headers := []string{"Shift"}
	if withScore {
		headers = append(headers, "Score")
	}
	headers = append(headers, "Text")
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		row := []string{fmt.Sprintf("%d", c.Shift)}
		if withScore {
			row = append(row, formatScore(c.Score))
		}
		row = append(row, truncate(printable(c.Text), previewWidth))
		rows = append(rows, row)
	}
	return headers, rows
}

// RenderCandidates prints brute-force candidates in the given order, cutting
// text to previewWidth; 0 prints it whole.
func RenderCandidates(w io.Writer, candidates []frequency.Candidate, withScore bool, previewWidth int) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No candidates.")
		return err
	}
	headers, rows := CandidateRows(candidates, withScore, previewWidth)
	rightAlign := map[int]bool{0: true}
	if withScore {
		rightAlign[1] = true
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatScore(score float64) string {
	if math.IsInf(score, 1) {
		return "-"
	}
	return fmt.Sprintf("%.2f", score)
}
