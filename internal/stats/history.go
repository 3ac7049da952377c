package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tprotect/internal/model"
	"github.com/verte-zerg/tprotect/internal/store"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// HistoryReport contains precomputed data for history rendering.
type HistoryReport struct {
	Runs    []model.RunSummary
	Letters []model.LetterTotal
}

// BuildHistoryReport loads recorded runs and their aggregated letter counts.
func BuildHistoryReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (HistoryReport, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return HistoryReport{}, err
	}
	letters, err := st.ListLetterTotals(ctx, runIDs(runs))
	if err != nil {
		return HistoryReport{}, err
	}
	return HistoryReport{Runs: runs, Letters: letters}, nil
}

func runIDs(runs []model.RunSummary) []string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	return ids
}

// RenderHistory prints the run table followed by the most frequent letters.
// topLetters limits the letter table; 0 prints all of them.
func RenderHistory(w io.Writer, report HistoryReport, topLetters int) error {
	if len(report.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	headers := []string{"When", "Mode", "Direction", "Source", "In", "Out", "Letters"}
	rows := make([][]string, 0, len(report.Runs))
	for _, r := range report.Runs {
		rows = append(rows, []string{
			r.CreatedAt.In(time.Local).Format(historyTimeLayout),
			r.Mode,
			string(r.Direction),
			r.Source,
			fmt.Sprintf("%d", r.InputChars),
			fmt.Sprintf("%d", r.OutputChars),
			fmt.Sprintf("%d", r.Letters),
		})
	}
	if _, err := fmt.Fprintf(w, "Runs: %d\n", len(report.Runs)); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, map[int]bool{4: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	letters := report.Letters
	if len(letters) == 0 {
		return nil
	}
	if topLetters > 0 && len(letters) > topLetters {
		letters = letters[:topLetters]
	}
	total := 0
	for _, l := range report.Letters {
		total += l.Count
	}
	letterRows := make([][]string, 0, len(letters))
	for _, l := range letters {
		letterRows = append(letterRows, []string{
			l.Letter,
			fmt.Sprintf("%d", l.Count),
			fmt.Sprintf("%.2f%%", float64(l.Count)*100/float64(total)),
		})
	}
	if _, err := fmt.Fprintln(w, "\nTop letters"); err != nil {
		return err
	}
	for _, line := range formatTable([]string{"Letter", "Count", "Share"}, letterRows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
