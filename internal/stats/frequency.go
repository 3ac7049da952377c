package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/tprotect/internal/frequency"
)

const (
	barFull             = "█"
	barExpected         = "│"
	minBarWidth         = 10
	barLabelWidth       = len("A 100.00% ")
	terminalWidthBackup = 80
	colorObserved       = "\x1b[36m"
	colorReset          = "\x1b[0m"
)

// FrequencyRows builds table rows for observed frequencies. With compare set,
// the English reference share of each letter is added.
func FrequencyRows(freqs []frequency.LetterFrequency, compare bool) ([]string, [][]string) {
	headers := []string{"Letter", "Count", "Share"}
	if compare {
		headers = append(headers, "English", "Delta")
	}
	rows := make([][]string, 0, len(freqs))
	for _, f := range freqs {
		row := []string{
			string(f.Letter),
			fmt.Sprintf("%d", f.Count),
			fmt.Sprintf("%.2f%%", f.Percentage),
		}
		if compare {
			expected, _ := frequency.EnglishFrequency(f.Letter)
			row = append(row,
				fmt.Sprintf("%.2f%%", expected),
				fmt.Sprintf("%+.2f", f.Percentage-expected),
			)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// RenderFrequencyTable prints observed letter frequencies.
func RenderFrequencyTable(w io.Writer, freqs []frequency.LetterFrequency, compare bool) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	total := 0
	for _, f := range freqs {
		total += f.Count
	}
	if _, err := fmt.Fprintf(w, "Letters counted: %d\n", total); err != nil {
		return err
	}
	headers, rows := FrequencyRows(freqs, compare)
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderFrequencyBars prints one bar per letter A-Z comparing the observed
// share with English; the "│" marker shows the expected share. A width of 0
// uses the terminal width.
func RenderFrequencyBars(w io.Writer, freqs []frequency.LetterFrequency, width int, useColor bool) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := BarWidthFor(width)

	cmp := frequency.Compare(freqs)
	maxPct := 0.0
	for _, c := range cmp {
		maxPct = math.Max(maxPct, math.Max(c.Observed, c.Expected))
	}
	if maxPct <= 0 {
		maxPct = 1
	}

	if _, err := fmt.Fprintln(w, "Observed vs English (│ marks expected)"); err != nil {
		return err
	}
	for _, c := range cmp {
		bar := renderBar(c.Observed, c.Expected, maxPct, barWidth)
		if useColor {
			bar = colorObserved + bar + colorReset
		}
		if _, err := fmt.Fprintf(w, "%c %6.2f%% %s\n", c.Letter, c.Observed, bar); err != nil {
			return err
		}
	}
	return nil
}

// BarWidthFor computes a bar width that fits within the total available width.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	barWidth := totalWidth - barLabelWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

func renderBar(observed, expected, maxPct float64, width int) string {
	filled := int(math.Round(observed / maxPct * float64(width)))
	marker := int(math.Round(expected / maxPct * float64(width)))
	if marker >= width {
		marker = width - 1
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == marker:
			b.WriteString(barExpected)
		case i < filled:
			b.WriteString(barFull)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
