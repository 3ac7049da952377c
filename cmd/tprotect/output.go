package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tprotect/internal/frequency"
	"github.com/verte-zerg/tprotect/internal/stats"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type candidateOutput struct {
	Shift int      `json:"shift" yaml:"shift"`
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Text  string   `json:"text" yaml:"text"`
}

type letterOutput struct {
	Letter     string   `json:"letter" yaml:"letter"`
	Count      int      `json:"count" yaml:"count"`
	Percentage float64  `json:"percentage" yaml:"percentage"`
	English    *float64 `json:"english,omitempty" yaml:"english,omitempty"`
}

type analysisOutput struct {
	Letters     int            `json:"letters" yaml:"letters"`
	Frequencies []letterOutput `json:"frequencies" yaml:"frequencies"`
}

type runOutput struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Mode        string    `json:"mode" yaml:"mode"`
	Direction   string    `json:"direction" yaml:"direction"`
	Source      string    `json:"source" yaml:"source"`
	InputChars  int       `json:"input_chars" yaml:"input_chars"`
	OutputChars int       `json:"output_chars" yaml:"output_chars"`
	Letters     int       `json:"letters" yaml:"letters"`
}

type letterTotalOutput struct {
	Letter string `json:"letter" yaml:"letter"`
	Count  int    `json:"count" yaml:"count"`
}

type historyOutput struct {
	Runs    []runOutput         `json:"runs" yaml:"runs"`
	Letters []letterTotalOutput `json:"letters" yaml:"letters"`
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("invalid --format %q (use text, json or yaml)", format)
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		return validateFormat(format)
	}
	return nil
}

func newAnalysisOutput(freqs []frequency.LetterFrequency, compare bool) analysisOutput {
	out := analysisOutput{Frequencies: make([]letterOutput, 0, len(freqs))}
	for _, f := range freqs {
		entry := letterOutput{Letter: string(f.Letter), Count: f.Count, Percentage: f.Percentage}
		if compare {
			if expected, ok := frequency.EnglishFrequency(f.Letter); ok {
				entry.English = &expected
			}
		}
		out.Letters += f.Count
		out.Frequencies = append(out.Frequencies, entry)
	}
	return out
}

func newHistoryOutput(report stats.HistoryReport) historyOutput {
	out := historyOutput{
		Runs:    make([]runOutput, 0, len(report.Runs)),
		Letters: make([]letterTotalOutput, 0, len(report.Letters)),
	}
	for _, r := range report.Runs {
		out.Runs = append(out.Runs, runOutput{
			RunID:       r.RunID,
			CreatedAt:   r.CreatedAt,
			Mode:        r.Mode,
			Direction:   string(r.Direction),
			Source:      r.Source,
			InputChars:  r.InputChars,
			OutputChars: r.OutputChars,
			Letters:     r.Letters,
		})
	}
	for _, l := range report.Letters {
		out.Letters = append(out.Letters, letterTotalOutput{Letter: l.Letter, Count: l.Count})
	}
	return out
}
