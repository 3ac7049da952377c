package stats

import (
	"github.com/verte-zerg/tprotect/internal/frequency"
	"github.com/verte-zerg/tprotect/internal/model"
)

// RunRecord builds the history entry for one cipher operation. Letter counts
// are taken from the case-folded input.
func RunRecord(mode string, direction model.Direction, source, input, output string) (model.Run, []model.LetterCount) {
	freqs := frequency.Analyze(input, false)
	letters := make([]model.LetterCount, 0, len(freqs))
	total := 0
	for _, f := range freqs {
		letters = append(letters, model.LetterCount{Letter: string(f.Letter), Count: f.Count})
		total += f.Count
	}
	run := model.Run{
		Mode:        mode,
		Direction:   direction,
		Source:      source,
		InputChars:  len(input),
		OutputChars: len(output),
		Letters:     total,
	}
	return run, letters
}
