package frequency

import (
	"math"
	"sort"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

// ChiSquared measures how far the case-folded letter distribution of text is
// from English. Lower is more English-like; letter-free text scores +Inf.
func ChiSquared(text string) float64 {
	counts, total := Counts(text, false)
	if total == 0 {
		return math.Inf(1)
	}
	n := float64(total)
	score := 0.0
	for i, pct := range englishFrequencies {
		expected := n * pct / 100
		diff := float64(counts[i]) - expected
		score += diff * diff / expected
	}
	return score
}

// Candidate is one brute-force plaintext with its score.
type Candidate struct {
	Shift int
	Text  string
	Score float64
}

// RankCandidates scores the output of cipher.DecryptAllShifts and orders it
// most English-like first. Candidate i is reported as shift i+1.
func RankCandidates(candidates []string) []Candidate {
	return RankCandidatesBy(candidates, ChiSquared)
}

// RankCandidatesBy is RankCandidates with a custom scorer; lower scores rank first.
func RankCandidatesBy(candidates []string, score func(string) float64) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, text := range candidates {
		out[i] = Candidate{Shift: i + cipher.MinBruteShift, Text: text, Score: score(text)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// Comparison pairs the observed share of a letter with the English reference.
type Comparison struct {
	Letter   byte
	Observed float64
	Expected float64
}

// Compare folds observed frequencies to A-Z and lines them up with English.
// All 26 letters are returned in alphabet order.
func Compare(observed []LetterFrequency) []Comparison {
	var shares [cipher.LettersPerCase]float64
	for _, f := range observed {
		idx := cipher.LetterIndex(f.Letter)
		if idx < 0 {
			continue
		}
		shares[idx%cipher.LettersPerCase] += f.Percentage
	}
	out := make([]Comparison, cipher.LettersPerCase)
	for i := range out {
		out[i] = Comparison{
			Letter:   cipher.Alphabet[i],
			Observed: shares[i],
			Expected: englishFrequencies[i],
		}
	}
	return out
}
