// Package frequency computes letter statistics used to break classical ciphers.
package frequency

import (
	"sort"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

// LetterFrequency is the count and share of one letter bucket.
type LetterFrequency struct {
	Letter     byte
	Count      int
	Percentage float64
}

// Counts tallies letters into 52 buckets indexed like cipher.Alphabet. When
// caseSensitive is false lowercase letters fold into the uppercase buckets.
// The second result is the number of letters counted.
func Counts(text string, caseSensitive bool) ([len(cipher.Alphabet)]int, int) {
	var counts [len(cipher.Alphabet)]int
	total := 0
	for i := 0; i < len(text); i++ {
		idx := cipher.LetterIndex(text[i])
		if idx < 0 {
			continue
		}
		if !caseSensitive && idx >= cipher.LettersPerCase {
			idx -= cipher.LettersPerCase
		}
		counts[idx]++
		total++
	}
	return counts, total
}

// Analyze returns the non-empty letter buckets of text ordered by count,
// highest first. Equal counts keep alphabet order (A-Z, then a-z).
func Analyze(text string, caseSensitive bool) []LetterFrequency {
	counts, total := Counts(text, caseSensitive)
	if total == 0 {
		return nil
	}
	buckets := cipher.LettersPerCase
	if caseSensitive {
		buckets = len(cipher.Alphabet)
	}
	result := make([]LetterFrequency, 0, buckets)
	for i := 0; i < buckets; i++ {
		if counts[i] == 0 {
			continue
		}
		result = append(result, LetterFrequency{
			Letter:     cipher.Alphabet[i],
			Count:      counts[i],
			Percentage: float64(counts[i]) * 100 / float64(total),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
