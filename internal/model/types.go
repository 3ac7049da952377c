// Package model defines shared data structures.
package model

import "time"

// Direction tells whether a run encrypted or decrypted its input.
type Direction string

// Supported run directions.
const (
	DirectionEncrypt Direction = "encrypt"
	DirectionDecrypt Direction = "decrypt"
	DirectionBrute   Direction = "brute"
)

// Config defines cipher settings resolved from flags and the config file.
type Config struct {
	Mode            string
	SubstitutionKey string
	ShiftKey        int
	CaseSensitive   bool
	WordListPath    string
	History         bool
}

// HistoryFilter defines filters for history output.
type HistoryFilter struct {
	Mode string
	Last int
}

// Run captures one recorded cipher operation.
type Run struct {
	CreatedAt   time.Time
	Mode        string
	Direction   Direction
	Source      string
	InputChars  int
	OutputChars int
	Letters     int
}

// LetterCount stores how often one letter appeared in a run's input.
type LetterCount struct {
	Letter string
	Count  int
}

// RunSummary is a stored run as listed by the history view.
type RunSummary struct {
	RunID       string
	CreatedAt   time.Time
	Mode        string
	Direction   Direction
	Source      string
	InputChars  int
	OutputChars int
	Letters     int
}

// LetterTotal aggregates letter counts across runs.
type LetterTotal struct {
	Letter string
	Count  int
}
