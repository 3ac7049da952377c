package frequency

import "github.com/verte-zerg/tprotect/internal/cipher"

// englishFrequencies holds expected percentages for A-Z in English text.
var englishFrequencies = [cipher.LettersPerCase]float64{
	8.17,  // A
	1.49,  // B
	2.78,  // C
	4.25,  // D
	12.70, // E
	2.23,  // F
	2.02,  // G
	6.09,  // H
	6.97,  // I
	0.15,  // J
	0.77,  // K
	4.03,  // L
	2.41,  // M
	6.75,  // N
	7.51,  // O
	1.93,  // P
	0.10,  // Q
	5.99,  // R
	6.33,  // S
	9.06,  // T
	2.76,  // U
	0.98,  // V
	2.36,  // W
	0.15,  // X
	1.97,  // Y
	0.07,  // Z
}

// EnglishFrequencies returns the reference table for A-Z, in percent.
func EnglishFrequencies() [cipher.LettersPerCase]float64 {
	return englishFrequencies
}

// EnglishFrequency returns the expected percentage of letter in either case.
func EnglishFrequency(letter byte) (float64, bool) {
	idx := cipher.LetterIndex(letter)
	if idx < 0 {
		return 0, false
	}
	return englishFrequencies[idx%cipher.LettersPerCase], true
}
