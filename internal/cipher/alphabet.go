// Package cipher implements the substitution and shift ciphers.
package cipher

// Alphabet is the ordered set of letters both ciphers operate on:
// uppercase A-Z at indices 0-25 followed by lowercase a-z at 26-51.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// LettersPerCase is the size of each case half of Alphabet.
const LettersPerCase = 26

// IsUpper reports whether ch is an ASCII uppercase letter.
func IsUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

// IsLower reports whether ch is an ASCII lowercase letter.
func IsLower(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

// IsLetter reports whether ch is an ASCII letter.
func IsLetter(ch byte) bool {
	return IsUpper(ch) || IsLower(ch)
}

// LetterIndex returns the position of ch in Alphabet, or -1.
func LetterIndex(ch byte) int {
	switch {
	case IsUpper(ch):
		return int(ch - 'A')
	case IsLower(ch):
		return LettersPerCase + int(ch-'a')
	default:
		return -1
	}
}
