// Package wordlist loads dictionaries used to recognise plaintext candidates.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dictionary is a set of lowercase ASCII words.
type Dictionary struct {
	words map[string]struct{}
}

// LoadDictionary reads one word per line from the provided file path.
func LoadDictionary(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadDictionary(file)
}

// ReadDictionary reads one word per line; words failing the English filter are skipped.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	keep := FilterForLang("en")
	dict := &Dictionary{words: map[string]struct{}{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !keep(word) {
			continue
		}
		dict.words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(dict.words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return dict, nil
}

// NewDictionary builds a dictionary from words in memory.
func NewDictionary(words ...string) *Dictionary {
	keep := FilterForLang("en")
	dict := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(w)
		if keep(w) {
			dict.words[w] = struct{}{}
		}
	}
	return dict
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is known, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Hits returns how many letter runs of text are dictionary words and how many
// letter runs there are in total.
func (d *Dictionary) Hits(text string) (hits, total int) {
	for _, word := range splitWords(text) {
		total++
		if d.Contains(word) {
			hits++
		}
	}
	return hits, total
}

// Score returns a rank score for a candidate: lower is better. Texts with more
// dictionary words score lower; texts without words score 0.
func (d *Dictionary) Score(text string) float64 {
	hits, total := d.Hits(text)
	if total == 0 {
		return 0
	}
	return -float64(hits) / float64(total)
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
}
