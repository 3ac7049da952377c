// Package generator builds random substitution keys.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

// Generator produces random keys.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible keys.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// SubstitutionKey returns a collision-free 52-letter key. Uppercase letters map
// to a shuffled uppercase alphabet and lowercase letters to a shuffled
// lowercase one, so ciphertext keeps the case pattern of the input.
func (g *Generator) SubstitutionKey() string {
	upper := []byte(cipher.Alphabet[:cipher.LettersPerCase])
	lower := []byte(cipher.Alphabet[cipher.LettersPerCase:])
	g.shuffle(upper)
	g.shuffle(lower)
	return string(upper) + string(lower)
}

// MixedKey returns a collision-free key that shuffles all 52 letters together.
func (g *Generator) MixedKey() string {
	letters := []byte(cipher.Alphabet)
	g.shuffle(letters)
	return string(letters)
}

// ShiftKey returns a random non-zero shift in [1, 25].
func (g *Generator) ShiftKey() int {
	return cipher.MinBruteShift + g.rnd.Intn(cipher.MaxBruteShift)
}

func (g *Generator) shuffle(b []byte) {
	g.rnd.Shuffle(len(b), func(i, j int) {
		b[i], b[j] = b[j], b[i]
	})
}
