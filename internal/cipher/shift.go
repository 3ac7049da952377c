package cipher

// Shift rotates each ASCII letter within its case by a fixed key.
type Shift struct {
	key int
}

// NewShift returns a shift cipher configured with key.
func NewShift(key int) *Shift {
	s := &Shift{}
	s.SetKey(key)
	return s
}

// SetKey stores abs(key) % 26 as the active shift.
func (s *Shift) SetKey(key int) {
	s.key = NormalizeShift(key)
}

// Key returns the active shift in [0, 25].
func (s *Shift) Key() int {
	return s.key
}

// NormalizeShift folds sign and magnitude of key into [0, 25].
func NormalizeShift(key int) int {
	// Reduce before negating so math.MinInt does not overflow.
	k := key % LettersPerCase
	if k < 0 {
		k = -k
	}
	return k
}

// Encrypt rotates every letter forward by the active shift.
func (s *Shift) Encrypt(text string) (string, error) {
	return rotate(text, s.key), nil
}

// Decrypt rotates every letter backward by the active shift.
func (s *Shift) Decrypt(text string) (string, error) {
	return rotate(text, -s.key), nil
}

func rotate(text string, by int) string {
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		var base byte
		switch {
		case IsUpper(ch):
			base = 'A'
		case IsLower(ch):
			base = 'a'
		default:
			out[i] = ch
			continue
		}
		shifted := (int(ch-base) + by) % LettersPerCase
		if shifted < 0 {
			shifted += LettersPerCase
		}
		out[i] = base + byte(shifted)
	}
	return string(out)
}

// MinBruteShift and MaxBruteShift bound the keys tried by DecryptAllShifts.
// The zero shift is excluded.
const (
	MinBruteShift = 1
	MaxBruteShift = LettersPerCase - 1
)

// DecryptAllShifts decrypts text with every shift from 1 to 25 and returns the
// candidates in key order, so the candidate for shift k is at index k-1.
func DecryptAllShifts(text string) []string {
	out := make([]string, 0, MaxBruteShift)
	for shift := MinBruteShift; shift <= MaxBruteShift; shift++ {
		candidate, err := NewShift(shift).Decrypt(text)
		if err != nil {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
