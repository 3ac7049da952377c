package cipher

import "sort"

// Substitution replaces every alphabet letter with a letter taken from a key.
//
// The key is cycled across the 52 alphabet positions, so Alphabet[i] maps to
// key[i%len(key)]. When two letters map to the same key character the inverse
// map keeps the last assignment and decryption is lossy for those letters; use
// KeyCollisions to detect that.
type Substitution struct {
	key     string
	forward map[byte]byte
	inverse map[byte]byte
}

// NewSubstitution returns a substitution cipher configured with key.
func NewSubstitution(key string) (*Substitution, error) {
	s := &Substitution{}
	if err := s.SetKey(key); err != nil {
		return nil, err
	}
	return s, nil
}

// SetKey rebuilds both maps from key. The previous key stays active on error.
func (s *Substitution) SetKey(key string) error {
	if key == "" {
		return &ConfigError{Field: "substitution key", Err: ErrEmptyKey}
	}
	forward := make(map[byte]byte, len(Alphabet))
	inverse := make(map[byte]byte, len(Alphabet))
	for i := 0; i < len(Alphabet); i++ {
		mapped := key[i%len(key)]
		forward[Alphabet[i]] = mapped
		inverse[mapped] = Alphabet[i]
	}
	s.key = key
	s.forward = forward
	s.inverse = inverse
	return nil
}

// Key returns the configured key string.
func (s *Substitution) Key() string {
	return s.key
}

// Encrypt maps every alphabet letter through the forward map.
func (s *Substitution) Encrypt(text string) (string, error) {
	if s.forward == nil {
		return "", ErrNoKey
	}
	return translate(text, s.forward), nil
}

// Decrypt maps every character through the inverse map.
func (s *Substitution) Decrypt(text string) (string, error) {
	if s.inverse == nil {
		return "", ErrNoKey
	}
	return translate(text, s.inverse), nil
}

func translate(text string, table map[byte]byte) string {
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		if mapped, ok := table[text[i]]; ok {
			out[i] = mapped
			continue
		}
		out[i] = text[i]
	}
	return string(out)
}

// Collision describes a cipher character produced by more than one letter.
type Collision struct {
	Cipher  byte
	Letters []byte
}

// KeyCollisions lists the cipher characters that several alphabet letters map
// to under key, ordered by the first letter involved. It does not affect how
// Substitution behaves.
func KeyCollisions(key string) []Collision {
	if key == "" {
		return nil
	}
	sources := map[byte][]byte{}
	for i := 0; i < len(Alphabet); i++ {
		mapped := key[i%len(key)]
		sources[mapped] = append(sources[mapped], Alphabet[i])
	}
	var out []Collision
	for mapped, letters := range sources {
		if len(letters) > 1 {
			out = append(out, Collision{Cipher: mapped, Letters: letters})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return LetterIndex(out[i].Letters[0]) < LetterIndex(out[j].Letters[0])
	})
	return out
}

// Bijective reports whether key decrypts every letter back unambiguously.
func Bijective(key string) bool {
	return key != "" && len(KeyCollisions(key)) == 0
}
