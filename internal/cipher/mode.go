package cipher

import (
	"fmt"
	"strings"
)

// Mode selects which cipher a Selector applies.
type Mode int

const (
	// ModeSubstitution applies the substitution cipher.
	ModeSubstitution Mode = iota
	// ModeTransposition applies the shift cipher.
	ModeTransposition
)

// Defaults used when no key is configured.
const (
	DefaultSubstitutionKey = "IDvCtWclkuPZOgXshNwoBjSJzdxVMUpQGRrqEfLmbnTiFyaHeKAY"
	DefaultShiftKey        = 42
)

func (m Mode) String() string {
	switch m {
	case ModeSubstitution:
		return "substitution"
	case ModeTransposition:
		return "transposition"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the supported variants.
func (m Mode) Valid() bool {
	return m == ModeSubstitution || m == ModeTransposition
}

// ParseMode parses a mode name; shorthand aliases are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "substitution", "sub":
		return ModeSubstitution, nil
	case "transposition", "shift", "caesar":
		return ModeTransposition, nil
	default:
		return 0, &ConfigError{Field: "mode", Err: fmt.Errorf("%w %q", ErrUnknownMode, s)}
	}
}

// Selector routes encrypt/decrypt requests to the selected cipher.
type Selector struct {
	mode         Mode
	substitution *Substitution
	shift        *Shift
}

// NewSelector builds both ciphers and selects mode.
func NewSelector(mode Mode, substitutionKey string, shiftKey int) (*Selector, error) {
	if !mode.Valid() {
		return nil, &ConfigError{Field: "mode", Err: ErrUnknownMode}
	}
	sub, err := NewSubstitution(substitutionKey)
	if err != nil {
		return nil, err
	}
	return &Selector{
		mode:         mode,
		substitution: sub,
		shift:        NewShift(shiftKey),
	}, nil
}

// Mode returns the selected variant.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Select switches the active variant.
func (s *Selector) Select(mode Mode) error {
	if !mode.Valid() {
		return &ConfigError{Field: "mode", Err: ErrUnknownMode}
	}
	s.mode = mode
	return nil
}

// Substitution returns the substitution cipher instance.
func (s *Selector) Substitution() *Substitution {
	return s.substitution
}

// Shift returns the shift cipher instance.
func (s *Selector) Shift() *Shift {
	return s.shift
}

// Encrypt applies the selected cipher.
func (s *Selector) Encrypt(text string) (string, error) {
	switch s.mode {
	case ModeSubstitution:
		return s.substitution.Encrypt(text)
	case ModeTransposition:
		return s.shift.Encrypt(text)
	default:
		return "", ErrUnknownMode
	}
}

// Decrypt reverses the selected cipher.
func (s *Selector) Decrypt(text string) (string, error) {
	switch s.mode {
	case ModeSubstitution:
		return s.substitution.Decrypt(text)
	case ModeTransposition:
		return s.shift.Decrypt(text)
	default:
		return "", ErrUnknownMode
	}
}
