package cipher

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check for them.
var (
	// ErrEmptyKey indicates a substitution key with no characters.
	ErrEmptyKey = errors.New("empty key")

	// ErrNoKey indicates a cipher used before any key was configured.
	ErrNoKey = errors.New("no key configured")

	// ErrUnknownMode indicates a cipher mode outside the supported variants.
	ErrUnknownMode = errors.New("unknown cipher mode")
)

// ConfigError reports a rejected cipher configuration value.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
