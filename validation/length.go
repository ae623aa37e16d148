package validation

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMinLength is the minimum secret length enforced by
// [NewMinimumLengthValidator] when configured through a [Loader] with
// the option omitted.
const DefaultMinLength = 8

// MinimumLengthValidator rejects secrets shorter than a configured
// number of characters (runes, not bytes).
type MinimumLengthValidator struct {
	minLength int
}

// NewMinimumLengthValidator constructs a MinimumLengthValidator.
// Returns [ErrInvalidOption] when minLength is below 1.
func NewMinimumLengthValidator(minLength int) (*MinimumLengthValidator, error) {
	if minLength < 1 {
		return nil, fmt.Errorf("%w: min_length must be ≥ 1, got %d", ErrInvalidOption, minLength)
	}
	return &MinimumLengthValidator{minLength: minLength}, nil
}

// MustMinimumLengthValidator is like [NewMinimumLengthValidator] but
// panics on an invalid minLength. For wiring static configuration.
func MustMinimumLengthValidator(minLength int) *MinimumLengthValidator {
	v, err := NewMinimumLengthValidator(minLength)
	if err != nil {
		panic(err)
	}
	return v
}

// MinLength returns the configured minimum.
func (v *MinimumLengthValidator) MinLength() int { return v.minLength }

// Validate implements [Validator].
func (v *MinimumLengthValidator) Validate(secret string, _ Identity) []Violation {
	if utf8.RuneCountInString(secret) >= v.minLength {
		return nil
	}
	return []Violation{{
		Message: fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.",
			v.minLength),
		Code:   "password_too_short",
		Params: map[string]any{"min_length": v.minLength},
	}}
}

// HelpText implements [Validator].
func (v *MinimumLengthValidator) HelpText() string {
	return fmt.Sprintf("Your password must contain at least %d characters.", v.minLength)
}
