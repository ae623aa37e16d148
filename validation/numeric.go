package validation

import "unicode"

// NumericPasswordValidator rejects secrets made up entirely of decimal
// digits.
type NumericPasswordValidator struct{}

// NewNumericPasswordValidator constructs a NumericPasswordValidator.
// It takes no options.
func NewNumericPasswordValidator() *NumericPasswordValidator {
	return &NumericPasswordValidator{}
}

// Validate implements [Validator]. An empty secret passes; length is
// the concern of [MinimumLengthValidator].
func (v *NumericPasswordValidator) Validate(secret string, _ Identity) []Violation {
	if secret == "" {
		return nil
	}
	for _, r := range secret {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return []Violation{{
		Message: "This password is entirely numeric.",
		Code:    "password_entirely_numeric",
	}}
}

// HelpText implements [Validator].
func (v *NumericPasswordValidator) HelpText() string {
	return "Your password can't be entirely numeric."
}
