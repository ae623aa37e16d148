package validation

import "errors"

// Sentinel errors returned when constructing validators. These are
// configuration errors: they surface at startup and are never silently
// defaulted.
var (
	// ErrUnknownValidator is returned by [Loader.Load] for an identifier
	// with no registered builder.
	ErrUnknownValidator = errors.New("validation: unknown validator identifier")

	// ErrInvalidOption is returned when a validator option has the wrong
	// type, an out-of-range value, or an unrecognised key.
	ErrInvalidOption = errors.New("validation: invalid option value")
)
