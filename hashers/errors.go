package hashers

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := m.Hasher("sha3")
//	if errors.Is(err, hashers.ErrUnknownAlgorithm) {
//	    // algorithm is not registered
//	}
//
// None of these errors ever carry a clear-text secret.
var (
	// ErrInvalidHash is returned when an encoded record cannot be parsed
	// because it has an unrecognised shape, a wrong number of components,
	// or invalid encoding. [Manager.CheckPassword] never surfaces this
	// error; a malformed record simply fails verification.
	ErrInvalidHash = errors.New("hashers: invalid or unrecognised encoded record")

	// ErrInvalidOption is returned by a constructor called with a
	// parameter value outside the allowed range (e.g., a bcrypt cost
	// below 4, or zero PBKDF2 iterations).
	ErrInvalidOption = errors.New("hashers: invalid option value")

	// ErrInvalidComponent is returned when a record component (salt,
	// parameter, hash) contains the reserved "$" separator and therefore
	// cannot be serialised unambiguously.
	ErrInvalidComponent = errors.New("hashers: record component contains the separator")

	// ErrUnknownAlgorithm is returned by [Manager.Hasher] when no hasher
	// is registered under the requested algorithm identifier.
	ErrUnknownAlgorithm = errors.New("hashers: unknown or unregistered algorithm")

	// ErrNoHashers is returned by [NewManager] when called with an empty
	// hasher list. An empty configuration is a startup error, never
	// silently defaulted.
	ErrNoHashers = errors.New("hashers: at least one hasher must be configured")

	// ErrNilHasher is returned by [NewManager] or [Manager.Register]
	// when a nil [Hasher] is supplied.
	ErrNilHasher = errors.New("hashers: hasher must not be nil")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Verify,
	// MustUpdate, or SafeSummary method when the record was produced by
	// a different algorithm than the one implemented by that hasher.
	ErrAlgorithmMismatch = errors.New("hashers: record was produced by a different algorithm")
)
