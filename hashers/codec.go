package hashers

import (
	"crypto/subtle"
	"fmt"
	"math"
	"strings"
)

// separator delimits the components of an encoded record:
// algorithm$parameters$salt$hash. It must never appear inside a
// component.
const separator = "$"

// minSaltEntropy is the number of bits of randomness a salt must carry
// before it stops triggering an upgrade. 22 alphanumeric characters
// clear it; older 12-character salts do not.
const minSaltEntropy = 128

// joinRecord serialises record components with the "$" separator,
// returning [ErrInvalidComponent] if any component already contains it.
func joinRecord(components ...string) (string, error) {
	for i, c := range components {
		if strings.Contains(c, separator) {
			return "", fmt.Errorf("%w: component %d", ErrInvalidComponent, i)
		}
	}
	return strings.Join(components, separator), nil
}

// splitRecord parses an encoded record into exactly arity components,
// verifying the algorithm identifier in the first one.
func splitRecord(encoded string, alg Algorithm, arity int) ([]string, error) {
	components := strings.Split(encoded, separator)
	if len(components) != arity {
		return nil, fmt.Errorf("%w: expected %d components, got %d",
			ErrInvalidHash, arity, len(components))
	}
	if Algorithm(components[0]) != alg {
		return nil, fmt.Errorf("%w: record is %q, not %q",
			ErrAlgorithmMismatch, components[0], alg)
	}
	return components, nil
}

// maskHash redacts a salt or hash value for display: the first show
// characters are kept, the remainder replaced with "*".
func maskHash(value string, show int) string {
	if len(value) <= show {
		return value
	}
	return value[:show] + strings.Repeat("*", len(value)-show)
}

// saltRequiresUpdate reports whether an alphanumeric salt carries less
// than minSaltEntropy bits of randomness. Empty salts are the concern
// of unsalted hashers, not of this check.
func saltRequiresUpdate(salt string) bool {
	if salt == "" {
		return false
	}
	return float64(len(salt))*math.Log2(saltAlphabetSize) < minSaltEntropy
}

// constantTimeEq compares two strings in constant time for equal
// lengths. Length itself is not secret: every encoded record of a
// given algorithm and parameter set has the same length.
func constantTimeEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
