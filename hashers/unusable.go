package hashers

import "strings"

// UnusablePrefix marks an encoded record as the unusable sentinel:
// a credential that exists but can never verify, used when no real
// password is set.
const UnusablePrefix = "!"

// unusableSuffixLength is the number of random characters appended to
// the prefix. The randomness guarantees that two sentinels never
// compare equal and that an attacker cannot pre-supply a matching
// secret.
const unusableSuffixLength = 40

// MakeUnusablePassword returns a fresh unusable sentinel record. The
// result is always storable (never empty), never parses into an
// algorithm, and always fails verification.
func MakeUnusablePassword() (string, error) {
	suffix, err := randomString(unusableSuffixLength)
	if err != nil {
		return "", err
	}
	return UnusablePrefix + suffix, nil
}

// IsUsableEncoding reports whether encoded could hold a real hashed
// secret: it is non-empty and not an unusable sentinel. It does not
// check that the embedded algorithm is registered anywhere; see
// [Manager.IsPasswordUsable] for the full check. No hashing is
// performed.
func IsUsableEncoding(encoded string) bool {
	return encoded != "" && !strings.HasPrefix(encoded, UnusablePrefix)
}
