package hashers

import (
	"fmt"

	"github.com/digitive/crypt"
)

// CryptHasher verifies records produced by the traditional Unix
// crypt(3) one-way function, using a pure-Go implementation so the
// behaviour does not depend on the host's libc.
//
// Record format: crypt$$<2-char salt><11-char hash>.
//
// Crypt considers only the first 8 characters of the secret and 12
// bits of salt; it exists purely to import system password files and
// should never produce new records. Not registered by
// [NewDefaultManager].
type CryptHasher struct{}

// NewCryptHasher constructs a CryptHasher.
func NewCryptHasher() *CryptHasher { return &CryptHasher{} }

// Algorithm returns [AlgorithmCrypt].
func (h *CryptHasher) Algorithm() Algorithm { return AlgorithmCrypt }

// Salt returns the 2-character salt crypt(3) requires.
func (h *CryptHasher) Salt() (string, error) { return randomString(2) }

// Encode hashes secret with crypt(3). An empty salt means "generate
// one"; a supplied salt must be exactly 2 characters.
func (h *CryptHasher) Encode(secret, salt string) (string, error) {
	if salt == "" {
		var err error
		if salt, err = h.Salt(); err != nil {
			return "", err
		}
	}
	if len(salt) != 2 {
		return "", fmt.Errorf("%w: crypt salt must be exactly 2 characters", ErrInvalidOption)
	}
	data, err := crypt.Crypt(secret, salt)
	if err != nil {
		return "", fmt.Errorf("hashers: crypt: %w", err)
	}
	// crypt output embeds its own salt prefix, so the record reads
	// "crypt$$<data>".
	return joinRecord(string(AlgorithmCrypt), "", data)
}

// Verify reports whether secret matches the record.
func (h *CryptHasher) Verify(secret, encoded string) (bool, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return false, err
	}
	computed, err := crypt.Crypt(secret, d[:2])
	if err != nil {
		return false, fmt.Errorf("hashers: crypt: %w", err)
	}
	return constantTimeEq(computed, d), nil
}

// MustUpdate always reports false; crypt has no tunable work factor.
// The facade still upgrades crypt records because the algorithm is
// never the preferred one.
func (h *CryptHasher) MustUpdate(encoded string) bool { return false }

// SafeSummary returns the record's fields with the hash redacted. The
// 2-character salt carries so little entropy that masking it would
// hide nothing; it is shown as is.
func (h *CryptHasher) SafeSummary(encoded string) (Summary, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return nil, err
	}
	return Summary{
		"algorithm": string(AlgorithmCrypt),
		"salt":      d[:2],
		"hash":      maskHash(d[2:], 3),
	}, nil
}

// decode strips the "crypt$$" prefix and validates the payload length.
func (h *CryptHasher) decode(encoded string) (string, error) {
	components, err := splitRecord(encoded, AlgorithmCrypt, 3)
	if err != nil {
		return "", err
	}
	data := components[2]
	if components[1] != "" || len(data) < 3 {
		return "", fmt.Errorf("%w: malformed crypt payload", ErrInvalidHash)
	}
	return data, nil
}
