package hashers

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// The hashers in this file exist to verify records inherited from old
// systems. None of them should produce new records; register them
// after the preferred hasher so stored credentials survive a migration
// and upgrade on first login.

// digestHasher covers the single-round salted digests: sha1 and md5.
// Record format: <algorithm>$<salt>$<hex digest of salt+secret>.
type digestHasher struct {
	algorithm Algorithm
	digest    func() hash.Hash
}

// NewSHA1Hasher constructs the salted single-round SHA-1 hasher.
// Verification only.
func NewSHA1Hasher() Hasher {
	return &digestHasher{algorithm: AlgorithmSHA1, digest: sha1.New}
}

// NewMD5Hasher constructs the salted single-round MD5 hasher, the
// weakest salted variant. Verification only.
func NewMD5Hasher() Hasher {
	return &digestHasher{algorithm: AlgorithmMD5, digest: md5.New}
}

func (h *digestHasher) Algorithm() Algorithm { return h.algorithm }

func (h *digestHasher) Salt() (string, error) { return randomString(DefaultSaltLength) }

func (h *digestHasher) Encode(secret, salt string) (string, error) {
	if salt == "" {
		var err error
		if salt, err = h.Salt(); err != nil {
			return "", err
		}
	}
	return joinRecord(string(h.algorithm), salt, h.hexDigest(salt+secret))
}

func (h *digestHasher) Verify(secret, encoded string) (bool, error) {
	components, err := splitRecord(encoded, h.algorithm, 3)
	if err != nil {
		return false, err
	}
	computed, err := h.Encode(secret, components[1])
	if err != nil {
		return false, err
	}
	return constantTimeEq(encoded, computed), nil
}

func (h *digestHasher) MustUpdate(encoded string) bool {
	components, err := splitRecord(encoded, h.algorithm, 3)
	if err != nil {
		return false
	}
	return saltRequiresUpdate(components[1])
}

func (h *digestHasher) SafeSummary(encoded string) (Summary, error) {
	components, err := splitRecord(encoded, h.algorithm, 3)
	if err != nil {
		return nil, err
	}
	return Summary{
		"algorithm": string(h.algorithm),
		"salt":      maskHash(components[1], 2),
		"hash":      maskHash(components[2], 6),
	}, nil
}

func (h *digestHasher) hexDigest(input string) string {
	d := h.digest()
	d.Write([]byte(input))
	return hex.EncodeToString(d.Sum(nil))
}

// unsaltedSHA1Hasher verifies "sha1$$<hex>" records.
type unsaltedSHA1Hasher struct{}

// NewUnsaltedSHA1Hasher constructs the unsalted SHA-1 hasher.
// Backward compatibility only.
func NewUnsaltedSHA1Hasher() Hasher { return unsaltedSHA1Hasher{} }

func (unsaltedSHA1Hasher) Algorithm() Algorithm { return AlgorithmUnsaltedSHA1 }

func (unsaltedSHA1Hasher) Salt() (string, error) { return "", nil }

func (unsaltedSHA1Hasher) Encode(secret, salt string) (string, error) {
	if salt != "" {
		return "", fmt.Errorf("%w: unsalted_sha1 takes no salt", ErrInvalidOption)
	}
	sum := sha1.Sum([]byte(secret))
	return "sha1$$" + hex.EncodeToString(sum[:]), nil
}

func (h unsaltedSHA1Hasher) Verify(secret, encoded string) (bool, error) {
	if !strings.HasPrefix(encoded, "sha1$$") {
		return false, fmt.Errorf("%w: not an unsalted sha1 record", ErrInvalidHash)
	}
	computed, err := h.Encode(secret, "")
	if err != nil {
		return false, err
	}
	return constantTimeEq(encoded, computed), nil
}

func (unsaltedSHA1Hasher) MustUpdate(encoded string) bool { return false }

func (unsaltedSHA1Hasher) SafeSummary(encoded string) (Summary, error) {
	if !strings.HasPrefix(encoded, "sha1$$") {
		return nil, fmt.Errorf("%w: not an unsalted sha1 record", ErrInvalidHash)
	}
	return Summary{
		"algorithm": string(AlgorithmUnsaltedSHA1),
		"hash":      maskHash(strings.TrimPrefix(encoded, "sha1$$"), 6),
	}, nil
}

// unsaltedMD5Hasher verifies bare 32-hex records and their "md5$$"
// spelling.
type unsaltedMD5Hasher struct{}

// NewUnsaltedMD5Hasher constructs the unsalted MD5 hasher.
// Backward compatibility only.
func NewUnsaltedMD5Hasher() Hasher { return unsaltedMD5Hasher{} }

func (unsaltedMD5Hasher) Algorithm() Algorithm { return AlgorithmUnsaltedMD5 }

func (unsaltedMD5Hasher) Salt() (string, error) { return "", nil }

func (unsaltedMD5Hasher) Encode(secret, salt string) (string, error) {
	if salt != "" {
		return "", fmt.Errorf("%w: unsalted_md5 takes no salt", ErrInvalidOption)
	}
	sum := md5.Sum([]byte(secret))
	return hex.EncodeToString(sum[:]), nil
}

func (h unsaltedMD5Hasher) Verify(secret, encoded string) (bool, error) {
	encoded = strings.TrimPrefix(encoded, "md5$$")
	computed, err := h.Encode(secret, "")
	if err != nil {
		return false, err
	}
	return constantTimeEq(encoded, computed), nil
}

func (unsaltedMD5Hasher) MustUpdate(encoded string) bool { return false }

func (unsaltedMD5Hasher) SafeSummary(encoded string) (Summary, error) {
	return Summary{
		"algorithm": string(AlgorithmUnsaltedMD5),
		"hash":      maskHash(strings.TrimPrefix(encoded, "md5$$"), 6),
	}, nil
}
