package hashers

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"strconv"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPBKDF2Iterations is the default iteration count for both
	// PBKDF2 variants. 600,000 iterations of HMAC-SHA256 match the
	// current OWASP recommendation; raise it as hardware improves and
	// existing records will upgrade themselves on login.
	DefaultPBKDF2Iterations = 600_000
)

// PBKDF2Options configures a [PBKDF2Hasher].
//
// The iteration count is encoded into every record, so changing it
// only affects newly produced records; existing records remain
// verifiable and report [Hasher.MustUpdate] until re-encoded.
type PBKDF2Options struct {
	// Iterations is the PBKDF2 iteration count.
	// Minimum: 1. Default: [DefaultPBKDF2Iterations].
	Iterations int

	// SaltLength is the length of generated alphanumeric salts.
	// Minimum: 1. Default: [DefaultSaltLength].
	SaltLength int
}

// DefaultPBKDF2Options returns PBKDF2Options with the recommended
// defaults.
func DefaultPBKDF2Options() PBKDF2Options {
	return PBKDF2Options{
		Iterations: DefaultPBKDF2Iterations,
		SaltLength: DefaultSaltLength,
	}
}

func validatePBKDF2Options(opts PBKDF2Options) error {
	if opts.Iterations < 1 {
		return fmt.Errorf("%w: pbkdf2 iterations must be ≥ 1, got %d",
			ErrInvalidOption, opts.Iterations)
	}
	if opts.SaltLength < 1 {
		return fmt.Errorf("%w: pbkdf2 salt length must be ≥ 1, got %d",
			ErrInvalidOption, opts.SaltLength)
	}
	return nil
}

// PBKDF2Hasher hashes secrets with PBKDF2 (RFC 2898) over HMAC.
//
// Record format (dollar-delimited, standard base64 hash):
//
//	pbkdf2_sha256$600000$<salt>$<base64 key>
//
// Two variants exist: [NewPBKDF2SHA256Hasher] (the preferred default)
// and [NewPBKDF2SHA1Hasher], which is kept solely to verify legacy
// records. Both are safe with secrets of any length.
//
// # Thread safety
//
// PBKDF2Hasher is immutable after construction and safe for concurrent
// use.
type PBKDF2Hasher struct {
	algorithm  Algorithm
	digest     func() hash.Hash
	keyLen     int
	iterations int
	saltLength int
}

// NewPBKDF2SHA256Hasher constructs the HMAC-SHA256 variant.
// Use [DefaultPBKDF2Options] for recommended defaults.
func NewPBKDF2SHA256Hasher(opts PBKDF2Options) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Options(opts); err != nil {
		return nil, err
	}
	return &PBKDF2Hasher{
		algorithm:  AlgorithmPBKDF2SHA256,
		digest:     sha256.New,
		keyLen:     sha256.Size,
		iterations: opts.Iterations,
		saltLength: opts.SaltLength,
	}, nil
}

// NewPBKDF2SHA1Hasher constructs the HMAC-SHA1 variant, for verifying
// records produced before the SHA-256 variant became the default.
func NewPBKDF2SHA1Hasher(opts PBKDF2Options) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Options(opts); err != nil {
		return nil, err
	}
	return &PBKDF2Hasher{
		algorithm:  AlgorithmPBKDF2SHA1,
		digest:     sha1.New,
		keyLen:     sha1.Size,
		iterations: opts.Iterations,
		saltLength: opts.SaltLength,
	}, nil
}

// Algorithm returns the variant's identifier.
func (h *PBKDF2Hasher) Algorithm() Algorithm { return h.algorithm }

// Iterations returns the configured iteration count.
func (h *PBKDF2Hasher) Iterations() int { return h.iterations }

// Salt returns a fresh alphanumeric salt of the configured length.
func (h *PBKDF2Hasher) Salt() (string, error) { return randomString(h.saltLength) }

// Encode hashes secret with the configured iteration count. An empty
// salt means "generate one".
func (h *PBKDF2Hasher) Encode(secret, salt string) (string, error) {
	if salt == "" {
		var err error
		if salt, err = h.Salt(); err != nil {
			return "", err
		}
	}
	return h.encode(secret, salt, h.iterations)
}

func (h *PBKDF2Hasher) encode(secret, salt string, iterations int) (string, error) {
	key := pbkdf2.Key([]byte(secret), []byte(salt), iterations, h.keyLen, h.digest)
	return joinRecord(
		string(h.algorithm),
		strconv.Itoa(iterations),
		salt,
		base64.StdEncoding.EncodeToString(key),
	)
}

// Verify re-derives the key with the salt and iteration count stored
// in the record and compares in constant time.
func (h *PBKDF2Hasher) Verify(secret, encoded string) (bool, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return false, err
	}
	computed, err := h.encode(secret, d.salt, d.iterations)
	if err != nil {
		return false, err
	}
	return constantTimeEq(encoded, computed), nil
}

// MustUpdate reports true when the stored iteration count differs from
// the configured one, or the stored salt is too short. Both conditions
// trigger a transparent re-encode on the next successful login.
func (h *PBKDF2Hasher) MustUpdate(encoded string) bool {
	d, err := h.decode(encoded)
	if err != nil {
		return false
	}
	return d.iterations != h.iterations || saltRequiresUpdate(d.salt)
}

// SafeSummary returns the record's fields with salt and hash redacted.
func (h *PBKDF2Hasher) SafeSummary(encoded string) (Summary, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return nil, err
	}
	return Summary{
		"algorithm":  string(h.algorithm),
		"iterations": strconv.Itoa(d.iterations),
		"salt":       maskHash(d.salt, 2),
		"hash":       maskHash(d.hash, 6),
	}, nil
}

// HardenRuntime equalises verification time for stale records: when a
// record holds fewer iterations than currently configured, the
// difference is burned after a failed verification so response timing
// does not reveal which records still await an upgrade.
func (h *PBKDF2Hasher) HardenRuntime(secret, encoded string) {
	d, err := h.decode(encoded)
	if err != nil {
		return
	}
	if extra := h.iterations - d.iterations; extra > 0 {
		_, _ = h.encode(secret, d.salt, extra)
	}
}

type pbkdf2Decoded struct {
	iterations int
	salt       string
	hash       string
}

func (h *PBKDF2Hasher) decode(encoded string) (pbkdf2Decoded, error) {
	components, err := splitRecord(encoded, h.algorithm, 4)
	if err != nil {
		return pbkdf2Decoded{}, err
	}
	iterations, err := strconv.Atoi(components[1])
	if err != nil || iterations < 1 {
		return pbkdf2Decoded{}, fmt.Errorf("%w: bad iteration count %q",
			ErrInvalidHash, components[1])
	}
	return pbkdf2Decoded{
		iterations: iterations,
		salt:       components[2],
		hash:       components[3],
	}, nil
}
