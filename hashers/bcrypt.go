package hashers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptRounds is the recommended bcrypt work factor
	// (logarithmic). At 12 rounds a single hash takes roughly 250 ms on
	// a modern server CPU.
	DefaultBcryptRounds = 12
)

// BcryptOptions configures a [BcryptSHA256Hasher] or [BcryptHasher].
type BcryptOptions struct {
	// Rounds is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	// Default: [DefaultBcryptRounds].
	Rounds int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptRounds].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Rounds: DefaultBcryptRounds}
}

func validateBcryptOptions(opts BcryptOptions) error {
	if opts.Rounds < bcrypt.MinCost || opts.Rounds > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt rounds %d must be in [%d, %d]",
			ErrInvalidOption, opts.Rounds, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// BcryptSHA256Hasher hashes secrets with bcrypt after a SHA-256
// prehash.
//
// Bcrypt silently considers only the first 72 bytes of its input. The
// prehash — the hex form of the secret's SHA-256 digest, always 64
// bytes — removes that ceiling, so secrets of any length are safe.
//
// Record format: the algorithm identifier followed by the bcrypt
// Modular Crypt string, which carries its own cost and salt:
//
//	bcrypt_sha256$$2b$12$<22-char salt><31-char checksum>
//
// # Thread safety
//
// BcryptSHA256Hasher is immutable after construction and safe for
// concurrent use.
type BcryptSHA256Hasher struct {
	rounds int
}

// NewBcryptSHA256Hasher constructs a BcryptSHA256Hasher.
// Use [DefaultBcryptOptions] for recommended defaults.
func NewBcryptSHA256Hasher(opts BcryptOptions) (*BcryptSHA256Hasher, error) {
	if err := validateBcryptOptions(opts); err != nil {
		return nil, err
	}
	return &BcryptSHA256Hasher{rounds: opts.Rounds}, nil
}

// Algorithm returns [AlgorithmBcryptSHA256].
func (h *BcryptSHA256Hasher) Algorithm() Algorithm { return AlgorithmBcryptSHA256 }

// Rounds returns the configured work factor.
func (h *BcryptSHA256Hasher) Rounds() int { return h.rounds }

// Salt returns "". Bcrypt generates and embeds its own 128-bit salt;
// callers never manage it.
func (h *BcryptSHA256Hasher) Salt() (string, error) { return "", nil }

// Encode hashes secret. salt must be empty; bcrypt derives its own.
func (h *BcryptSHA256Hasher) Encode(secret, salt string) (string, error) {
	return bcryptEncode(AlgorithmBcryptSHA256, sha256Prehash(secret), salt, h.rounds)
}

// Verify reports whether secret matches the record.
func (h *BcryptSHA256Hasher) Verify(secret, encoded string) (bool, error) {
	return bcryptVerify(AlgorithmBcryptSHA256, sha256Prehash(secret), encoded)
}

// MustUpdate reports true when the work factor stored in the record
// differs from the configured rounds.
func (h *BcryptSHA256Hasher) MustUpdate(encoded string) bool {
	return bcryptMustUpdate(AlgorithmBcryptSHA256, encoded, h.rounds)
}

// SafeSummary returns the record's fields with salt and checksum
// redacted.
func (h *BcryptSHA256Hasher) SafeSummary(encoded string) (Summary, error) {
	return bcryptSafeSummary(AlgorithmBcryptSHA256, encoded)
}

// HardenRuntime equalises verification time for stale records: when a
// record was produced at a lower cost than currently configured, the
// work-factor difference is burned after a failed verification so
// response timing does not reveal which records still await an
// upgrade.
func (h *BcryptSHA256Hasher) HardenRuntime(secret, encoded string) {
	bcryptHardenRuntime(AlgorithmBcryptSHA256, sha256Prehash(secret), encoded, h.rounds)
}

// BcryptHasher hashes secrets with raw bcrypt, without a prehash.
//
// It exists to verify and migrate records created by external systems
// that store plain bcrypt. Secrets longer than 72 bytes are rejected
// by the underlying primitive rather than silently truncated; choose
// [BcryptSHA256Hasher] for new records.
type BcryptHasher struct {
	rounds int
}

// NewBcryptHasher constructs a raw BcryptHasher.
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if err := validateBcryptOptions(opts); err != nil {
		return nil, err
	}
	return &BcryptHasher{rounds: opts.Rounds}, nil
}

// Algorithm returns [AlgorithmBcrypt].
func (h *BcryptHasher) Algorithm() Algorithm { return AlgorithmBcrypt }

// Rounds returns the configured work factor.
func (h *BcryptHasher) Rounds() int { return h.rounds }

// Salt returns ""; bcrypt manages its own salt.
func (h *BcryptHasher) Salt() (string, error) { return "", nil }

// Encode hashes secret. salt must be empty. Secrets longer than 72
// bytes fail with the underlying bcrypt error.
func (h *BcryptHasher) Encode(secret, salt string) (string, error) {
	return bcryptEncode(AlgorithmBcrypt, []byte(secret), salt, h.rounds)
}

// Verify reports whether secret matches the record.
func (h *BcryptHasher) Verify(secret, encoded string) (bool, error) {
	return bcryptVerify(AlgorithmBcrypt, []byte(secret), encoded)
}

// MustUpdate reports true when the stored work factor differs from the
// configured rounds.
func (h *BcryptHasher) MustUpdate(encoded string) bool {
	return bcryptMustUpdate(AlgorithmBcrypt, encoded, h.rounds)
}

// SafeSummary returns the record's fields with salt and checksum
// redacted.
func (h *BcryptHasher) SafeSummary(encoded string) (Summary, error) {
	return bcryptSafeSummary(AlgorithmBcrypt, encoded)
}

// HardenRuntime burns the work-factor difference after a failed
// verification of a stale record; see
// [BcryptSHA256Hasher.HardenRuntime].
func (h *BcryptHasher) HardenRuntime(secret, encoded string) {
	bcryptHardenRuntime(AlgorithmBcrypt, []byte(secret), encoded, h.rounds)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared helpers
// ──────────────────────────────────────────────────────────────────────────────

// sha256Prehash returns the hex form of the secret's SHA-256 digest.
// Hex rather than raw bytes: the digest may contain NUL bytes, which
// bcrypt treats as a terminator.
func sha256Prehash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}

func bcryptEncode(alg Algorithm, secret []byte, salt string, rounds int) (string, error) {
	if salt != "" {
		return "", fmt.Errorf("%w: bcrypt generates its own salt, none may be supplied",
			ErrInvalidOption)
	}
	data, err := bcrypt.GenerateFromPassword(secret, rounds)
	if err != nil {
		return "", fmt.Errorf("hashers: bcrypt: %w", err)
	}
	// The Modular Crypt string starts with "$", so the result reads
	// "<algorithm>$$2b$...".
	return string(alg) + separator + string(data), nil
}

func bcryptVerify(alg Algorithm, secret []byte, encoded string) (bool, error) {
	data, err := bcryptData(alg, encoded)
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(data), secret)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return true, nil
}

func bcryptMustUpdate(alg Algorithm, encoded string, rounds int) bool {
	data, err := bcryptData(alg, encoded)
	if err != nil {
		return false
	}
	cost, err := bcrypt.Cost([]byte(data))
	if err != nil {
		return false
	}
	return cost != rounds
}

func bcryptSafeSummary(alg Algorithm, encoded string) (Summary, error) {
	data, err := bcryptData(alg, encoded)
	if err != nil {
		return nil, err
	}
	cost, err := bcrypt.Cost([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	// "$2b$12$<22-char salt><31-char checksum>"
	rest := data[strings.LastIndex(data, separator)+1:]
	salt, checksum := "", ""
	if len(rest) > 22 {
		salt, checksum = rest[:22], rest[22:]
	}
	return Summary{
		"algorithm":   string(alg),
		"work factor": strconv.Itoa(cost),
		"salt":        maskHash(salt, 2),
		"checksum":    maskHash(checksum, 6),
	}, nil
}

// bcryptHardenRuntime re-hashes at the stored cost often enough to
// cover the gap to the configured cost. The work factor is
// logarithmic: each extra round doubles the load, so a record stored
// at cost c under a configured cost r is 2^(r-c)-1 hashes short.
func bcryptHardenRuntime(alg Algorithm, secret []byte, encoded string, rounds int) {
	data, err := bcryptData(alg, encoded)
	if err != nil {
		return
	}
	cost, err := bcrypt.Cost([]byte(data))
	if err != nil || cost >= rounds {
		return
	}
	for i := 0; i < 1<<(rounds-cost)-1; i++ {
		_, _ = bcrypt.GenerateFromPassword(secret, cost)
	}
}

// bcryptData strips the algorithm identifier and returns the inner
// Modular Crypt string.
func bcryptData(alg Algorithm, encoded string) (string, error) {
	prefix, data, found := strings.Cut(encoded, separator)
	if !found || data == "" {
		return "", fmt.Errorf("%w: missing bcrypt payload", ErrInvalidHash)
	}
	if Algorithm(prefix) != alg {
		return "", fmt.Errorf("%w: record is %q, not %q",
			ErrAlgorithmMismatch, prefix, alg)
	}
	return data, nil
}
