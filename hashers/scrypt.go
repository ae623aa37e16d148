package hashers

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"golang.org/x/crypto/scrypt"
)

const (
	// DefaultScryptWorkFactor is the default CPU/memory cost parameter N.
	// Must be a power of two.
	DefaultScryptWorkFactor = 16384

	// DefaultScryptBlockSize is the default block size parameter r.
	DefaultScryptBlockSize = 8

	// DefaultScryptParallelism is the default parallelisation parameter p.
	DefaultScryptParallelism = 1

	// scryptKeyLen is the derived-key length in bytes.
	scryptKeyLen = 64
)

// ScryptOptions configures a [ScryptHasher].
type ScryptOptions struct {
	// WorkFactor is the scrypt cost parameter N.
	// Must be a power of two greater than 1.
	// Default: [DefaultScryptWorkFactor].
	WorkFactor int

	// BlockSize is the scrypt block size parameter r.
	// Minimum: 1. Default: [DefaultScryptBlockSize].
	BlockSize int

	// Parallelism is the scrypt parallelisation parameter p.
	// Minimum: 1. Default: [DefaultScryptParallelism].
	Parallelism int

	// SaltLength is the length of generated alphanumeric salts.
	// Minimum: 1. Default: [DefaultSaltLength].
	SaltLength int
}

// DefaultScryptOptions returns ScryptOptions with the recommended
// defaults.
func DefaultScryptOptions() ScryptOptions {
	return ScryptOptions{
		WorkFactor:  DefaultScryptWorkFactor,
		BlockSize:   DefaultScryptBlockSize,
		Parallelism: DefaultScryptParallelism,
		SaltLength:  DefaultSaltLength,
	}
}

func validateScryptOptions(opts ScryptOptions) error {
	if opts.WorkFactor <= 1 || opts.WorkFactor&(opts.WorkFactor-1) != 0 {
		return fmt.Errorf("%w: scrypt work factor %d must be a power of two > 1",
			ErrInvalidOption, opts.WorkFactor)
	}
	if opts.BlockSize < 1 {
		return fmt.Errorf("%w: scrypt block size must be ≥ 1, got %d",
			ErrInvalidOption, opts.BlockSize)
	}
	if opts.Parallelism < 1 {
		return fmt.Errorf("%w: scrypt parallelism must be ≥ 1, got %d",
			ErrInvalidOption, opts.Parallelism)
	}
	if opts.SaltLength < 1 {
		return fmt.Errorf("%w: scrypt salt length must be ≥ 1, got %d",
			ErrInvalidOption, opts.SaltLength)
	}
	return nil
}

// ScryptHasher hashes secrets with scrypt (RFC 7914).
//
// Record format (dollar-delimited, standard base64 hash):
//
//	scrypt$16384$<salt>$8$1$<base64 key>
//
// All three cost parameters travel inside the record.
//
// # Thread safety
//
// ScryptHasher is immutable after construction and safe for concurrent
// use.
type ScryptHasher struct {
	opts ScryptOptions
}

// NewScryptHasher constructs a ScryptHasher.
// Use [DefaultScryptOptions] for recommended defaults.
func NewScryptHasher(opts ScryptOptions) (*ScryptHasher, error) {
	if err := validateScryptOptions(opts); err != nil {
		return nil, err
	}
	return &ScryptHasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmScrypt].
func (h *ScryptHasher) Algorithm() Algorithm { return AlgorithmScrypt }

// Options returns the current parameter set.
func (h *ScryptHasher) Options() ScryptOptions { return h.opts }

// Salt returns a fresh alphanumeric salt of the configured length.
func (h *ScryptHasher) Salt() (string, error) { return randomString(h.opts.SaltLength) }

// Encode hashes secret with the configured parameters. An empty salt
// means "generate one".
func (h *ScryptHasher) Encode(secret, salt string) (string, error) {
	if salt == "" {
		var err error
		if salt, err = h.Salt(); err != nil {
			return "", err
		}
	}
	return h.encode(secret, salt, h.opts.WorkFactor, h.opts.BlockSize, h.opts.Parallelism)
}

func (h *ScryptHasher) encode(secret, salt string, n, r, p int) (string, error) {
	key, err := scrypt.Key([]byte(secret), []byte(salt), n, r, p, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("hashers: scrypt: %w", err)
	}
	return joinRecord(
		string(AlgorithmScrypt),
		strconv.Itoa(n),
		salt,
		strconv.Itoa(r),
		strconv.Itoa(p),
		base64.StdEncoding.EncodeToString(key),
	)
}

// Verify re-derives the key with the parameters stored in the record
// and compares in constant time.
func (h *ScryptHasher) Verify(secret, encoded string) (bool, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return false, err
	}
	computed, err := h.encode(secret, d.salt, d.workFactor, d.blockSize, d.parallelism)
	if err != nil {
		return false, err
	}
	return constantTimeEq(encoded, computed), nil
}

// MustUpdate reports true when any stored cost parameter differs from
// the configuration, or the stored salt is too short.
func (h *ScryptHasher) MustUpdate(encoded string) bool {
	d, err := h.decode(encoded)
	if err != nil {
		return false
	}
	return d.workFactor != h.opts.WorkFactor ||
		d.blockSize != h.opts.BlockSize ||
		d.parallelism != h.opts.Parallelism ||
		saltRequiresUpdate(d.salt)
}

// SafeSummary returns the record's fields with salt and hash redacted.
func (h *ScryptHasher) SafeSummary(encoded string) (Summary, error) {
	d, err := h.decode(encoded)
	if err != nil {
		return nil, err
	}
	return Summary{
		"algorithm":   string(AlgorithmScrypt),
		"work factor": strconv.Itoa(d.workFactor),
		"block size":  strconv.Itoa(d.blockSize),
		"parallelism": strconv.Itoa(d.parallelism),
		"salt":        maskHash(d.salt, 2),
		"hash":        maskHash(d.hash, 6),
	}, nil
}

type scryptDecoded struct {
	workFactor  int
	salt        string
	blockSize   int
	parallelism int
	hash        string
}

// decode parses "scrypt$N$salt$r$p$hash" (6 components).
func (h *ScryptHasher) decode(encoded string) (scryptDecoded, error) {
	components, err := splitRecord(encoded, AlgorithmScrypt, 6)
	if err != nil {
		return scryptDecoded{}, err
	}
	n, err1 := strconv.Atoi(components[1])
	r, err2 := strconv.Atoi(components[3])
	p, err3 := strconv.Atoi(components[4])
	if err1 != nil || err2 != nil || err3 != nil || n < 2 || r < 1 || p < 1 {
		return scryptDecoded{}, fmt.Errorf("%w: bad scrypt parameters", ErrInvalidHash)
	}
	return scryptDecoded{
		workFactor:  n,
		salt:        components[2],
		blockSize:   r,
		parallelism: p,
		hash:        components[5],
	}, nil
}
