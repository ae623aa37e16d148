package hashers

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// DefaultArgon2Memory is the default memory cost in KiB (100 MiB).
	DefaultArgon2Memory uint32 = 102400

	// DefaultArgon2Time is the default number of passes over memory.
	DefaultArgon2Time uint32 = 2

	// DefaultArgon2Parallelism is the default degree of parallelism.
	DefaultArgon2Parallelism uint8 = 8

	// DefaultArgon2KeyLen is the default derived-key length in bytes.
	DefaultArgon2KeyLen uint32 = 32
)

// argon2 variety tokens as they appear inside encoded records.
const (
	argon2VarietyID = "argon2id"
	argon2VarietyI  = "argon2i"
)

// Argon2Options configures an [Argon2Hasher].
//
// All parameters are encoded into the record, so changing them affects
// only newly produced records; existing records stay verifiable and
// report [Hasher.MustUpdate] until re-encoded.
type Argon2Options struct {
	// Memory is the memory cost in KiB.
	// Minimum: 8 × Parallelism. Default: [DefaultArgon2Memory].
	Memory uint32

	// Time is the number of passes over memory.
	// Minimum: 1. Default: [DefaultArgon2Time].
	Time uint32

	// Parallelism is the number of lanes.
	// Minimum: 1. Default: [DefaultArgon2Parallelism].
	Parallelism uint8

	// KeyLen is the derived-key length in bytes.
	// Minimum: 4. Default: [DefaultArgon2KeyLen].
	KeyLen uint32

	// SaltLength is the length of generated alphanumeric salts.
	// Minimum: 8. Default: [DefaultSaltLength].
	SaltLength int
}

// DefaultArgon2Options returns Argon2Options with the recommended
// defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:      DefaultArgon2Memory,
		Time:        DefaultArgon2Time,
		Parallelism: DefaultArgon2Parallelism,
		KeyLen:      DefaultArgon2KeyLen,
		SaltLength:  DefaultSaltLength,
	}
}

func validateArgon2Options(opts Argon2Options) error {
	if opts.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	}
	if opts.Parallelism < 1 {
		return fmt.Errorf("%w: argon2 parallelism must be ≥ 1, got %d",
			ErrInvalidOption, opts.Parallelism)
	}
	if opts.Memory < 8*uint32(opts.Parallelism) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×parallelism (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Parallelism))
	}
	if opts.KeyLen < 4 {
		return fmt.Errorf("%w: argon2 key length must be ≥ 4, got %d",
			ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLength < 8 {
		return fmt.Errorf("%w: argon2 salt length must be ≥ 8, got %d",
			ErrInvalidOption, opts.SaltLength)
	}
	return nil
}

// Argon2Hasher hashes secrets with Argon2. New records always use the
// argon2id variety; argon2i records produced by older deployments
// remain verifiable and upgrade on login.
//
// Record format — the algorithm identifier followed by a PHC string:
//
//	argon2$argon2id$v=19$m=102400,t=2,p=8$<base64 salt>$<base64 hash>
//
// The base64 encoding is the standard alphabet without padding, the
// convention used by Argon2 reference implementations.
//
// # Thread safety
//
// Argon2Hasher is immutable after construction and safe for concurrent
// use.
type Argon2Hasher struct {
	opts Argon2Options
}

// NewArgon2Hasher constructs an Argon2Hasher.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2Hasher(opts Argon2Options) (*Argon2Hasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2Hasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmArgon2].
func (h *Argon2Hasher) Algorithm() Algorithm { return AlgorithmArgon2 }

// Options returns the current parameter set.
func (h *Argon2Hasher) Options() Argon2Options { return h.opts }

// Salt returns a fresh alphanumeric salt of the configured length.
func (h *Argon2Hasher) Salt() (string, error) { return randomString(h.opts.SaltLength) }

// Encode hashes secret with argon2id. An empty salt means "generate
// one".
func (h *Argon2Hasher) Encode(secret, salt string) (string, error) {
	if salt == "" {
		var err error
		if salt, err = h.Salt(); err != nil {
			return "", err
		}
	}
	key := argon2.IDKey([]byte(secret), []byte(salt),
		h.opts.Time, h.opts.Memory, h.opts.Parallelism, h.opts.KeyLen)
	return fmt.Sprintf("%s$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2,
		argon2VarietyID,
		argon2.Version,
		h.opts.Memory, h.opts.Time, h.opts.Parallelism,
		base64.RawStdEncoding.EncodeToString([]byte(salt)),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the key with the variety and parameters stored in
// the record and compares in constant time.
func (h *Argon2Hasher) Verify(secret, encoded string) (bool, error) {
	p, err := decodeArgon2(encoded)
	if err != nil {
		return false, err
	}
	var computed []byte
	switch p.variety {
	case argon2VarietyID:
		computed = argon2.IDKey([]byte(secret), p.salt, p.time, p.memory, p.parallelism, p.keyLen)
	case argon2VarietyI:
		computed = argon2.Key([]byte(secret), p.salt, p.time, p.memory, p.parallelism, p.keyLen)
	default:
		return false, fmt.Errorf("%w: unsupported argon2 variety %q", ErrInvalidHash, p.variety)
	}
	return constantTimeEq(string(computed), string(p.hash)), nil
}

// MustUpdate reports true when the record uses argon2i, carries
// parameters that differ from the configured ones, or has a short
// salt.
func (h *Argon2Hasher) MustUpdate(encoded string) bool {
	p, err := decodeArgon2(encoded)
	if err != nil {
		return false
	}
	return p.variety != argon2VarietyID ||
		p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.parallelism != h.opts.Parallelism ||
		saltRequiresUpdate(string(p.salt))
}

// SafeSummary returns the record's fields with salt and hash redacted.
func (h *Argon2Hasher) SafeSummary(encoded string) (Summary, error) {
	p, err := decodeArgon2(encoded)
	if err != nil {
		return nil, err
	}
	return Summary{
		"algorithm":   string(AlgorithmArgon2),
		"variety":     p.variety,
		"version":     strconv.FormatUint(uint64(p.version), 10),
		"memory":      strconv.FormatUint(uint64(p.memory), 10),
		"time":        strconv.FormatUint(uint64(p.time), 10),
		"parallelism": strconv.FormatUint(uint64(p.parallelism), 10),
		"salt":        maskHash(string(p.salt), 2),
		"hash":        maskHash(base64.RawStdEncoding.EncodeToString(p.hash), 6),
	}, nil
}

// argon2Decoded holds parameters and raw values decoded from a record.
type argon2Decoded struct {
	variety     string
	version     uint32
	memory      uint32
	time        uint32
	parallelism uint8
	keyLen      uint32
	salt        []byte
	hash        []byte
}

// decodeArgon2 parses "argon2$<variety>$v=…$m=…,t=…,p=…$<salt>$<hash>"
// (6 dollar-delimited components).
func decodeArgon2(encoded string) (*argon2Decoded, error) {
	components := strings.Split(encoded, separator)
	if len(components) != 6 {
		return nil, fmt.Errorf("%w: expected 6 components, got %d",
			ErrInvalidHash, len(components))
	}
	if Algorithm(components[0]) != AlgorithmArgon2 {
		return nil, fmt.Errorf("%w: record is %q, not %q",
			ErrAlgorithmMismatch, components[0], AlgorithmArgon2)
	}
	variety := components[1]
	if variety != argon2VarietyID && variety != argon2VarietyI {
		return nil, fmt.Errorf("%w: unknown argon2 variety %q", ErrInvalidHash, variety)
	}

	version, err := parseKV(components[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	params, err := parseParams(components[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := params["m"]
	time, ok2 := params["t"]
	parallelism, ok3 := params["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in %q", ErrInvalidHash, components[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(components[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(components[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}

	return &argon2Decoded{
		variety:     variety,
		version:     uint32(version),
		memory:      uint32(memory),
		time:        uint32(time),
		parallelism: uint8(parallelism),
		keyLen:      uint32(len(hash)),
		salt:        salt,
		hash:        hash,
	}, nil
}

// parseKV parses a "key=value" string and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 64)
}

// parseParams splits "m=102400,t=2,p=8" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}
