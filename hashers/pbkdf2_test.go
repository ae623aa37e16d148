package hashers_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-django-auth/hashers"
)

// fastPBKDF2Opts returns options safe for tests: iteration counts in
// the hundreds of thousands have no place in a unit-test loop.
func fastPBKDF2Opts() hashers.PBKDF2Options {
	return hashers.PBKDF2Options{Iterations: 10, SaltLength: 22}
}

// ──────────────────────────────────────────────────────────────────────────────
// Construction
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPBKDF2SHA256Hasher_Defaults(t *testing.T) {
	h, err := hashers.NewPBKDF2SHA256Hasher(hashers.DefaultPBKDF2Options())
	if err != nil {
		t.Fatalf("NewPBKDF2SHA256Hasher: %v", err)
	}
	if h.Algorithm() != hashers.AlgorithmPBKDF2SHA256 {
		t.Errorf("algorithm = %q, want pbkdf2_sha256", h.Algorithm())
	}
	if h.Iterations() != hashers.DefaultPBKDF2Iterations {
		t.Errorf("iterations = %d, want %d", h.Iterations(), hashers.DefaultPBKDF2Iterations)
	}
}

func TestNewPBKDF2SHA256Hasher_InvalidOptions(t *testing.T) {
	for _, opts := range []hashers.PBKDF2Options{
		{Iterations: 0, SaltLength: 22},
		{Iterations: -1, SaltLength: 22},
		{Iterations: 10, SaltLength: 0},
	} {
		if _, err := hashers.NewPBKDF2SHA256Hasher(opts); !errors.Is(err, hashers.ErrInvalidOption) {
			t.Errorf("opts %+v: expected ErrInvalidOption, got %v", opts, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode / Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestPBKDF2_RoundTrip(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	encoded, err := h.Encode("lètmein", "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	ok, err := h.Verify("lètmein", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("correct secret should verify")
	}
	ok, _ = h.Verify("letmein", encoded)
	if ok {
		t.Error("wrong secret should not verify")
	}
}

func TestPBKDF2_KnownRecord(t *testing.T) {
	// Fixture produced by an independent PBKDF2 implementation
	// (10 iterations, salt "seasalt").
	const encoded = "pbkdf2_sha256$10$seasalt$VbSPqS8BdRSyZf3o3EFw4JIgQ7e+0T7vCqysXj34iII="
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	ok, err := h.Verify("lètmein", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("known record should verify")
	}
}

func TestPBKDF2SHA1_KnownRecord(t *testing.T) {
	const encoded = "pbkdf2_sha1$10$seasalt$wp1Is8HMt3fH32HSJWQKKwD0mBE="
	h, _ := hashers.NewPBKDF2SHA1Hasher(fastPBKDF2Opts())
	ok, err := h.Verify("lètmein", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("known record should verify")
	}
}

func TestPBKDF2_EncodeWithSuppliedSalt_Deterministic(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	a, _ := h.Encode("secret", "seasalt")
	b, _ := h.Encode("secret", "seasalt")
	if a != b {
		t.Error("same salt must produce identical records")
	}
	if !strings.HasPrefix(a, "pbkdf2_sha256$10$seasalt$") {
		t.Errorf("unexpected record shape: %q", a)
	}
}

func TestPBKDF2_GeneratedSaltsDiffer(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	a, _ := h.Encode("secret", "")
	b, _ := h.Encode("secret", "")
	if a == b {
		t.Error("two encodes with generated salts must differ")
	}
}

func TestPBKDF2_EmptySecret(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	encoded, err := h.Encode("", "")
	if err != nil {
		t.Fatalf("Encode(\"\"): %v", err)
	}
	if ok, _ := h.Verify("", encoded); !ok {
		t.Error("empty secret should verify against its own record")
	}
	if ok, _ := h.Verify("x", encoded); ok {
		t.Error("non-empty secret should not verify an empty-secret record")
	}
}

func TestPBKDF2_Verify_WrongAlgorithm(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	_, err := h.Verify("secret", "pbkdf2_sha1$10$seasalt$wp1Is8HMt3fH32HSJWQKKwD0mBE=")
	if !errors.Is(err, hashers.ErrAlgorithmMismatch) {
		t.Errorf("expected ErrAlgorithmMismatch, got %v", err)
	}
}

func TestPBKDF2_Verify_MalformedRecord(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	for _, encoded := range []string{
		"",
		"pbkdf2_sha256",
		"pbkdf2_sha256$ten$seasalt$AAAA",
		"pbkdf2_sha256$10$seasalt",
		"pbkdf2_sha256$10$seasalt$AAAA$extra",
	} {
		if _, err := h.Verify("secret", encoded); !errors.Is(err, hashers.ErrInvalidHash) {
			t.Errorf("%q: expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// MustUpdate / SafeSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestPBKDF2_MustUpdate_IterationDrift(t *testing.T) {
	old, _ := hashers.NewPBKDF2SHA256Hasher(hashers.PBKDF2Options{Iterations: 10, SaltLength: 22})
	cur, _ := hashers.NewPBKDF2SHA256Hasher(hashers.PBKDF2Options{Iterations: 20, SaltLength: 22})

	encoded, _ := old.Encode("secret", "")
	if old.MustUpdate(encoded) {
		t.Error("record at configured iterations should not need update")
	}
	if !cur.MustUpdate(encoded) {
		t.Error("record below configured iterations should need update")
	}
}

func TestPBKDF2_MustUpdate_ShortSalt(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	// 12 alphanumeric characters carry ~71 bits, well under the
	// 128-bit floor.
	encoded, _ := h.Encode("secret", "abcdefghijkl")
	if !h.MustUpdate(encoded) {
		t.Error("short-salt record should need update")
	}
}

func TestPBKDF2_MustUpdate_MalformedRecord(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	if h.MustUpdate("garbage") {
		t.Error("malformed record can never be upgraded")
	}
}

func TestPBKDF2_SafeSummary_Redacts(t *testing.T) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	encoded, _ := h.Encode("secret", "seasaltseasaltseasalt1")

	summary, err := h.SafeSummary(encoded)
	if err != nil {
		t.Fatalf("SafeSummary: %v", err)
	}
	if summary["algorithm"] != "pbkdf2_sha256" || summary["iterations"] != "10" {
		t.Errorf("summary = %v", summary)
	}
	if summary["salt"] != "se********************" {
		t.Errorf("salt not redacted: %q", summary["salt"])
	}
	if !strings.Contains(summary["hash"], "*") {
		t.Errorf("hash not redacted: %q", summary["hash"])
	}
	if strings.Contains(summary["hash"], "secret") {
		t.Error("summary must never contain the secret")
	}
}
