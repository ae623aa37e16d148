package hashers_test

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/argon2"

	"github.com/hasbyte1/go-django-auth/hashers"
)

// fastArgon2Opts returns memory-light options for tests.
func fastArgon2Opts() hashers.Argon2Options {
	return hashers.Argon2Options{
		Memory:      8,
		Time:        1,
		Parallelism: 1,
		KeyLen:      16,
		SaltLength:  8,
	}
}

// argon2iRecord builds an argon2i record the way an older deployment
// would have written it.
func argon2iRecord(secret, salt string, opts hashers.Argon2Options) string {
	key := argon2.Key([]byte(secret), []byte(salt),
		opts.Time, opts.Memory, opts.Parallelism, opts.KeyLen)
	return fmt.Sprintf("argon2$argon2i$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, opts.Memory, opts.Time, opts.Parallelism,
		base64.RawStdEncoding.EncodeToString([]byte(salt)),
		base64.RawStdEncoding.EncodeToString(key))
}

// ──────────────────────────────────────────────────────────────────────────────
// Construction
// ──────────────────────────────────────────────────────────────────────────────

func TestNewArgon2Hasher_InvalidOptions(t *testing.T) {
	bad := []hashers.Argon2Options{
		{Memory: 8, Time: 0, Parallelism: 1, KeyLen: 16, SaltLength: 8},
		{Memory: 8, Time: 1, Parallelism: 0, KeyLen: 16, SaltLength: 8},
		{Memory: 4, Time: 1, Parallelism: 1, KeyLen: 16, SaltLength: 8},
		{Memory: 8, Time: 1, Parallelism: 1, KeyLen: 2, SaltLength: 8},
		{Memory: 8, Time: 1, Parallelism: 1, KeyLen: 16, SaltLength: 4},
	}
	for _, opts := range bad {
		if _, err := hashers.NewArgon2Hasher(opts); !errors.Is(err, hashers.ErrInvalidOption) {
			t.Errorf("opts %+v: expected ErrInvalidOption, got %v", opts, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode / Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_RoundTrip(t *testing.T) {
	h, _ := hashers.NewArgon2Hasher(fastArgon2Opts())
	encoded, err := h.Encode("lètmein", "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(encoded, "argon2$argon2id$v=19$m=8,t=1,p=1$") {
		t.Errorf("unexpected record shape: %q", encoded)
	}
	if ok, _ := h.Verify("lètmein", encoded); !ok {
		t.Error("correct secret should verify")
	}
	if ok, _ := h.Verify("letmein", encoded); ok {
		t.Error("wrong secret should not verify")
	}
}

func TestArgon2_VerifiesArgon2iRecords(t *testing.T) {
	opts := fastArgon2Opts()
	h, _ := hashers.NewArgon2Hasher(opts)
	encoded := argon2iRecord("letmein", "seasaltX", opts)

	ok, err := h.Verify("letmein", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("argon2i record should still verify")
	}
	if !h.MustUpdate(encoded) {
		t.Error("argon2i record should upgrade to argon2id")
	}
}

func TestArgon2_Verify_MalformedRecord(t *testing.T) {
	h, _ := hashers.NewArgon2Hasher(fastArgon2Opts())
	for _, encoded := range []string{
		"argon2",
		"argon2$argon2d$v=19$m=8,t=1,p=1$AAAA$AAAA",
		"argon2$argon2id$v=19$m=8,t=1$AAAA$AAAA",
		"argon2$argon2id$v=19$m=8,t=1,p=1$!notb64$AAAA",
	} {
		if _, err := h.Verify("secret", encoded); !errors.Is(err, hashers.ErrInvalidHash) {
			t.Errorf("%q: expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// MustUpdate / SafeSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_MustUpdate_ParameterDrift(t *testing.T) {
	opts := fastArgon2Opts()
	h, _ := hashers.NewArgon2Hasher(opts)
	encoded, _ := h.Encode("secret", "longenoughsaltabcdefgh")
	if h.MustUpdate(encoded) {
		t.Error("record at configured parameters should not need update")
	}

	opts.Time = 2
	stronger, _ := hashers.NewArgon2Hasher(opts)
	if !stronger.MustUpdate(encoded) {
		t.Error("record with stale time cost should need update")
	}
}

func TestArgon2_MustUpdate_ShortSalt(t *testing.T) {
	h, _ := hashers.NewArgon2Hasher(fastArgon2Opts())
	encoded, _ := h.Encode("secret", "shortier")
	if !h.MustUpdate(encoded) {
		t.Error("8-character salt should trigger an upgrade")
	}
}

func TestArgon2_SafeSummary_Redacts(t *testing.T) {
	h, _ := hashers.NewArgon2Hasher(fastArgon2Opts())
	encoded, _ := h.Encode("secret", "")

	summary, err := h.SafeSummary(encoded)
	if err != nil {
		t.Fatalf("SafeSummary: %v", err)
	}
	if summary["algorithm"] != "argon2" || summary["variety"] != "argon2id" {
		t.Errorf("summary = %v", summary)
	}
	if summary["memory"] != "8" || summary["time"] != "1" || summary["parallelism"] != "1" {
		t.Errorf("parameters wrong in summary: %v", summary)
	}
	if !strings.Contains(summary["salt"], "*") || !strings.Contains(summary["hash"], "*") {
		t.Errorf("salt/hash not redacted: %v", summary)
	}
}
