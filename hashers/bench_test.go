package hashers_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/go-django-auth/hashers"
)

// ──────────────────────────────────────────────────────────────────────────────
// PBKDF2 benchmarks
// ──────────────────────────────────────────────────────────────────────────────
//
// Note: the default iteration count is intentionally slow.  The Fast variants
// measure framework overhead only.

func BenchmarkPBKDF2SHA256_Default_Encode(b *testing.B) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(hashers.DefaultPBKDF2Options())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

func BenchmarkPBKDF2SHA256_Default_Verify(b *testing.B) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(hashers.DefaultPBKDF2Options())
	encoded, _ := h.Encode("bench-password", "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Verify("bench-password", encoded)
	}
}

func BenchmarkPBKDF2SHA256_Fast_Encode(b *testing.B) {
	h, _ := hashers.NewPBKDF2SHA256Hasher(fastPBKDF2Opts())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bcrypt benchmarks
// ──────────────────────────────────────────────────────────────────────────────

func BenchmarkBcryptSHA256_MinCost_Encode(b *testing.B) {
	h, _ := hashers.NewBcryptSHA256Hasher(hashers.BcryptOptions{Rounds: bcrypt.MinCost})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

func BenchmarkBcryptSHA256_Rounds12_Encode(b *testing.B) {
	h, _ := hashers.NewBcryptSHA256Hasher(hashers.DefaultBcryptOptions())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2 and scrypt benchmarks
// ──────────────────────────────────────────────────────────────────────────────

func BenchmarkArgon2_Default_Encode(b *testing.B) {
	h, _ := hashers.NewArgon2Hasher(hashers.DefaultArgon2Options())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

func BenchmarkScrypt_Default_Encode(b *testing.B) {
	h, _ := hashers.NewScryptHasher(hashers.DefaultScryptOptions())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Encode("bench-password", "")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Manager benchmarks
// ──────────────────────────────────────────────────────────────────────────────

func BenchmarkManager_MakePassword(b *testing.B) {
	m := newTestManager(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.MakePassword("bench-password")
	}
}

func BenchmarkManager_CheckPassword(b *testing.B) {
	m := newTestManager(b)
	encoded, _ := m.MakePassword("bench-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.CheckPassword("bench-password", encoded, nil)
	}
}

func BenchmarkIdentifyAlgorithm(b *testing.B) {
	const encoded = "pbkdf2_sha256$600000$seasaltseasaltseasalts$qyEchFf/bQ12BJSnsqhUG2aQdea/TrgkLspnRoPFL94="
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = hashers.IdentifyAlgorithm(encoded)
	}
}
