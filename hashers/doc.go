// Package hashers provides pluggable, upgrade-aware password hashing
// modelled after Django's django.contrib.auth.hashers module.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface. Every stored
// credential is a self-describing, dollar-delimited record whose first
// component names the algorithm that produced it, for example:
//
//	pbkdf2_sha256$600000$h8BK2LTKpIq4yVp5ZBWtpY$0pPJjnWaty+G2hRzgyQIBKlsBrtdDUZoTLfcYYlZn+E=
//
// Because every parameter travels inside the record, a record hashed
// years ago with different settings remains verifiable today.
//
// The [Manager] holds an ordered set of hashers. The first entry is the
// preferred hasher used for all newly created records; every other
// entry remains valid for verification only. [Manager.CheckPassword]
// re-encodes a record with the preferred hasher the moment a correct
// secret is supplied and hands the replacement to the caller — the only
// time an upgrade is possible, since this package never sees the
// clear-text secret otherwise and never persists anything itself.
//
// # Quick start
//
//	m, err := hashers.NewDefaultManager() // pbkdf2_sha256 preferred
//	if err != nil { log.Fatal(err) }
//
//	encoded, _ := m.MakePassword("my-secret-password")
//	ok, _ := m.CheckPassword("my-secret-password", encoded, nil)
//
// Upgrade-on-login:
//
//	ok, err := m.CheckPassword(candidate, stored, func(renewed string) {
//	    persist(userID, renewed) // caller owns storage
//	})
//
// # Security defaults
//
//   - pbkdf2_sha256: 600,000 iterations of HMAC-SHA256 (OWASP-aligned).
//   - bcrypt_sha256: cost 12, with a SHA-256 prehash that removes
//     bcrypt's 72-byte input ceiling.
//   - argon2: argon2id, m=100 MiB, t=2, p=8.
//   - scrypt: N=16384, r=8, p=1.
//
// Accounts without a real password store an unusable sentinel record
// (see [MakeUnusablePassword]) that can never verify and never equals
// another sentinel.
//
// # Concurrency
//
// All hashers are immutable after construction and safe for concurrent
// use. The [Manager] serialises registration behind an RWMutex, but
// [Manager.Register] is intended for startup and test setup only;
// concurrent lookups are lock-cheap and side-effect-free.
package hashers
