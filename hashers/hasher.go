package hashers

import (
	"fmt"
	"strings"
)

// Algorithm identifies a password-hashing algorithm. It is the first
// component of every encoded record, so renaming an identifier strands
// the records that carry it.
type Algorithm string

// Identifiers of the built-in hashers. The values are fixed by the
// stored-record format and must never change.
const (
	// AlgorithmPBKDF2SHA256 selects PBKDF2 over HMAC-SHA256, the
	// preferred algorithm for new records.
	AlgorithmPBKDF2SHA256 Algorithm = "pbkdf2_sha256"
	// AlgorithmPBKDF2SHA1 selects PBKDF2 over HMAC-SHA1. Kept for
	// verifying legacy records; new records should not use it.
	AlgorithmPBKDF2SHA1 Algorithm = "pbkdf2_sha1"
	// AlgorithmArgon2 selects Argon2 (argon2id for new records; argon2i
	// records remain verifiable).
	AlgorithmArgon2 Algorithm = "argon2"
	// AlgorithmBcryptSHA256 selects bcrypt with a SHA-256 prehash. The
	// prehash removes bcrypt's 72-byte input ceiling.
	AlgorithmBcryptSHA256 Algorithm = "bcrypt_sha256"
	// AlgorithmBcrypt selects raw bcrypt, subject to the 72-byte input
	// ceiling. Kept for migrating records from external stores.
	AlgorithmBcrypt Algorithm = "bcrypt"
	// AlgorithmScrypt selects scrypt.
	AlgorithmScrypt Algorithm = "scrypt"
	// AlgorithmSHA1 selects a single-round salted SHA-1 digest.
	// Verification only.
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmMD5 selects a single-round salted MD5 digest. The weakest
	// salted variant; verification only.
	AlgorithmMD5 Algorithm = "md5"
	// AlgorithmUnsaltedSHA1 selects unsalted SHA-1. Backward
	// compatibility only; new records must never use it.
	AlgorithmUnsaltedSHA1 Algorithm = "unsalted_sha1"
	// AlgorithmUnsaltedMD5 selects unsalted MD5. Backward compatibility
	// only; new records must never use it.
	AlgorithmUnsaltedMD5 Algorithm = "unsalted_md5"
	// AlgorithmCrypt selects the traditional Unix crypt(3) one-way
	// function. Only useful for records imported from system password
	// files; not registered by [NewDefaultManager].
	AlgorithmCrypt Algorithm = "crypt"
)

// Hasher is the capability set implemented by every password-hashing
// algorithm.
//
// All implementations are immutable after construction and safe for
// concurrent use by multiple goroutines.
//
// # Portability note
//
// This interface maps directly to the abstract base class of the
// source framework (encode / verify / must_update / safe_summary).
// The only Go-specific idiom is returning an error value alongside the
// result; other languages raise on failure instead.
type Hasher interface {
	// Algorithm returns the identifier this hasher encodes and verifies.
	Algorithm() Algorithm

	// Salt returns a freshly generated salt suitable for Encode, drawn
	// from a cryptographically secure source. Hashers that manage their
	// own salt internally (bcrypt) or take none (unsalted digests)
	// return "".
	Salt() (string, error)

	// Encode hashes secret and returns the full encoded record,
	// algorithm identifier included. An empty salt means "generate one";
	// a caller-supplied salt must not contain the "$" separator. The
	// secret is never truncated or normalised except where the
	// algorithm itself mandates it (raw bcrypt's 72-byte ceiling).
	Encode(secret, salt string) (string, error)

	// Verify reports whether secret matches the encoded record.
	// Comparison of the computed hash against the stored hash is
	// performed in constant time. Returns (false, err) when the record
	// is malformed or belongs to a different algorithm.
	Verify(secret, encoded string) (bool, error)

	// MustUpdate reports whether the record was produced with parameters
	// (iteration count, cost factor, salt entropy) weaker than — or
	// simply different from — the hasher's current configuration.
	// Callers should re-encode on the next successful verification when
	// this returns true. Malformed records report false; they can never
	// be upgraded anyway.
	MustUpdate(encoded string) bool

	// SafeSummary returns the record's fields for diagnostics with the
	// salt and hash redacted. It never exposes the raw stored bytes.
	SafeSummary(encoded string) (Summary, error)
}

// Summary carries redacted metadata parsed from an encoded record,
// keyed by field name ("algorithm", "iterations", "salt", "hash", …).
// Salt and hash values are masked; see [Hasher.SafeSummary].
type Summary map[string]string

// IdentifyAlgorithm returns the algorithm identifier embedded in an
// encoded record without verifying it.
//
// Two legacy shapes carry no identifier and are recognised by length:
// a bare 32-character hex digest is unsalted MD5, and a 46-character
// record with the "sha1$$" prefix is unsalted SHA-1.
//
// Returns [ErrInvalidHash] when no identifier can be extracted; the
// unusable sentinel (see [MakeUnusablePassword]) always fails here.
func IdentifyAlgorithm(encoded string) (Algorithm, error) {
	switch {
	case len(encoded) == 32 && !strings.Contains(encoded, separator):
		return AlgorithmUnsaltedMD5, nil
	case len(encoded) == 37 && strings.HasPrefix(encoded, "md5$$"):
		return AlgorithmUnsaltedMD5, nil
	case len(encoded) == 46 && strings.HasPrefix(encoded, "sha1$$"):
		return AlgorithmUnsaltedSHA1, nil
	}
	alg, _, found := strings.Cut(encoded, separator)
	if !found || alg == "" {
		return "", fmt.Errorf("%w: no algorithm prefix", ErrInvalidHash)
	}
	return Algorithm(alg), nil
}
