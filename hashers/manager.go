package hashers

import (
	"fmt"
	"sync"
)

// Manager is an ordered registry and dispatcher for password hashers.
//
// The order matters: the first hasher is the preferred one, used for
// every newly created record; every later hasher remains valid for
// verification only. Reordering the list changes which algorithm is
// preferred but never changes which records stay verifiable. Removing
// an entry strands its stored records — they fail verification until
// a custom caller handles them.
//
// Multiple independently configured Managers can coexist; nothing in
// this package reads ambient global state.
//
// # Thread safety
//
// All Manager methods are safe for concurrent use by multiple
// goroutines. A [sync.RWMutex] serialises [Manager.Register] against
// concurrent lookups; registration is nevertheless intended for
// startup and test setup only, not for steady-state traffic.
type Manager struct {
	mu      sync.RWMutex
	order   []Algorithm
	hashers map[Algorithm]Hasher
}

// NewManager creates a Manager from an ordered hasher list, preferred
// first. Returns [ErrNoHashers] for an empty list and [ErrNilHasher]
// for a nil entry. A duplicate algorithm keeps its first position and
// takes the later implementation.
func NewManager(hashers ...Hasher) (*Manager, error) {
	if len(hashers) == 0 {
		return nil, ErrNoHashers
	}
	m := &Manager{hashers: make(map[Algorithm]Hasher, len(hashers))}
	for _, h := range hashers {
		if err := m.Register(h); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewDefaultManager creates a Manager with the recommended hasher set:
// pbkdf2_sha256 preferred, then pbkdf2_sha1, argon2, bcrypt_sha256,
// bcrypt, and scrypt for verification and migration.
//
// This is the recommended starting point for most applications.
//
//	m, err := hashers.NewDefaultManager()
//	encoded, _ := m.MakePassword("secret")
func NewDefaultManager() (*Manager, error) {
	p256, err := NewPBKDF2SHA256Hasher(DefaultPBKDF2Options())
	if err != nil {
		return nil, fmt.Errorf("hashers: default pbkdf2_sha256: %w", err)
	}
	p1, err := NewPBKDF2SHA1Hasher(DefaultPBKDF2Options())
	if err != nil {
		return nil, fmt.Errorf("hashers: default pbkdf2_sha1: %w", err)
	}
	a2, err := NewArgon2Hasher(DefaultArgon2Options())
	if err != nil {
		return nil, fmt.Errorf("hashers: default argon2: %w", err)
	}
	b256, err := NewBcryptSHA256Hasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashers: default bcrypt_sha256: %w", err)
	}
	b, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashers: default bcrypt: %w", err)
	}
	s, err := NewScryptHasher(DefaultScryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashers: default scrypt: %w", err)
	}
	return NewManager(p256, p1, a2, b256, b, s)
}

// Register adds a hasher to the Manager. A new algorithm is appended
// to the order (it can verify but never becomes preferred); an
// already-present algorithm is replaced in place, keeping its
// position. Registration is idempotent and intended for startup and
// test setup.
func (m *Manager) Register(h Hasher) error {
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	alg := h.Algorithm()
	if _, present := m.hashers[alg]; !present {
		m.order = append(m.order, alg)
	}
	m.hashers[alg] = h
	return nil
}

// Preferred returns the hasher used for all newly created records —
// the first entry of the configured order.
func (m *Manager) Preferred() Hasher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hashers[m.order[0]]
}

// Hasher returns the hasher registered under alg, or
// [ErrUnknownAlgorithm].
func (m *Manager) Hasher(alg Algorithm) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hashers[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	return h, nil
}

// Algorithms returns the configured order, preferred first.
func (m *Manager) Algorithms() []Algorithm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Algorithm, len(m.order))
	copy(out, m.order)
	return out
}

// identify resolves the hasher that produced an encoded record.
func (m *Manager) identify(encoded string) (Hasher, error) {
	alg, err := IdentifyAlgorithm(encoded)
	if err != nil {
		return nil, err
	}
	return m.Hasher(alg)
}

// MakePassword hashes secret with the preferred hasher and returns the
// encoded record. The result is always storable; use
// [Manager.MakeUnusablePassword] when there is no secret to store.
func (m *Manager) MakePassword(secret string) (string, error) {
	return m.Preferred().Encode(secret, "")
}

// MakePasswordWith hashes secret with an explicitly chosen registered
// algorithm and, optionally, a caller-supplied salt (empty means
// "generate one"). Most callers want [Manager.MakePassword].
func (m *Manager) MakePasswordWith(alg Algorithm, secret, salt string) (string, error) {
	h, err := m.Hasher(alg)
	if err != nil {
		return "", err
	}
	return h.Encode(secret, salt)
}

// MakeUnusablePassword returns a fresh unusable sentinel record: a
// storable value that never verifies. Two calls never return equal
// strings.
func (m *Manager) MakeUnusablePassword() (string, error) {
	return MakeUnusablePassword()
}

// IsPasswordUsable reports whether encoded holds a real hashed secret:
// it is not the unusable sentinel and its algorithm is registered with
// this Manager. The check is cheap and performs no hashing.
func (m *Manager) IsPasswordUsable(encoded string) bool {
	if !IsUsableEncoding(encoded) {
		return false
	}
	_, err := m.identify(encoded)
	return err == nil
}

// runtimeHardener is implemented by hashers that can burn the
// work-factor difference after a failed verification, so response
// timing does not reveal which records still hold stale parameters.
type runtimeHardener interface {
	HardenRuntime(secret, encoded string)
}

// CheckPassword reports whether secret matches the encoded record.
//
// An unusable, malformed, or unknown-algorithm record fails closed:
// the result is (false, nil), never an error, so one stranded record
// cannot break a batch operation.
//
// On success, when the record was produced by a non-preferred
// algorithm or with outdated parameters, the secret is re-encoded with
// the preferred hasher and handed to onUpgrade so the caller can
// persist it. This is the only moment an upgrade is possible — the
// clear-text secret exists right now and at no other time. This
// package never persists anything itself. onUpgrade may be nil.
//
// The only non-nil error is a failed re-encode (its cause is a failed
// random source); verification itself succeeded, and the error
// signals that no upgrade was delivered.
func (m *Manager) CheckPassword(secret, encoded string, onUpgrade func(renewed string)) (bool, error) {
	if !IsUsableEncoding(encoded) {
		return false, nil
	}
	h, err := m.identify(encoded)
	if err != nil {
		return false, nil
	}

	preferred := m.Preferred()
	changed := h.Algorithm() != preferred.Algorithm()
	mustUpdate := changed || preferred.MustUpdate(encoded)

	ok, err := h.Verify(secret, encoded)
	if err != nil {
		return false, nil
	}
	if !ok {
		if !changed && mustUpdate {
			if rh, hardens := h.(runtimeHardener); hardens {
				rh.HardenRuntime(secret, encoded)
			}
		}
		return false, nil
	}

	if mustUpdate && onUpgrade != nil {
		renewed, err := preferred.Encode(secret, "")
		if err != nil {
			return true, fmt.Errorf("hashers: verified but re-encode for upgrade failed: %w", err)
		}
		onUpgrade(renewed)
	}
	return true, nil
}

// SafeSummary returns redacted diagnostics for an encoded record via
// the hasher that produced it.
func (m *Manager) SafeSummary(encoded string) (Summary, error) {
	h, err := m.identify(encoded)
	if err != nil {
		return nil, err
	}
	return h.SafeSummary(encoded)
}
