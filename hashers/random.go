package hashers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// saltAlphabet is the character set used for generated salts and the
// unusable-sentinel suffix. 62 characters ≈ 5.95 bits per character.
const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const saltAlphabetSize = float64(len(saltAlphabet))

// DefaultSaltLength is the length of generated salts. 22 alphanumeric
// characters carry just over 128 bits of entropy.
const DefaultSaltLength = 22

// randomString returns n characters drawn uniformly from saltAlphabet.
// Each character is picked with [rand.Int] rather than a byte modulo,
// which would bias the distribution. A failing random source is fatal
// and propagates; hashing must never fall back to weaker randomness.
func randomString(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("hashers: random source unavailable: %w", err)
		}
		out[i] = saltAlphabet[idx.Int64()]
	}
	return string(out), nil
}
