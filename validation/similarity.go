package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultSimilarityMaxSimilarity is the similarity ratio at or above
// which a secret is rejected.
const DefaultSimilarityMaxSimilarity = 0.7

// DefaultSimilarityAttributes returns the identity attributes compared
// against the secret when none are configured.
func DefaultSimilarityAttributes() []string {
	return []string{"username", "first_name", "last_name", "email"}
}

var nonWord = regexp.MustCompile(`\W+`)

// AttributeSimilarityValidator rejects secrets that resemble one of
// the caller's identity attributes, so "johnsmith123" cannot guard the
// account of johnsmith.
//
// Each present attribute value is lower-cased and compared as a whole
// and split on non-word characters; the secret is rejected when any
// part's similarity ratio reaches the configured maximum. The ratio is
// a Ratcliff/Obershelp quick ratio in [0, 1]: with max similarity 0
// every secret is rejected as soon as one attribute is present, with 1
// only an exact (case-insensitive) match is.
//
// Attributes absent from the identity are skipped, and a nil identity
// always passes.
type AttributeSimilarityValidator struct {
	attributes    []string
	maxSimilarity float64
}

// NewAttributeSimilarityValidator constructs an
// AttributeSimilarityValidator. Empty attributes selects
// [DefaultSimilarityAttributes]. Returns [ErrInvalidOption] when
// maxSimilarity is outside [0, 1].
func NewAttributeSimilarityValidator(attributes []string, maxSimilarity float64) (*AttributeSimilarityValidator, error) {
	if maxSimilarity < 0 || maxSimilarity > 1 {
		return nil, fmt.Errorf("%w: max_similarity %v must be in [0, 1]",
			ErrInvalidOption, maxSimilarity)
	}
	if len(attributes) == 0 {
		attributes = DefaultSimilarityAttributes()
	}
	return &AttributeSimilarityValidator{
		attributes:    append([]string(nil), attributes...),
		maxSimilarity: maxSimilarity,
	}, nil
}

// Validate implements [Validator].
func (v *AttributeSimilarityValidator) Validate(secret string, identity Identity) []Violation {
	if identity == nil {
		return nil
	}
	lowered := strings.ToLower(secret)
	var violations []Violation
	for _, name := range v.attributes {
		value, ok := identity.Attribute(name)
		if !ok || value == "" {
			continue
		}
		valueLower := strings.ToLower(value)
		parts := append(nonWord.Split(valueLower, -1), valueLower)
		for _, part := range parts {
			if part == "" {
				continue
			}
			// The matcher is quadratic; skip parts that are too short
			// to ever reach the threshold against a long secret.
			if exceedsMaximumLengthRatio(lowered, v.maxSimilarity, part) {
				continue
			}
			if similarityRatio(lowered, part) >= v.maxSimilarity {
				violations = append(violations, Violation{
					Message: fmt.Sprintf("The password is too similar to the %s.", verboseName(name)),
					Code:    "password_too_similar",
					Params:  map[string]any{"verbose_name": verboseName(name)},
				})
				break
			}
		}
	}
	return violations
}

// HelpText implements [Validator].
func (v *AttributeSimilarityValidator) HelpText() string {
	return "Your password can't be too similar to your other personal information."
}

// similarityRatio returns the Ratcliff/Obershelp quick ratio between
// two strings, compared rune-wise.
func similarityRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.QuickRatio()
}

// exceedsMaximumLengthRatio reports whether value is so much shorter
// than the secret that its quick ratio cannot reach maxSimilarity, in
// which case running the matcher would be wasted quadratic work.
// Lengths are counted in runes, the unit the ratio itself compares in.
func exceedsMaximumLengthRatio(secret string, maxSimilarity float64, value string) bool {
	secretLen := utf8.RuneCountInString(secret)
	valueLen := utf8.RuneCountInString(value)
	bound := maxSimilarity / 2 * float64(secretLen)
	return secretLen >= 10*valueLen && float64(valueLen) < bound
}

// verboseName renders an attribute identifier for display:
// "first_name" → "first name".
func verboseName(attribute string) string {
	return strings.ReplaceAll(attribute, "_", " ")
}
