package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-django-auth/validation"
)

func TestNewAttributeSimilarityValidator_InvalidOption(t *testing.T) {
	for _, maxSimilarity := range []float64{-0.1, 1.1} {
		_, err := validation.NewAttributeSimilarityValidator(nil, maxSimilarity)
		if !errors.Is(err, validation.ErrInvalidOption) {
			t.Errorf("max_similarity %v: expected ErrInvalidOption, got %v", maxSimilarity, err)
		}
	}
}

func TestAttributeSimilarityValidator_Validate(t *testing.T) {
	v, err := validation.NewAttributeSimilarityValidator(nil, validation.DefaultSimilarityMaxSimilarity)
	if err != nil {
		t.Fatalf("NewAttributeSimilarityValidator: %v", err)
	}
	identity := validation.AttributeMap{
		"username":   "johnsmith",
		"first_name": "John",
		"email":      "john.smith@example.com",
	}

	tests := []struct {
		secret string
		ok     bool
	}{
		// A password built on the username is rejected.
		{"johnsmith123", false},
		// Case differences do not help.
		{"JOHNSMITH123", false},
		// Each dotted part of the email is compared on its own.
		{"smith1234", false},
		{"quiet-walrus-89", true},
		{"", true},
	}
	for _, tt := range tests {
		violations := v.Validate(tt.secret, identity)
		if ok := len(violations) == 0; ok != tt.ok {
			t.Errorf("Validate(%q) ok = %v, want %v (violations %v)", tt.secret, ok, tt.ok, violations)
		}
	}
}

func TestAttributeSimilarityValidator_NilIdentity(t *testing.T) {
	v, _ := validation.NewAttributeSimilarityValidator(nil, 0.7)
	if violations := v.Validate("johnsmith123", nil); violations != nil {
		t.Errorf("nil identity must pass, got %v", violations)
	}
}

func TestAttributeSimilarityValidator_MissingAttributesSkipped(t *testing.T) {
	v, _ := validation.NewAttributeSimilarityValidator([]string{"username", "nickname"}, 0.7)
	identity := validation.AttributeMap{"username": "johnsmith"}
	if violations := v.Validate("quiet-walrus-89", identity); violations != nil {
		t.Errorf("absent attributes must be skipped, got %v", violations)
	}
}

func TestAttributeSimilarityValidator_ZeroMaxSimilarity(t *testing.T) {
	// At 0 any present attribute rejects any secret.
	v, err := validation.NewAttributeSimilarityValidator([]string{"username"}, 0)
	if err != nil {
		t.Fatalf("NewAttributeSimilarityValidator: %v", err)
	}
	identity := validation.AttributeMap{"username": "johnsmith"}
	for _, secret := range []string{"quiet-walrus-89", "x", ""} {
		if violations := v.Validate(secret, identity); len(violations) == 0 {
			t.Errorf("Validate(%q): max_similarity 0 must reject every secret once an attribute is present", secret)
		}
	}
	if violations := v.Validate("anything", nil); violations != nil {
		t.Errorf("nil identity still passes, got %v", violations)
	}
}

func TestAttributeSimilarityValidator_ExactMatchOnly(t *testing.T) {
	// At 1 only a case-insensitive exact match is rejected.
	v, _ := validation.NewAttributeSimilarityValidator([]string{"username"}, 1)
	identity := validation.AttributeMap{"username": "johnsmith"}

	if violations := v.Validate("JohnSmith", identity); len(violations) == 0 {
		t.Error("exact match should be rejected")
	}
	if violations := v.Validate("johnsmith1", identity); violations != nil {
		t.Errorf("near match should pass at 1, got %v", violations)
	}
}

func TestAttributeSimilarityValidator_OneViolationPerAttribute(t *testing.T) {
	v, _ := validation.NewAttributeSimilarityValidator([]string{"username", "email"}, 0.7)
	identity := validation.AttributeMap{
		"username": "johnsmith",
		"email":    "johnsmith@example.com",
	}
	violations := v.Validate("johnsmith123", identity)
	if len(violations) != 2 {
		t.Fatalf("got %d violations, want one per offending attribute: %v", len(violations), violations)
	}
	if violations[0].Code != "password_too_similar" {
		t.Errorf("Code = %q", violations[0].Code)
	}
	if violations[0].Message != "The password is too similar to the username." {
		t.Errorf("Message = %q", violations[0].Message)
	}
	if !strings.Contains(violations[1].Message, "email") {
		t.Errorf("Message = %q", violations[1].Message)
	}
}

func TestAttributeSimilarityValidator_MultibyteSecret(t *testing.T) {
	// Rune counts, not byte counts, decide whether an attribute part is
	// worth matching; multibyte characters must not widen the skip.
	v, _ := validation.NewAttributeSimilarityValidator([]string{"username"}, 0.3)
	identity := validation.AttributeMap{"username": "aa"}
	secret := "aa" + strings.Repeat("é", 9)
	if violations := v.Validate(secret, identity); len(violations) == 0 {
		t.Error("secret containing the username should be rejected")
	}
}

func TestAttributeSimilarityValidator_LongSecretShortAttribute(t *testing.T) {
	// A secret far longer than the attribute cannot reach the threshold;
	// the validator must pass without running the quadratic matcher.
	v, _ := validation.NewAttributeSimilarityValidator([]string{"username"}, 0.7)
	identity := validation.AttributeMap{"username": "jo"}
	secret := strings.Repeat("jo", 64)
	if violations := v.Validate(secret, identity); violations != nil {
		t.Errorf("short attribute against long secret must pass, got %v", violations)
	}
}
