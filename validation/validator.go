package validation

import "strings"

// Identity is the read-only view of the caller's identity-like object
// used by similarity checks. Attribute returns the named string
// attribute, or ok=false when the concrete identity has no such
// attribute — an absence is skipped by validators, never an error.
type Identity interface {
	Attribute(name string) (value string, ok bool)
}

// AttributeMap is a map-backed [Identity] for callers without a richer
// identity object:
//
//	id := validation.AttributeMap{"username": "johnsmith"}
type AttributeMap map[string]string

// Attribute implements [Identity].
func (m AttributeMap) Attribute(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Violation is a single rule failure: a ready-to-display English
// message plus a stable code and structured parameters so callers can
// localise independently of this package. A Violation never contains
// the candidate secret.
type Violation struct {
	// Message is the human-readable description of the failure.
	Message string

	// Code identifies the rule that failed, e.g. "password_too_short".
	Code string

	// Params holds the values the message was built from, e.g.
	// {"min_length": 9}. May be nil.
	Params map[string]any
}

// ValidationError aggregates every violation produced by a pipeline
// run, in validator-declaration order. It is always recoverable — the
// caller re-prompts — and never fatal.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface by joining all messages.
func (e *ValidationError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return "validation: password rejected"
	}
	return "validation: " + strings.Join(msgs, " ")
}

// Messages returns the violation messages in order.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// Validator is an independent password-quality rule.
//
// Implementations must be immutable after construction and safe for
// concurrent use.
type Validator interface {
	// Validate checks a candidate secret and returns nil when it is
	// acceptable, or one or more violations. identity may be nil.
	// Validate must never log or embed the secret anywhere.
	Validate(secret string, identity Identity) []Violation

	// HelpText describes the rule's requirement for display to users.
	HelpText() string
}

// ChangeObserver is implemented by stateful validators (e.g. a
// password-reuse history) that need to record an accepted secret.
// [Pipeline.PasswordChanged] calls it once, after a change has been
// committed, only with the already-accepted secret. None of the
// built-in validators keep state.
type ChangeObserver interface {
	PasswordChanged(secret string, identity Identity)
}
