package validation

import (
	"html"
	"strings"
)

// Pipeline runs an ordered set of validators against candidate
// secrets. Ordering is preserved everywhere it shows: violations, help
// texts, and the HTML rendering all follow declaration order.
//
// A Pipeline is stateless per call and safe for concurrent use.
type Pipeline struct {
	validators []Validator
}

// NewPipeline creates a Pipeline over the given validators, in order.
// An empty pipeline accepts every secret.
func NewPipeline(validators ...Validator) *Pipeline {
	return &Pipeline{validators: validators}
}

// Validators returns the pipeline's validators in declaration order.
func (p *Pipeline) Validators() []Validator {
	out := make([]Validator, len(p.validators))
	copy(out, p.validators)
	return out
}

// ValidatePassword checks secret against every validator and returns
// nil when all accept it, or a [*ValidationError] carrying the
// complete ordered violation list. Every validator runs even after an
// earlier one fails — the caller gets all problems in one pass.
// identity may be nil; identity-dependent validators then pass.
func (p *Pipeline) ValidatePassword(secret string, identity Identity) error {
	var violations []Violation
	for _, v := range p.validators {
		violations = append(violations, v.Validate(secret, identity)...)
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// PasswordChanged informs stateful validators that a new secret has
// been committed. Call it once per change, only with the
// already-accepted secret; it performs no validation of its own.
func (p *Pipeline) PasswordChanged(secret string, identity Identity) {
	for _, v := range p.validators {
		if obs, ok := v.(ChangeObserver); ok {
			obs.PasswordChanged(secret, identity)
		}
	}
}

// HelpTexts returns each validator's requirement description, in
// declaration order. Pure and side-effect-free.
func (p *Pipeline) HelpTexts() []string {
	out := make([]string, len(p.validators))
	for i, v := range p.validators {
		out[i] = v.HelpText()
	}
	return out
}

// HelpTextHTML renders the help texts as an HTML unordered list with
// each text escaped. An empty pipeline renders to "".
func (p *Pipeline) HelpTextHTML() string {
	if len(p.validators) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, text := range p.HelpTexts() {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(text))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
