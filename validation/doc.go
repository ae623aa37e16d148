// Package validation rejects weak secrets before they are stored,
// using an ordered pipeline of independent validators modelled after
// Django's django.contrib.auth.password_validation module.
//
// # Architecture
//
// The central abstraction is the [Validator] interface: an independent
// rule that accepts or rejects a candidate secret and explains its
// requirement as help text. Four validators ship with this package:
//
//   - [MinimumLengthValidator] — rejects short secrets
//   - [AttributeSimilarityValidator] — rejects secrets resembling the
//     caller's identity attributes (username, name, email)
//   - [CommonPasswordValidator] — rejects secrets found in a
//     common-password list (an embedded 1000-entry list by default)
//   - [NumericPasswordValidator] — rejects all-digit secrets
//
// A [Pipeline] runs every validator in declaration order and collects
// every violation into a single [*ValidationError] — it never stops at
// the first failure, so the caller can show the complete set of
// problems in one pass.
//
// # Quick start
//
//	p := validation.NewPipeline(
//	    validation.MustMinimumLengthValidator(8),
//	    validation.NewNumericPasswordValidator(),
//	)
//	err := p.ValidatePassword("12345678", nil)
//	var verr *validation.ValidationError
//	if errors.As(err, &verr) {
//	    for _, v := range verr.Violations {
//	        fmt.Println(v.Code, v.Message)
//	    }
//	}
//
// Validators can also be constructed from configuration — ordered
// (identifier, options) pairs — through a [Loader]; every option has a
// usable default, so omission never fails construction.
//
// Violation messages are templated English with structured codes and
// parameters, so callers can localise without touching this package.
//
// # Concurrency
//
// Validators and pipelines are immutable after construction and safe
// for concurrent use. The common-password list is read once at
// construction and shared read-only.
package validation
