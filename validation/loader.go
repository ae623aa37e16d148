package validation

import (
	"fmt"
	"sort"
)

// Identifiers of the built-in validators, as accepted by [Loader.Load].
const (
	ValidatorMinimumLength       = "minimum_length"
	ValidatorAttributeSimilarity = "user_attribute_similarity"
	ValidatorCommonPassword      = "common_password"
	ValidatorNumeric             = "numeric"
)

// Spec selects a validator by identifier and configures it. Specs come
// from an external configuration loader; their order is preserved
// through to violations and help texts.
type Spec struct {
	// Name is the validator identifier, e.g. "minimum_length".
	Name string

	// Options configures the validator. Every option has a usable
	// default, so a nil or partial map never fails construction; an
	// unknown key or a wrongly typed value does.
	Options Options
}

// Options is the untyped option map carried by a [Spec].
type Options map[string]any

// Int returns the integer option under key, or def when absent.
// JSON-derived float64 values are accepted when integral.
func (o Options) Int(key string, def int) (int, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrInvalidOption, key, raw)
}

// Float returns the float option under key, or def when absent.
func (o Options) Float(key string, def float64) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %q must be a number, got %T", ErrInvalidOption, key, raw)
}

// String returns the string option under key, or def when absent.
func (o Options) String(key string, def string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	if v, ok := raw.(string); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidOption, key, raw)
}

// Strings returns the string-slice option under key, or def when
// absent. []any slices of strings are accepted.
func (o Options) Strings(key string, def []string) ([]string, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must contain only strings, got %T",
					ErrInvalidOption, key, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q must be a list of strings, got %T", ErrInvalidOption, key, raw)
}

// allow rejects option keys outside the known set, so a typo in
// configuration fails at startup instead of being silently ignored.
func (o Options) allow(known ...string) error {
	for key := range o {
		recognised := false
		for _, k := range known {
			if key == k {
				recognised = true
				break
			}
		}
		if !recognised {
			return fmt.Errorf("%w: unknown option %q", ErrInvalidOption, key)
		}
	}
	return nil
}

// Builder constructs a validator from its options.
type Builder func(opts Options) (Validator, error)

// Loader turns ordered (identifier, options) pairs into validator
// instances. The built-in validators are pre-registered; custom
// validators join via [Loader.Register].
//
// Register is intended for startup and test setup only; Load may be
// called concurrently afterwards.
type Loader struct {
	builders map[string]Builder
}

// NewLoader creates a Loader with the built-in validators registered.
func NewLoader() *Loader {
	l := &Loader{builders: make(map[string]Builder)}
	l.Register(ValidatorMinimumLength, buildMinimumLength)
	l.Register(ValidatorAttributeSimilarity, buildAttributeSimilarity)
	l.Register(ValidatorCommonPassword, buildCommonPassword)
	l.Register(ValidatorNumeric, buildNumeric)
	return l
}

// Register adds or replaces a named builder.
func (l *Loader) Register(name string, b Builder) {
	l.builders[name] = b
}

// Known returns the registered identifiers, sorted.
func (l *Loader) Known() []string {
	out := make([]string, 0, len(l.builders))
	for name := range l.builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load constructs validators from specs, preserving order. It fails
// with [ErrUnknownValidator] for an unrecognised identifier and
// [ErrInvalidOption] for a bad option; an omitted option falls back to
// its default and never fails.
func (l *Loader) Load(specs ...Spec) ([]Validator, error) {
	validators := make([]Validator, 0, len(specs))
	for _, spec := range specs {
		b, ok := l.builders[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, spec.Name)
		}
		v, err := b(spec.Options)
		if err != nil {
			return nil, fmt.Errorf("validation: %q: %w", spec.Name, err)
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// LoadPipeline is a convenience wrapping [Loader.Load] in a
// [Pipeline].
func (l *Loader) LoadPipeline(specs ...Spec) (*Pipeline, error) {
	validators, err := l.Load(specs...)
	if err != nil {
		return nil, err
	}
	return NewPipeline(validators...), nil
}

func buildMinimumLength(opts Options) (Validator, error) {
	if err := opts.allow("min_length"); err != nil {
		return nil, err
	}
	minLength, err := opts.Int("min_length", DefaultMinLength)
	if err != nil {
		return nil, err
	}
	return NewMinimumLengthValidator(minLength)
}

func buildAttributeSimilarity(opts Options) (Validator, error) {
	if err := opts.allow("user_attributes", "max_similarity"); err != nil {
		return nil, err
	}
	attributes, err := opts.Strings("user_attributes", nil)
	if err != nil {
		return nil, err
	}
	maxSimilarity, err := opts.Float("max_similarity", DefaultSimilarityMaxSimilarity)
	if err != nil {
		return nil, err
	}
	return NewAttributeSimilarityValidator(attributes, maxSimilarity)
}

func buildCommonPassword(opts Options) (Validator, error) {
	if err := opts.allow("password_list_path"); err != nil {
		return nil, err
	}
	path, err := opts.String("password_list_path", "")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return NewCommonPasswordValidator()
	}
	return NewCommonPasswordValidatorFromFile(path)
}

func buildNumeric(opts Options) (Validator, error) {
	if err := opts.allow(); err != nil {
		return nil, err
	}
	return NewNumericPasswordValidator(), nil
}
