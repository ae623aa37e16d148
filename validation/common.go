package validation

import (
	"bufio"
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

// defaultPasswordList is a gzip-compressed list of the 1000 most
// commonly used passwords, one per line, lower-case.
//
//go:embed common-passwords.txt.gz
var defaultPasswordList []byte

// CommonPasswordValidator rejects secrets that appear verbatim
// (case-insensitively, surrounding whitespace ignored) in a
// common-password list.
//
// The list is loaded once at construction into an in-memory set and
// shared read-only across concurrent callers; validation never touches
// the filesystem.
type CommonPasswordValidator struct {
	passwords map[string]struct{}
}

// NewCommonPasswordValidator constructs the validator over the
// embedded default list.
func NewCommonPasswordValidator() (*CommonPasswordValidator, error) {
	return newCommonPasswordValidator(bytes.NewReader(defaultPasswordList))
}

// NewCommonPasswordValidatorFromFile constructs the validator from a
// plain-text list file, one entry per line. Gzip-compressed files are
// detected by their magic bytes and decompressed transparently.
func NewCommonPasswordValidatorFromFile(path string) (*CommonPasswordValidator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("validation: password list: %w", err)
	}
	defer f.Close()
	return newCommonPasswordValidator(f)
}

func newCommonPasswordValidator(r io.Reader) (*CommonPasswordValidator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("validation: password list: %w", err)
	}
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("validation: password list: %w", err)
		}
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("validation: password list: %w", err)
		}
		if err := zr.Close(); err != nil {
			return nil, fmt.Errorf("validation: password list: %w", err)
		}
	}

	passwords := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		entry := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if entry != "" {
			passwords[entry] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("validation: password list: %w", err)
	}
	return &CommonPasswordValidator{passwords: passwords}, nil
}

// Len returns the number of entries in the loaded list.
func (v *CommonPasswordValidator) Len() int { return len(v.passwords) }

// Validate implements [Validator].
func (v *CommonPasswordValidator) Validate(secret string, _ Identity) []Violation {
	if _, found := v.passwords[strings.ToLower(strings.TrimSpace(secret))]; !found {
		return nil
	}
	return []Violation{{
		Message: "This password is too common.",
		Code:    "password_too_common",
	}}
}

// HelpText implements [Validator].
func (v *CommonPasswordValidator) HelpText() string {
	return "Your password can't be a commonly used password."
}
