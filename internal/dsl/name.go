package dsl

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrModelName is wrapped by every NameError.
var ErrModelName = errors.New("dsl: invalid model name")

// NameError reports a model name that cannot be used as a class identifier
// and file name.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid model name %q: %s", e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrModelName }

// ValidateModelName accepts identifiers made of letters, digits, '_' and '$'
// that do not start with a digit.
func ValidateModelName(name string) error {
	if name == "" {
		return &NameError{Name: name, Reason: "name is empty"}
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return &NameError{Name: name, Reason: "name must not contain path separators"}
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
		case unicode.IsDigit(r) && i > 0:
		default:
			return &NameError{Name: name, Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return nil
}
