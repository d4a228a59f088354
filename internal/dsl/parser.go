// File: internal/dsl/parser.go
package dsl

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/TechXTT/modelgen/internal/typeconv"
)

// Grammar describes the accepted field line forms.
const Grammar = "{NAME}:{DATATYPE}, {NAME}:{DATATYPE} -p (primary key) or {NAME}:{DATATYPE}->{REFERENCE TABLE}:{REFERENCE NAME}"

const (
	refArrow       = "->"
	primaryKeyFlag = "-p"
)

// ErrFormat is wrapped by every FormatError.
var ErrFormat = errors.New("dsl: invalid field format")

// FormatError reports a field line that does not follow the grammar.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func formatErr(input, reason string) error {
	return &FormatError{Input: input, Reason: reason}
}

// Role is the part a field plays in its table.
type Role int

const (
	RolePlain Role = iota
	RolePrimaryKey
	RoleForeignKey
)

func (r Role) String() string {
	switch r {
	case RolePrimaryKey:
		return "primary key"
	case RoleForeignKey:
		return "foreign key"
	default:
		return "column"
	}
}

// Field is one parsed field line.
type Field struct {
	Name       string // snake_case column name
	DataType   string // lowercased type token, possibly outside the vocabulary
	PrimaryKey bool
	RefTable   string // set together with RefKey for foreign keys
	RefKey     string
}

// Role reports whether f is a plain column, a primary key or a foreign key.
func (f Field) Role() Role {
	switch {
	case f.RefTable != "":
		return RoleForeignKey
	case f.PrimaryKey:
		return RolePrimaryKey
	default:
		return RolePlain
	}
}

// ModelSpec is a model name with its fields in entry order.
type ModelSpec struct {
	Name   string
	Fields []Field
}

// ParseField parses a single NAME:TYPE[ -p][->TABLE:KEY] line.
//
// Surrounding whitespace on the line, the name and the reference parts is
// trimmed. Unknown type tokens are kept as-is.
func ParseField(raw string) (Field, error) {
	line := strings.TrimSpace(raw)
	head, ref, hasRef := strings.Cut(line, refArrow)

	parts := strings.Split(head, ":")
	if len(parts) < 2 {
		return Field{}, formatErr(raw, "missing name or type")
	}
	name := strings.TrimSpace(parts[0])
	tokens := strings.Fields(parts[1])
	if name == "" || len(tokens) == 0 {
		return Field{}, formatErr(raw, "missing name or type")
	}
	if hasSpace(name) {
		return Field{}, formatErr(raw, "field name must not contain whitespace")
	}

	f := Field{
		Name:     ToSnakeCase(name),
		DataType: typeconv.Normalize(tokens[0]),
	}
	switch {
	case len(tokens) == 1:
	case len(tokens) == 2 && tokens[1] == primaryKeyFlag:
		f.PrimaryKey = true
	default:
		return Field{}, formatErr(raw, fmt.Sprintf("unexpected token %q after type", tokens[len(tokens)-1]))
	}

	if !hasRef {
		return f, nil
	}
	if f.PrimaryKey {
		return Field{}, formatErr(raw, "primary key cannot reference another table")
	}
	if strings.Contains(ref, refArrow) {
		return Field{}, formatErr(raw, "only one reference is allowed")
	}
	refParts := strings.Split(ref, ":")
	if len(refParts) != 2 {
		return Field{}, formatErr(raw, "reference must be {REFERENCE TABLE}:{REFERENCE NAME}")
	}
	table, key := strings.TrimSpace(refParts[0]), strings.TrimSpace(refParts[1])
	if table == "" || key == "" || hasSpace(table) || hasSpace(key) {
		return Field{}, formatErr(raw, "reference must be {REFERENCE TABLE}:{REFERENCE NAME}")
	}
	f.RefTable = ToSnakeCase(table)
	f.RefKey = ToSnakeCase(key)
	return f, nil
}

// ToSnakeCase inserts an underscore before every uppercase ASCII letter that
// is not the first character, then lowercases the result.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
