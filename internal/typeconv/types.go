package typeconv

import (
	"fmt"
	"strings"
)

// DataType is one entry of the closed field type vocabulary.
type DataType string

const (
	Int     DataType = "int"
	Float   DataType = "float"
	Double  DataType = "double"
	String  DataType = "string"
	Date    DataType = "date"
	Boolean DataType = "boolean"
)

// FallbackKey names the mapping used for tokens outside the vocabulary.
const FallbackKey = "fallback"

// order fixes the listing order of the vocabulary.
var order = []DataType{Int, Float, Double, String, Date, Boolean}

// Mapping pairs the TypeScript attribute type of a data type with its
// Sequelize column type.
type Mapping struct {
	Attribute string `yaml:"attribute"`
	Column    string `yaml:"column"`
}

// Vocabulary is the single lookup table used for both attribute and column
// rendering. It is never mutated after construction.
type Vocabulary struct {
	types    map[DataType]Mapping
	fallback Mapping
}

func defaults() (map[DataType]Mapping, Mapping) {
	return map[DataType]Mapping{
		Int:     {Attribute: "number", Column: "DataTypes.INTEGER"},
		Float:   {Attribute: "number", Column: "DataTypes.FLOAT"},
		Double:  {Attribute: "number", Column: "DataTypes.DOUBLE"},
		String:  {Attribute: "string", Column: "DataTypes.STRING"},
		Date:    {Attribute: "Date", Column: "DataTypes.DATE"},
		Boolean: {Attribute: "boolean", Column: "DataTypes.BOOLEAN"},
	}, Mapping{Attribute: "string", Column: "DataTypes.STRING"}
}

// Default returns the built-in Sequelize vocabulary.
func Default() *Vocabulary {
	types, fallback := defaults()
	return &Vocabulary{types: types, fallback: fallback}
}

// New builds a vocabulary from the defaults with the given overrides applied.
// Override keys must belong to the vocabulary or be FallbackKey; empty
// fields of an override keep their default value.
func New(overrides map[string]Mapping) (*Vocabulary, error) {
	types, fallback := defaults()
	seen := make(map[string]string, len(overrides))
	for key, m := range overrides {
		name := Normalize(key)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("typeconv: overrides %q and %q name the same type", prev, key)
		}
		seen[name] = key
		if name == FallbackKey {
			fallback = merge(fallback, m)
			continue
		}
		dt := DataType(name)
		base, ok := types[dt]
		if !ok {
			return nil, fmt.Errorf("typeconv: unknown data type %q in overrides", key)
		}
		types[dt] = merge(base, m)
	}
	return &Vocabulary{types: types, fallback: fallback}, nil
}

func merge(base, m Mapping) Mapping {
	if m.Attribute != "" {
		base.Attribute = m.Attribute
	}
	if m.Column != "" {
		base.Column = m.Column
	}
	return base
}

// Normalize folds a raw type token to its canonical spelling.
func Normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Known reports whether token names a vocabulary entry.
func Known(token string) bool {
	_, ok := Default().types[DataType(Normalize(token))]
	return ok
}

// Lookup returns the mapping for token. Unknown tokens yield the fallback
// mapping and false.
func (v *Vocabulary) Lookup(token string) (Mapping, bool) {
	m, ok := v.types[DataType(Normalize(token))]
	if !ok {
		return v.fallback, false
	}
	return m, true
}

// Attribute returns the TypeScript type for token.
func (v *Vocabulary) Attribute(token string) string {
	m, _ := v.Lookup(token)
	return m.Attribute
}

// Column returns the Sequelize column type for token.
func (v *Vocabulary) Column(token string) string {
	m, _ := v.Lookup(token)
	return m.Column
}

// Fallback returns the mapping applied to unknown tokens.
func (v *Vocabulary) Fallback() Mapping {
	return v.fallback
}

// Entry is a single row of the vocabulary listing.
type Entry struct {
	Type DataType
	Mapping
}

// Entries lists the vocabulary in declaration order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, 0, len(order))
	for _, dt := range order {
		out = append(out, Entry{Type: dt, Mapping: v.types[dt]})
	}
	return out
}
