package dsl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TechXTT/modelgen/internal/typeconv"
)

// Timestamp columns added to every model.
const (
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

const (
	keyAttributeType  = "number"
	dateAttributeType = "Date"
	cascade           = "CASCADE"
	nowDefault        = "DataTypes.NOW"
)

// Document is the intermediate representation of one emitted model file.
type Document struct {
	ClassName        string
	TableName        string
	Attributes       []Attribute // interface members
	ClassFields      []Attribute // class members
	OptionalOnCreate []string
	Columns          []Column
}

// Attribute is a typed member of the attributes interface or the class.
type Attribute struct {
	Name     string
	Type     string
	Comment  string
	Optional bool
	ReadOnly bool
}

// Column is one entry of the Model.init attribute map.
type Column struct {
	Name          string
	Type          string
	AutoIncrement bool
	PrimaryKey    bool
	AllowNull     *bool
	References    *Reference
	OnDelete      string
	OnUpdate      string
	DefaultValue  string
}

// Reference points a foreign key column at another table.
type Reference struct {
	Model string
	Key   string
}

// Build lowers spec into a Document using the generator's vocabulary and
// pluralization strategy.
func (g *Generator) Build(spec ModelSpec) Document {
	doc := Document{
		ClassName:        ClassName(spec.Name),
		TableName:        g.plural(strings.ToLower(spec.Name)),
		OptionalOnCreate: []string{CreatedAt, UpdatedAt},
	}

	for _, f := range spec.Fields {
		attrType := g.attributeType(f)
		attr := Attribute{Name: f.Name, Type: attrType}
		switch f.Role() {
		case RoleForeignKey:
			attr.Comment = "Foreign key to " + f.RefTable + " table"
		case RolePrimaryKey:
			attr.Comment = "Primary key"
		}
		doc.Attributes = append(doc.Attributes, attr)
		doc.ClassFields = append(doc.ClassFields, Attribute{Name: f.Name, Type: attrType})
		doc.Columns = append(doc.Columns, g.column(f))
	}

	for _, name := range []string{CreatedAt, UpdatedAt} {
		doc.Attributes = append(doc.Attributes, Attribute{Name: name, Type: dateAttributeType, Optional: true})
		doc.ClassFields = append(doc.ClassFields, Attribute{Name: name, Type: dateAttributeType, ReadOnly: true})
		doc.Columns = append(doc.Columns, Column{
			Name:         name,
			Type:         g.vocab.Column(string(typeconv.Date)),
			AllowNull:    boolPtr(false),
			DefaultValue: nowDefault,
		})
	}
	return doc
}

func (g *Generator) attributeType(f Field) string {
	if f.Role() != RolePlain {
		return keyAttributeType
	}
	return g.vocab.Attribute(f.DataType)
}

// keyColumnType is the unsigned integer column used by primary and foreign keys.
func (g *Generator) keyColumnType() string {
	return g.vocab.Column(string(typeconv.Int)) + ".UNSIGNED"
}

func (g *Generator) column(f Field) Column {
	switch f.Role() {
	case RolePrimaryKey:
		return Column{
			Name:          f.Name,
			Type:          g.keyColumnType(),
			AutoIncrement: true,
			PrimaryKey:    true,
		}
	case RoleForeignKey:
		return Column{
			Name:       f.Name,
			Type:       g.keyColumnType(),
			AllowNull:  boolPtr(false),
			References: &Reference{Model: f.RefTable, Key: f.RefKey},
			OnDelete:   cascade,
			OnUpdate:   cascade,
		}
	default:
		return Column{
			Name:      f.Name,
			Type:      g.vocab.Column(f.DataType),
			AllowNull: boolPtr(true),
		}
	}
}

// ClassName uppercases the first letter of name and keeps the rest.
func ClassName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func boolPtr(b bool) *bool { return &b }
