package dsl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jinzhu/inflection"

	"github.com/TechXTT/modelgen/internal/typeconv"
)

// DefaultFileSuffix is appended to the lowercased model name to form the
// output file name.
const DefaultFileSuffix = "_model.ts"

// ErrIO is wrapped by every IOError.
var ErrIO = errors.New("dsl: output failed")

// IOError reports a failure to create the output directory or file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Pluralizer turns a lowercased model name into a table name.
type Pluralizer func(string) string

// SuffixPlural appends "s".
func SuffixPlural(name string) string { return name + "s" }

// InflectionPlural uses English pluralization rules.
func InflectionPlural(name string) string { return inflection.Plural(name) }

// Generator renders model specs into Sequelize TypeScript sources.
type Generator struct {
	Template   *template.Template
	vocab      *typeconv.Vocabulary
	plural     Pluralizer
	fileSuffix string
}

// Option configures a Generator.
type Option func(*Generator)

// WithVocabulary replaces the default type vocabulary.
func WithVocabulary(v *typeconv.Vocabulary) Option {
	return func(g *Generator) {
		if v != nil {
			g.vocab = v
		}
	}
}

// WithPluralizer selects the table name strategy.
func WithPluralizer(p Pluralizer) Option {
	return func(g *Generator) {
		if p != nil {
			g.plural = p
		}
	}
}

// WithFileSuffix overrides DefaultFileSuffix.
func WithFileSuffix(suffix string) Option {
	return func(g *Generator) {
		if suffix != "" {
			g.fileSuffix = suffix
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	funcMap := template.FuncMap{
		"quoteJoin": quoteJoin,
		"last":      last,
		"deref":     func(b *bool) bool { return *b },
	}
	tmpl := template.Must(template.
		New("model").
		Funcs(funcMap).
		Parse(modelTemplate))
	g := &Generator{
		Template:   tmpl,
		vocab:      typeconv.Default(),
		plural:     SuffixPlural,
		fileSuffix: DefaultFileSuffix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// quoteJoin renders names as a TypeScript union of string literals.
func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, " | ")
}

// last reports whether i is the final index of cols.
func last(i int, cols []Column) bool {
	return i == len(cols)-1
}

// Render returns the model source for spec. The output depends only on spec
// and the generator configuration.
func (g *Generator) Render(spec ModelSpec) string {
	var buf bytes.Buffer
	if err := g.Template.Execute(&buf, g.Build(spec)); err != nil {
		// the template is fixed and writes to memory
		panic(fmt.Sprintf("dsl: render model %q: %v", spec.Name, err))
	}
	return buf.String()
}

// FileName is the output file name for a model.
func (g *Generator) FileName(modelName string) string {
	return strings.ToLower(modelName) + g.fileSuffix
}

// Generate renders spec into outDir, creating the directory when needed and
// overwriting any previous file. It returns the written path. Names rejected
// by ValidateModelName are never written.
func (g *Generator) Generate(spec ModelSpec, outDir string) (string, error) {
	if err := ValidateModelName(spec.Name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", &IOError{Op: "mkdir", Path: outDir, Err: err}
	}
	filePath := filepath.Join(outDir, g.FileName(spec.Name))
	if err := os.WriteFile(filePath, []byte(g.Render(spec)), 0o644); err != nil {
		return "", &IOError{Op: "write", Path: filePath, Err: err}
	}
	return filePath, nil
}

const modelTemplate = `import { DataTypes, Model, Optional, Sequelize } from 'sequelize';

// Define the attributes for the {{ .ClassName }} model
interface {{ .ClassName }}Attributes {
{{- range .Attributes }}
    {{ .Name }}{{ if .Optional }}?{{ end }}: {{ .Type }};{{ with .Comment }}  // {{ . }}{{ end }}
{{- end }}
}

// Some fields are optional during creation
interface {{ .ClassName }}CreationAttributes extends Optional<{{ .ClassName }}Attributes, {{ quoteJoin .OptionalOnCreate }}> {}

// Extend Sequelize's Model class for {{ .ClassName }}
class {{ .ClassName }} extends Model<{{ .ClassName }}Attributes, {{ .ClassName }}CreationAttributes> implements {{ .ClassName }}Attributes {
{{- range .ClassFields }}
    public {{ if .ReadOnly }}readonly {{ end }}{{ .Name }}!: {{ .Type }};
{{- end }}
}

// Function to initialize the {{ .ClassName }} model
const init{{ .ClassName }} = (sequelize: Sequelize) => {
    {{ .ClassName }}.init({
{{- range $i, $c := .Columns }}
        {{ $c.Name }}: {
            type: {{ $c.Type }},
{{- if $c.AutoIncrement }}
            autoIncrement: true,
{{- end }}
{{- if $c.PrimaryKey }}
            primaryKey: true,
{{- end }}
{{- if $c.AllowNull }}
            allowNull: {{ deref $c.AllowNull }},
{{- end }}
{{- with $c.References }}
            references: {
                model: '{{ .Model }}',
                key: '{{ .Key }}',
            },
{{- end }}
{{- if $c.OnDelete }}
            onDelete: '{{ $c.OnDelete }}',
{{- end }}
{{- if $c.OnUpdate }}
            onUpdate: '{{ $c.OnUpdate }}',
{{- end }}
{{- if $c.DefaultValue }}
            defaultValue: {{ $c.DefaultValue }},
{{- end }}
        }{{ if not (last $i $.Columns) }},{{ end }}
{{- end }}
    }, {
        sequelize,
        tableName: '{{ .TableName }}',
        modelName: '{{ .ClassName }}',
    });
    return {{ .ClassName }};
};

export { init{{ .ClassName }} };
export default {{ .ClassName }};
`
