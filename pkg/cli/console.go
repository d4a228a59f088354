package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/TechXTT/modelgen/internal/dsl"
	"github.com/TechXTT/modelgen/internal/typeconv"
)

var (
	addedColor   = color.New(color.FgCyan)
	noticeColor  = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// consoleHooks prints session events for a human at a terminal.
type consoleHooks struct {
	out io.Writer
}

func newConsoleHooks(out io.Writer) *consoleHooks {
	return &consoleHooks{out: out}
}

func (h *consoleHooks) FieldAppended(_ context.Context, f dsl.Field) {
	detail := f.DataType
	switch f.Role() {
	case dsl.RolePrimaryKey:
		detail += ", primary key"
	case dsl.RoleForeignKey:
		detail += fmt.Sprintf(", references %s.%s", f.RefTable, f.RefKey)
	default:
		if !typeconv.Known(f.DataType) {
			detail += ", unknown type"
		}
	}
	addedColor.Fprintf(h.out, "  + %s (%s)\n", f.Name, detail)
}

func (h *consoleHooks) FieldRemoved(_ context.Context, f dsl.Field) {
	noticeColor.Fprintf(h.out, "Removed the last entry: %s\n", f.Name)
}

func (h *consoleHooks) UndoEmpty(context.Context) {
	noticeColor.Fprintln(h.out, "No entries to revert.")
}

func (h *consoleHooks) NameRejected(_ context.Context, _ string, err error) {
	errorColor.Fprintf(h.out, "%v\n", err)
	fmt.Fprintln(h.out, "Model names are identifiers such as Post or meal_item.")
}

func (h *consoleHooks) ParseFailed(_ context.Context, _ string, err error) {
	errorColor.Fprintf(h.out, "%v\n", err)
	fmt.Fprintf(h.out, "Expected %s\n", dsl.Grammar)
}

func (h *consoleHooks) ModelWritten(_ context.Context, path string) {
	successColor.Fprintf(h.out, "Sequelize model generated and saved as %s!\n", path)
}
