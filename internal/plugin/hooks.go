// File: internal/plugin/hooks.go
package plugin

import (
	"context"

	"github.com/TechXTT/modelgen/internal/dsl"
)

// Hooks defines lifecycle callbacks for a model entry session
type Hooks interface {
	FieldAppended(ctx context.Context, field dsl.Field)
	FieldRemoved(ctx context.Context, field dsl.Field)
	UndoEmpty(ctx context.Context)
	NameRejected(ctx context.Context, raw string, err error)
	ParseFailed(ctx context.Context, raw string, err error)
	ModelWritten(ctx context.Context, path string)
}

// NopHooks ignores every event.
type NopHooks struct{}

func (NopHooks) FieldAppended(context.Context, dsl.Field)    {}
func (NopHooks) FieldRemoved(context.Context, dsl.Field)     {}
func (NopHooks) UndoEmpty(context.Context)                   {}
func (NopHooks) NameRejected(context.Context, string, error) {}
func (NopHooks) ParseFailed(context.Context, string, error)  {}
func (NopHooks) ModelWritten(context.Context, string)        {}
