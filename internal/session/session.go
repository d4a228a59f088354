package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TechXTT/modelgen/internal/dsl"
	"github.com/TechXTT/modelgen/internal/plugin"
)

// Reserved lines, matched case-insensitively.
const (
	CmdUndo = "/rev"
	CmdDone = "done"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("session: aborted")
	// ErrNoModelName is returned when input ends before a model name is given.
	ErrNoModelName = errors.New("session: no model name")
)

// ErrorPolicy decides what happens when a field line fails to parse.
type ErrorPolicy int

const (
	// Reprompt reports the error through Hooks.ParseFailed and asks again.
	Reprompt ErrorPolicy = iota
	// Abort returns the parse error from Run.
	Abort
)

// Options configures Run.
type Options struct {
	// ModelName skips the name prompt when set.
	ModelName string
	OnError   ErrorPolicy
	Hooks     plugin.Hooks
	// Quiet suppresses the welcome banner and instructions.
	Quiet bool
}

// Session holds the fields entered so far, in entry order.
type Session struct {
	fields []dsl.Field
}

func New() *Session {
	return &Session{}
}

// Append adds f after the previously entered fields.
func (s *Session) Append(f dsl.Field) {
	s.fields = append(s.fields, f)
}

// Undo removes and returns the most recent field. It reports false when
// there is nothing to remove.
func (s *Session) Undo() (dsl.Field, bool) {
	if len(s.fields) == 0 {
		return dsl.Field{}, false
	}
	f := s.fields[len(s.fields)-1]
	s.fields = s.fields[:len(s.fields)-1]
	return f, true
}

// Fields returns a copy of the entered fields.
func (s *Session) Fields() []dsl.Field {
	out := make([]dsl.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Session) Len() int { return len(s.fields) }

// Spec snapshots the session as a ModelSpec.
func (s *Session) Spec(name string) dsl.ModelSpec {
	return dsl.ModelSpec{Name: name, Fields: s.Fields()}
}

var banner = []string{
	"Welcome to the Sequelize Model Generator!",
}

var instructions = []string{
	"Now, enter the fields for your model.",
	"Enter the fields in the format " + dsl.Grammar + ".",
	"Type '" + CmdUndo + "' to remove the last input. Type '" + CmdDone + "' when you're finished.",
}

// Run collects a model name and field lines from p until CmdDone or the end
// of input and returns the resulting spec.
func Run(ctx context.Context, p Prompter, opts Options) (dsl.ModelSpec, error) {
	hooks := opts.Hooks
	if hooks == nil {
		hooks = plugin.NopHooks{}
	}

	if !opts.Quiet {
		if err := info(ctx, p, banner); err != nil {
			return dsl.ModelSpec{}, err
		}
	}

	name := strings.TrimSpace(opts.ModelName)
	if name != "" {
		if err := dsl.ValidateModelName(name); err != nil {
			return dsl.ModelSpec{}, err
		}
	}
	for name == "" {
		raw, err := p.Input(ctx, InputConfig{Message: "Enter the model name:"})
		if errors.Is(err, io.EOF) {
			return dsl.ModelSpec{}, ErrNoModelName
		}
		if err != nil {
			return dsl.ModelSpec{}, promptErr(err)
		}
		name = strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if err := dsl.ValidateModelName(name); err != nil {
			if opts.OnError == Abort {
				return dsl.ModelSpec{}, err
			}
			hooks.NameRejected(ctx, raw, err)
			name = ""
		}
	}

	if !opts.Quiet {
		if err := info(ctx, p, instructions); err != nil {
			return dsl.ModelSpec{}, err
		}
	}

	s := New()
	for {
		raw, err := p.Input(ctx, InputConfig{Message: "Field:", Help: dsl.Grammar})
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dsl.ModelSpec{}, promptErr(err)
		}

		line := strings.TrimSpace(raw)
		switch strings.ToLower(line) {
		case "":
			continue
		case CmdUndo:
			if f, ok := s.Undo(); ok {
				hooks.FieldRemoved(ctx, f)
			} else {
				hooks.UndoEmpty(ctx)
			}
			continue
		case CmdDone:
			return s.Spec(name), nil
		}

		f, err := dsl.ParseField(raw)
		if err != nil {
			if opts.OnError == Abort {
				return dsl.ModelSpec{}, err
			}
			hooks.ParseFailed(ctx, raw, err)
			continue
		}
		s.Append(f)
		hooks.FieldAppended(ctx, f)
	}
	return s.Spec(name), nil
}

func info(ctx context.Context, p Prompter, lines []string) error {
	for _, line := range lines {
		if err := p.Info(ctx, line); err != nil {
			return promptErr(err)
		}
	}
	return nil
}

func promptErr(err error) error {
	if errors.Is(err, ErrAborted) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return fmt.Errorf("session: read input: %w", err)
}
