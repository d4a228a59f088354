package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TechXTT/modelgen/internal/dsl"
)

type stubPrompter struct {
	inputs       []string
	inputPos     int
	messages     []string
	infoMessages []string
}

func (s *stubPrompter) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", io.EOF
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubPrompter) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type recordingHooks struct {
	events []string
}

func (h *recordingHooks) FieldAppended(_ context.Context, f dsl.Field) {
	h.events = append(h.events, "append "+f.Name)
}

func (h *recordingHooks) FieldRemoved(_ context.Context, f dsl.Field) {
	h.events = append(h.events, "remove "+f.Name)
}

func (h *recordingHooks) UndoEmpty(context.Context) {
	h.events = append(h.events, "undo empty")
}

func (h *recordingHooks) NameRejected(_ context.Context, raw string, _ error) {
	h.events = append(h.events, "reject name "+raw)
}

func (h *recordingHooks) ParseFailed(_ context.Context, raw string, _ error) {
	h.events = append(h.events, "fail "+raw)
}

func (h *recordingHooks) ModelWritten(_ context.Context, path string) {
	h.events = append(h.events, "written "+path)
}

func TestSession_AppendUndo(t *testing.T) {
	s := New()
	_, ok := s.Undo()
	require.False(t, ok)

	s.Append(dsl.Field{Name: "a", DataType: "int"})
	s.Append(dsl.Field{Name: "b", DataType: "string"})
	require.Equal(t, 2, s.Len())

	f, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, "b", f.Name)
	require.Equal(t, []dsl.Field{{Name: "a", DataType: "int"}}, s.Fields())

	// Fields returns a copy
	got := s.Fields()
	got[0].Name = "changed"
	require.Equal(t, "a", s.Fields()[0].Name)
}

func TestRun_CollectsFieldsInOrder(t *testing.T) {
	p := &stubPrompter{inputs: []string{"Post", "id:int -p", "title:string", "authorId:int->users:id", "DONE"}}
	hooks := &recordingHooks{}

	spec, err := Run(context.Background(), p, Options{Hooks: hooks})
	require.NoError(t, err)
	require.Equal(t, "Post", spec.Name)

	var names []string
	for _, f := range spec.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"id", "title", "author_id"}, names)
	require.Equal(t, []string{"append id", "append title", "append author_id"}, hooks.events)
	require.NotEmpty(t, p.infoMessages)
	require.Equal(t, "Enter the model name:", p.messages[0])
}

func TestRun_UndoMatchesNeverAppended(t *testing.T) {
	withUndo := &stubPrompter{inputs: []string{"note", "body:string", "pinned:boolean", "/REV", "done"}}
	without := &stubPrompter{inputs: []string{"note", "body:string", "done"}}

	a, err := Run(context.Background(), withUndo, Options{})
	require.NoError(t, err)
	b, err := Run(context.Background(), without, Options{})
	require.NoError(t, err)

	require.Equal(t, b, a)
	g := dsl.NewGenerator()
	require.Equal(t, g.Render(b), g.Render(a))
}

func TestRun_UndoOnEmptyIsNoop(t *testing.T) {
	p := &stubPrompter{inputs: []string{"/rev", "id:int -p", "/rev", "/rev", "done"}}
	hooks := &recordingHooks{}

	spec, err := Run(context.Background(), p, Options{ModelName: "tag", Hooks: hooks})
	require.NoError(t, err)
	require.Empty(t, spec.Fields)
	require.Equal(t, []string{"undo empty", "append id", "remove id", "undo empty"}, hooks.events)
}

func TestRun_RepromptOnFormatError(t *testing.T) {
	p := &stubPrompter{inputs: []string{"user", "badfield", "email:string", "done"}}
	hooks := &recordingHooks{}

	spec, err := Run(context.Background(), p, Options{Hooks: hooks, OnError: Reprompt})
	require.NoError(t, err)
	require.Len(t, spec.Fields, 1)
	require.Equal(t, []string{"fail badfield", "append email"}, hooks.events)
}

func TestRun_AbortOnFormatError(t *testing.T) {
	p := &stubPrompter{inputs: []string{"user", "email:string", "x:int->onlyonepart", "done"}}

	_, err := Run(context.Background(), p, Options{OnError: Abort})
	require.Error(t, err)
	require.True(t, errors.Is(err, dsl.ErrFormat))
}

func TestRun_EOFEndsInput(t *testing.T) {
	p := &stubPrompter{inputs: []string{"", "  ", "food", "name:string", ""}}

	spec, err := Run(context.Background(), p, Options{Quiet: true})
	require.NoError(t, err)
	require.Equal(t, "food", spec.Name)
	require.Len(t, spec.Fields, 1)
	require.Empty(t, p.infoMessages)
}

func TestRun_NoModelName(t *testing.T) {
	_, err := Run(context.Background(), &stubPrompter{}, Options{Quiet: true})
	require.ErrorIs(t, err, ErrNoModelName)
}

func TestRun_RepromptOnInvalidModelName(t *testing.T) {
	p := &stubPrompter{inputs: []string{"user name", "../escaped", "User", "done"}}
	hooks := &recordingHooks{}

	spec, err := Run(context.Background(), p, Options{Hooks: hooks, OnError: Reprompt, Quiet: true})
	require.NoError(t, err)
	require.Equal(t, "User", spec.Name)
	require.Equal(t, []string{"reject name user name", "reject name ../escaped"}, hooks.events)
	require.Equal(t, []string{"Enter the model name:", "Enter the model name:", "Enter the model name:"}, p.messages[:3])
}

func TestRun_AbortOnInvalidModelName(t *testing.T) {
	p := &stubPrompter{inputs: []string{"daily-goal", "id:int -p", "done"}}

	_, err := Run(context.Background(), p, Options{OnError: Abort, Quiet: true})
	var nameErr *dsl.NameError
	require.True(t, errors.As(err, &nameErr))
	require.Equal(t, "daily-goal", nameErr.Name)
}

func TestRun_InvalidModelNameOption(t *testing.T) {
	p := &stubPrompter{inputs: []string{"id:int -p", "done"}}

	_, err := Run(context.Background(), p, Options{ModelName: "../escaped", Quiet: true})
	require.ErrorIs(t, err, dsl.ErrModelName)
	require.Empty(t, p.messages)
}

func TestSurveyPrompter_InfoWritesToOutput(t *testing.T) {
	out, err := os.CreateTemp(t.TempDir(), "prompts")
	require.NoError(t, err)
	defer out.Close()

	p := NewSurveyPrompter(os.Stdin, out)
	require.NoError(t, p.Info(context.Background(), "Welcome"))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	require.Equal(t, "Welcome\n", string(data))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := strings.NewReader("post\nid:int -p\ndone\n")
	_, err := Run(ctx, NewLinePrompter(in, nil), Options{Quiet: true})
	require.ErrorIs(t, err, ErrAborted)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Meal\r\nid:int -p\n\nkcal:double")
	p := NewLinePrompter(in, &out)
	ctx := context.Background()

	got, err := p.Input(ctx, InputConfig{Message: "Name:"})
	require.NoError(t, err)
	require.Equal(t, "Meal", got)

	got, err = p.Input(ctx, InputConfig{})
	require.NoError(t, err)
	require.Equal(t, "id:int -p", got)

	got, err = p.Input(ctx, InputConfig{})
	require.NoError(t, err)
	require.Equal(t, "", got)

	got, err = p.Input(ctx, InputConfig{})
	require.NoError(t, err)
	require.Equal(t, "kcal:double", got)

	_, err = p.Input(ctx, InputConfig{})
	require.ErrorIs(t, err, io.EOF)

	require.NoError(t, p.Info(ctx, "hello"))
	require.Equal(t, "Name: hello\n", out.String())
}

func TestRun_LinePrompterScript(t *testing.T) {
	in := strings.NewReader("dailyGoal\nid:int -p\nuserId:int->users:id\nkcal:int\n/rev\ndone\nignored:string\n")

	spec, err := Run(context.Background(), NewLinePrompter(in, nil), Options{OnError: Abort})
	require.NoError(t, err)
	require.Equal(t, "dailyGoal", spec.Name)
	require.Equal(t, []dsl.Field{
		{Name: "id", DataType: "int", PrimaryKey: true},
		{Name: "user_id", DataType: "int", RefTable: "users", RefKey: "id"},
	}, spec.Fields)
}
