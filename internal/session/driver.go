package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single line prompt.
type InputConfig struct {
	Message string
	Help    string
}

// Prompter abstracts where session lines come from so the loop can be
// driven by a terminal, a file or a test script.
type Prompter interface {
	// Input returns one line. io.EOF signals the end of scripted input.
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyPrompter struct {
	in  terminal.FileReader
	out terminal.FileWriter
}

// NewSurveyPrompter returns an interactive terminal prompter reading from in.
// Prompts, the banner and notices all go to out.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter) Prompter {
	return &surveyPrompter{in: in, out: out}
}

func (p *surveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &answer, survey.WithStdio(p.in, p.out, p.out)); err != nil {
		return "", translateSurveyErr(err)
	}
	return answer, nil
}

func (p *surveyPrompter) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter reads one line per Input call from r. Prompts and notices
// go to w, which may be nil to stay silent.
func NewLinePrompter(r io.Reader, w io.Writer) Prompter {
	if w == nil {
		w = io.Discard
	}
	return &linePrompter{in: bufio.NewReader(r), out: w}
}

func (p *linePrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if cfg.Message != "" {
		fmt.Fprint(p.out, cfg.Message+" ")
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}
