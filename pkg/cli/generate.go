package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TechXTT/modelgen/internal/session"
	"github.com/TechXTT/modelgen/pkg/config"
)

func NewGenerateCmd() *cobra.Command {
	var (
		configFile string
		modelName  string
		from       string
		outDir     string
		toStdout   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enter model fields and write a Sequelize model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}
			gen, err := cfg.Generator()
			if err != nil {
				return err
			}

			prompter, scripted, closeInput, err := openPrompter(cmd, from, promptOutput(toStdout))
			if err != nil {
				return err
			}
			defer closeInput()

			// keep stdout clean for the rendered model
			notices := cmd.OutOrStdout()
			if toStdout {
				notices = cmd.ErrOrStderr()
			}
			hooks := newConsoleHooks(notices)

			opts := session.Options{
				ModelName: modelName,
				Hooks:     hooks,
				OnError:   session.Reprompt,
				Quiet:     scripted,
			}
			if scripted {
				opts.OnError = session.Abort
			}
			spec, err := session.Run(cmd.Context(), prompter, opts)
			if err != nil {
				return err
			}

			if toStdout {
				_, err := io.WriteString(cmd.OutOrStdout(), gen.Render(spec))
				return err
			}
			path, err := gen.Generate(spec, cfg.OutDir)
			if err != nil {
				return err
			}
			hooks.ModelWritten(cmd.Context(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	cmd.Flags().StringVarP(&modelName, "name", "n", "", "Model name; prompted when empty")
	cmd.Flags().StringVarP(&from, "from", "f", "", "Read field lines from a file, - for stdin")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default "+config.DefaultOutDir+")")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the model instead of writing a file")
	return cmd
}

// promptOutput is where interactive prompts are drawn. With --stdout they move
// to stderr so the rendered model is the only thing on stdout.
func promptOutput(toStdout bool) *os.File {
	if toStdout {
		return os.Stderr
	}
	return os.Stdout
}

// openPrompter picks the survey prompter for terminals and a line prompter
// for files and piped input. scripted reports the latter.
func openPrompter(cmd *cobra.Command, from string, promptOut *os.File) (p session.Prompter, scripted bool, closeFn func() error, err error) {
	noop := func() error { return nil }
	switch from {
	case "":
		if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return session.NewSurveyPrompter(f, promptOut), false, noop, nil
		}
		return session.NewLinePrompter(cmd.InOrStdin(), nil), true, noop, nil
	case "-":
		return session.NewLinePrompter(cmd.InOrStdin(), nil), true, noop, nil
	default:
		f, err := os.Open(from)
		if err != nil {
			return nil, false, nil, fmt.Errorf("open field file: %w", err)
		}
		return session.NewLinePrompter(f, nil), true, f.Close, nil
	}
}
