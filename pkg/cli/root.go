package cli

import (
	"github.com/spf13/cobra"
)

func version() string {
	return "v1.0.0"
}

func help() string {
	return `modelgen builds Sequelize TypeScript models from short field descriptions.
Usage:
  modelgen <command> [flags]
Available Commands:
  generate    Enter fields and write a model file
  types       Show the data type vocabulary
  version     Print the version number
Field format:
  NAME:TYPE              plain column
  NAME:TYPE -p           primary key
  NAME:TYPE->TABLE:KEY   foreign key
  /rev                   remove the last field
  done                   finish and write the model
Flags:
  -h, --help   help for modelgen
  -v, --version   print the version number
Use "modelgen [command] --help" for more information about a command.
Examples:
  modelgen generate
  modelgen generate --name Post --out src/models
  modelgen generate --from fields.txt --stdout
  modelgen types --config modelgen.yaml`
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

// NewHelpCmd builds the `help` command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print help information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(help())
		},
	}
}

// NewRootCmd builds the top–level `modelgen` command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "modelgen",
		Short:         "modelgen — Sequelize model generation",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewGenerateCmd())
	root.AddCommand(NewTypesCmd())
	root.AddCommand(NewVersionCmd())
	root.SetHelpCommand(NewHelpCmd())
	return root
}
