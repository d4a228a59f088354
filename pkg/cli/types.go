package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TechXTT/modelgen/internal/typeconv"
	"github.com/TechXTT/modelgen/pkg/config"
)

// NewTypesCmd builds the `types` command.
func NewTypesCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Show the data type vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			vocab, err := cfg.Vocabulary()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tATTRIBUTE\tCOLUMN")
			for _, e := range vocab.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, e.Attribute, e.Column)
			}
			fb := vocab.Fallback()
			fmt.Fprintf(w, "%s\t%s\t%s\n", typeconv.FallbackKey, fb.Attribute, fb.Column)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	return cmd
}
