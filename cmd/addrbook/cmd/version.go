package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/pkg/version"
)

func newVersionCmd(opts *globalOptions) *cobra.Command {
	var short, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and format information",
		Long: `Print the build version and commit, plus the book file layout and the
export database schema this binary understands.`,
		Example: `  addrbook version
  addrbook version --short
  addrbook version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return err
			}

			info := version.Get()
			if jsonOutput || opts.outputFormat() == output.FormatJSON {
				return opts.writer(cmd).JSON(info)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), info.Details())
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}
