package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/preflight"
)

func newDoctorCmd(opts *globalOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor [path]",
		Short: "Check that a book is usable",
		Long: `Check that the book file parses, that its directory is writable and has
free space, and whether another process holds its write lock.

Exits non-zero when a required check fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveBookPath(args)
			checker := preflight.New(
				preflight.WithVerbose(verbose),
				preflight.WithCreateIfMissing(opts.settings().Book.CreateIfMissing),
				preflight.WithOutput(cmd.OutOrStdout()),
			)
			results := checker.RunAll(contextOf(cmd), path)

			if opts.outputFormat() == output.FormatJSON {
				if err := opts.writer(cmd).JSON(map[string]any{
					"book":    path,
					"status":  checker.SummaryStatus(results),
					"results": results,
				}); err != nil {
					return err
				}
			} else {
				checker.PrintResults(path, results)
			}

			if checker.HasCriticalFailures(results) {
				return errors.New(errors.ErrCodeLoadFailed, "book failed preflight checks", nil).
					WithDetail("path", path).
					WithSuggestion("Fix the failed checks listed above")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show details for each check")
	return cmd
}
