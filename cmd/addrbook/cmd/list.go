package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List all contacts",
		Long:  `List every contact in the book ordered by id.`,
		Example: `  addrbook list contacts.tsv
  addrbook list --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.loadBook(opts.resolveBookPath(args))
			if err != nil {
				return err
			}
			return opts.writer(cmd).Contacts(b.List())
		},
	}
}
