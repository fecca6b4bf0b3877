package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id> [path]",
		Short: "Delete a contact",
		Long: `Delete a contact by id and rewrite the book file.

Deleting an id that does not exist is not an error. The file keeps no id
counter, so deleting the highest id lets the next add reuse it.`,
		Example: `  addrbook delete 3
  addrbook delete 3 contacts.tsv`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			path := opts.resolveBookPath(args[1:])
			b, err := opts.loadBook(path)
			if err != nil {
				return err
			}

			out := opts.writer(cmd)
			removed, ok := b.Delete(id)
			if !ok {
				if out.Format() == output.FormatJSON {
					return out.JSON(map[string]any{"id": id, "deleted": false})
				}
				out.Println(fmt.Sprintf("No contact with ID %d.", id))
				return nil
			}

			err = errors.Retry(contextOf(cmd), opts.retryPolicy(), func() error {
				return persist.Save(path, b)
			})
			if err != nil {
				return err
			}
			slog.Info("contact deleted", slog.String("path", path), slog.Uint64("id", uint64(id)))

			if out.Format() == output.FormatJSON {
				return out.JSON(map[string]any{"id": id, "deleted": true, "contact": removed})
			}
			out.Successf("Deleted %s (id %d)", removed.FullName(), id)
			return nil
		},
	}
}
