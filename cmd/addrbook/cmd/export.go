package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/export"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export the book to a SQLite database",
		Long: `Write every contact into the contacts table of a SQLite database.

The database is created if needed. Each export replaces the previous
contents of the table in a single transaction.`,
		Example: `  addrbook export --db contacts.db
  addrbook export team.tsv --db team.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveBookPath(args)
			b, err := opts.loadBook(path)
			if err != nil {
				return err
			}

			out := opts.writer(cmd)
			var progress export.ProgressFunc
			if out.Format() == output.FormatText {
				progress = func(done, total int) {
					out.Progress(done, total, "exporting")
				}
			}

			n, err := export.Export(contextOf(cmd), dbPath, b.List(), progress)
			if err != nil {
				return err
			}
			slog.Info("book exported", slog.String("path", path), slog.String("db", dbPath), slog.Int("contacts", n))

			if out.Format() == output.FormatJSON {
				return out.JSON(map[string]any{"db": dbPath, "contacts": n})
			}
			out.Successf("Exported %d contacts to %s", n, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import contacts from a SQLite database",
		Long: `Add the contacts stored in a database written by 'addrbook export'.

Imported contacts get new ids in this book. A contact whose full name and
phone number both match one already in the book is skipped.`,
		Example: `  addrbook import --db team.db`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveBookPath(args)
			b, err := opts.loadBook(path)
			if err != nil {
				return err
			}

			ctx := contextOf(cmd)
			stored, err := export.Import(ctx, dbPath)
			if err != nil {
				return err
			}

			added, skipped := 0, 0
			for _, s := range stored {
				c := b.NewContact(s.FirstName, s.LastName, s.Address, s.PhoneNumber)
				if err := codec.Check(c); err != nil {
					return err
				}
				if err := b.AddUnique(c, book.SameNameAndPhone); err != nil {
					if errors.GetCode(err) == errors.ErrCodeDuplicateContact {
						skipped++
						continue
					}
					return err
				}
				if err := persist.AppendWithRetry(ctx, path, c, opts.retryPolicy()); err != nil {
					return fmt.Errorf("imported %d contacts before failing: %w", added, err)
				}
				added++
			}
			slog.Info("contacts imported", slog.String("db", dbPath), slog.Int("added", added), slog.Int("skipped", skipped))

			out := opts.writer(cmd)
			if out.Format() == output.FormatJSON {
				return out.JSON(map[string]any{"db": dbPath, "added": added, "skipped": skipped})
			}
			out.Successf("Imported %d contacts from %s", added, dbPath)
			if skipped > 0 {
				out.Statusf("ℹ️ ", "Skipped %d already in the book", skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
