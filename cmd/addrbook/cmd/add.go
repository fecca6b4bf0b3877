package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

type addOptions struct {
	first   string
	last    string
	address string
	phone   string
	unique  bool
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	var a addOptions

	cmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Add a contact",
		Long: `Add a contact to the book and append it to the book file.

The new contact gets the next id. Contacts with the same name or phone number
are allowed; pass --unique to refuse a contact whose full name and phone number
both match an existing one.`,
		Example: `  addrbook add --first Ada --last Lovelace --address London --phone 555-0100
  addrbook add -b team.tsv --first Alan --last Turing --phone 555-0200 --unique`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, args, a)
		},
	}

	cmd.Flags().StringVar(&a.first, "first", "", "First name")
	cmd.Flags().StringVar(&a.last, "last", "", "Last name")
	cmd.Flags().StringVar(&a.address, "address", "", "Address")
	cmd.Flags().StringVar(&a.phone, "phone", "", "Phone number")
	cmd.Flags().BoolVar(&a.unique, "unique", false, "Refuse a contact with the same full name and phone number")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func runAdd(cmd *cobra.Command, opts *globalOptions, args []string, a addOptions) error {
	path := opts.resolveBookPath(args)
	b, err := opts.loadBook(path)
	if err != nil {
		return err
	}

	c := b.NewContact(a.first, a.last, a.address, a.phone)
	if err := codec.Check(c); err != nil {
		return err
	}

	if a.unique {
		if err := b.AddUnique(c, book.SameNameAndPhone); err != nil {
			return err
		}
	} else {
		b.Add(c)
	}

	if err := persist.AppendWithRetry(contextOf(cmd), path, c, opts.retryPolicy()); err != nil {
		slog.Error("append failed", slog.Uint64("id", uint64(c.ID)), slog.String("error", err.Error()))
		return err
	}
	slog.Info("contact added", slog.String("path", path), slog.Uint64("id", uint64(c.ID)))

	out := opts.writer(cmd)
	if out.Format() == output.FormatJSON {
		return out.Contact(c)
	}
	out.Successf("Added contact %d", c.ID)
	return out.Contact(c)
}
