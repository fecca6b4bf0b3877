package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

func newFindCmd(opts *globalOptions) *cobra.Command {
	var (
		name  string
		phone string
		id    string
	)

	cmd := &cobra.Command{
		Use:   "find [path]",
		Short: "Find contacts by name, phone number or id",
		Long: `Find contacts by exact full name ("First Last"), exact phone number or id.

Exactly one of --name, --phone or --id is required.`,
		Example: `  addrbook find --name "Ada Lovelace"
  addrbook find --phone 555-0100
  addrbook find --id 3 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.loadBook(opts.resolveBookPath(args))
			if err != nil {
				return err
			}

			var found []contact.Contact
			switch {
			case cmd.Flags().Changed("name"):
				found = b.FindByName(name)
			case cmd.Flags().Changed("phone"):
				found = b.FindByPhone(phone)
			default:
				cid, err := parseID(id)
				if err != nil {
					return err
				}
				if c, ok := b.Get(cid); ok {
					found = []contact.Contact{c}
				}
			}
			return opts.writer(cmd).Contacts(found)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name, e.g. \"Ada Lovelace\"")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&id, "id", "", "Contact id")
	cmd.MarkFlagsMutuallyExclusive("name", "phone", "id")
	cmd.MarkFlagsOneRequired("name", "phone", "id")

	return cmd
}

// parseID parses a contact id given on the command line.
func parseID(s string) (contact.ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.ValidationError("invalid id "+strconv.Quote(s), err).
			WithSuggestion("Ids are positive whole numbers; see 'addrbook list'")
	}
	return contact.ID(n), nil
}
