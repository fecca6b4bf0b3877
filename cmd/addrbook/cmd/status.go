package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/persist"
	"github.com/Aman-CERP/addrbook/internal/ui"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Show book statistics",
		Long: `Show contact and index counts for a book, the size and age of its file,
and whether another process currently holds the write lock.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveBookPath(args)
			b, err := opts.loadBook(path)
			if err != nil {
				return err
			}

			info := collectStatus(path, b)
			if held, err := persist.LockHeld(path); err == nil {
				info.LockHeld = held
			}

			renderer := ui.NewStatusRenderer(cmd.OutOrStdout(), !ui.UseColor(cmd.OutOrStdout(), opts.noColor))
			if opts.outputFormat() == output.FormatJSON {
				return renderer.RenderJSON(info)
			}
			return renderer.Render(info)
		},
	}
}

// collectStatus summarizes b and the file at path.
func collectStatus(path string, b *book.Book) ui.StatusInfo {
	info := ui.StatusInfo{
		Path:           path,
		Contacts:       b.Len(),
		LastAssignedID: uint64(b.LastAssignedID()),
	}
	if abs, err := filepath.Abs(path); err == nil {
		info.Path = abs
	}

	names := make(map[string]struct{})
	phones := make(map[string]int)
	for _, c := range b.List() {
		names[c.FullName()] = struct{}{}
		phones[c.PhoneNumber]++
	}
	info.DistinctNames = len(names)
	info.DistinctPhones = len(phones)
	for _, n := range phones {
		if n > 1 {
			info.SharedPhones++
		}
	}

	if st, err := os.Stat(path); err == nil {
		info.FileSize = st.Size()
		info.Modified = st.ModTime()
	}
	return info
}
