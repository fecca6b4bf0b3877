package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/shell"
	"github.com/Aman-CERP/addrbook/internal/watcher"
)

func newShellCmd(opts *globalOptions) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "shell [path]",
		Short: "Open the interactive shell",
		Long: `Open the interactive shell on a book file.

Commands: list, add, find, delete, recent, help, exit.

While the shell is open, changes made to the file by other processes are
picked up automatically (disable with --no-watch or shell.watch: false).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noWatch {
				opts.settings().Shell.Watch = false
			}
			return runShell(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the book on external changes")

	return cmd
}

func runShell(cmd *cobra.Command, opts *globalOptions, args []string) error {
	cfg := opts.settings()
	path := opts.resolveBookPath(args)

	b, err := opts.loadBook(path)
	if err != nil {
		return err
	}

	shellOpts := shell.Options{
		Path:       path,
		Prompt:     cfg.Shell.Prompt,
		RecentSize: cfg.Shell.RecentSize,
		Retry:      opts.retryPolicy(),
		NoColor:    opts.noColor,
		Logger:     slog.Default(),
	}
	if cfg.Shell.Watch {
		w, err := watcher.New(path, watcher.DefaultOptions())
		if err != nil {
			slog.Warn("book watcher unavailable", slog.String("path", path), slog.String("error", err.Error()))
		} else {
			shellOpts.Watcher = w
			slog.Debug("watching book", slog.String("path", w.Path()), slog.String("type", w.WatcherType()))
		}
	}

	sh, err := shell.New(b, cmd.InOrStdin(), cmd.OutOrStdout(), shellOpts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sh.Run(ctx)
}

// contextOf returns cmd's context, or Background when run outside Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
