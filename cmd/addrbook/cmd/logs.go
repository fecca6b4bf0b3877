package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/logging"
	"github.com/Aman-CERP/addrbook/internal/ui"
)

type logsOptions struct {
	follow  bool
	lines   int
	level   string
	grep    string
	logFile string
}

func newLogsCmd(opts *globalOptions) *cobra.Command {
	var lo logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View debug logs",
		Long: `View the JSON log written when addrbook runs with --debug
(~/.addrbook/logs/addrbook.log).

By default shows the last 50 lines. Use -f to follow new entries.`,
		Example: `  addrbook logs
  addrbook logs -n 200 --level warn
  addrbook logs --grep "append|reload"
  addrbook logs -f`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor := !ui.UseColor(cmd.OutOrStdout(), opts.noColor)
			return runLogs(cmd, lo, noColor)
		},
	}

	cmd.Flags().BoolVarP(&lo.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().IntVarP(&lo.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&lo.level, "level", "", "Minimum level (debug|info|warn|error)")
	cmd.Flags().StringVar(&lo.grep, "grep", "", "Only lines matching this regular expression")
	cmd.Flags().StringVar(&lo.logFile, "file", "", "Path to log file")

	return cmd
}

func runLogs(cmd *cobra.Command, lo logsOptions, noColor bool) error {
	if lo.level != "" && !logging.ValidLevel(lo.level) {
		return errors.ValidationError(fmt.Sprintf("invalid level %q (use debug, info, warn, error)", lo.level), nil)
	}

	var pattern *regexp.Regexp
	if lo.grep != "" {
		var err error
		pattern, err = regexp.Compile(lo.grep)
		if err != nil {
			return errors.ValidationError("invalid --grep pattern", err)
		}
	}

	path, err := logging.FindLogFile(lo.logFile)
	if err != nil {
		return errors.New(errors.ErrCodeLoadFailed, "cannot open log file", err).
			WithSuggestion("Run any command with --debug to start logging")
	}

	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   lo.level,
		Pattern: pattern,
		NoColor: noColor,
	}, cmd.OutOrStdout())

	stderr := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(stderr, "Log file: %s\n", path)
	if lo.follow {
		_, _ = fmt.Fprintln(stderr, "Following... (Ctrl+C to stop)")
	}
	_, _ = fmt.Fprintln(stderr, "---")

	entries, err := viewer.Tail(path, lo.lines)
	if err != nil {
		return err
	}
	viewer.Print(entries)

	if lo.follow {
		return runFollow(contextOf(cmd), cmd, viewer, path)
	}
	return nil
}

func runFollow(ctx context.Context, cmd *cobra.Command, viewer *logging.Viewer, path string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	entries := make(chan logging.LogEntry, 100)
	errCh := make(chan error, 1)

	go func() {
		errCh <- viewer.Follow(ctx, path, entries)
	}()

	for {
		select {
		case entry := <-entries:
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), viewer.FormatEntry(entry))
		case err := <-errCh:
			return err
		case <-ctx.Done():
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "\n---")
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Stopped.")
			return nil
		}
	}
}
