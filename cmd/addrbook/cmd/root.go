// Package cmd provides the CLI commands for addrbook.
package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/addrbook/internal/config"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/logging"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/profiling"
	"github.com/Aman-CERP/addrbook/internal/ui"
	"github.com/Aman-CERP/addrbook/pkg/version"
)

// globalOptions holds persistent flags and the state set up before each command.
type globalOptions struct {
	bookPath string
	format   string
	debug    bool
	noColor  bool
	profile  profiling.Options

	cfg            *config.Config
	loggingCleanup func()
	profiler       *profiling.Session
}

// NewRootCmd creates the root command for the addrbook CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{})
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addrbook [path]",
		Short: "Local address book",
		Long: `addrbook keeps contacts in a tab-separated text file, one contact per line,
and looks them up by id, full name or phone number.

Run 'addrbook <path>' to open the interactive shell on a book file.`,
		Example: `  # Open the shell on a book
  addrbook contacts.tsv

  # Add and look up without the shell
  addrbook add --first Ada --last Lovelace --address London --phone 555-0100
  addrbook find --name "Ada Lovelace"`,
		Version:       version.Get().String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.bookPath, "book", "b", "", "Book file (default from config: book.path)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", string(output.FormatText), "Output format: text, json")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.addrbook/logs/")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&opts.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.Heap, "profile-mem", "", "Write heap profile to file on exit")
	cmd.PersistentFlags().StringVar(&opts.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return opts.setup(cmd)
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		opts.teardown()
		return nil
	}

	cmd.AddCommand(newShellCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newFindCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newLogsCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))

	return cmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	opts := &globalOptions{}
	root := newRootCmd(opts)
	if err := root.Execute(); err != nil {
		opts.teardown()
		reportError(root.ErrOrStderr(), opts.format, err)
		return err
	}
	return nil
}

// setup starts any requested profiles, loads configuration and installs the logger.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	if o.profile.Enabled() {
		p, err := profiling.Start(o.profile)
		if err != nil {
			return errors.InternalError("cannot start profiling", err)
		}
		o.profiler = p
	}

	if _, err := output.ParseFormat(o.format); err != nil {
		return errors.ValidationError(err.Error(), nil).WithDetail("flag", "--format")
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.InternalError("cannot determine working directory", err)
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if !cmd.Flags().Changed("no-color") && (cfg.UI.NoColor || ui.DetectNoColor()) {
		o.noColor = true
	}

	if o.debug {
		logCfg := cfg.LogConfig()
		logCfg.Level = "debug"
		logger, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		o.loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("debug logging enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("command", cmd.CommandPath()),
			slog.String("version", version.Version))
		return nil
	}

	slog.SetDefault(logging.SetupConsole(cmd.ErrOrStderr(), "warn"))
	return nil
}

func (o *globalOptions) teardown() {
	if o.profiler != nil {
		if err := o.profiler.Stop(); err != nil {
			slog.Warn("failed to write profiles", slog.String("error", err.Error()))
		}
		o.profiler = nil
	}
	if o.loggingCleanup != nil {
		slog.Info("debug logging stopped")
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
}

// settings returns the loaded configuration, or defaults before setup ran.
func (o *globalOptions) settings() *config.Config {
	if o.cfg == nil {
		return config.NewConfig()
	}
	return o.cfg
}

func (o *globalOptions) outputFormat() output.Format {
	f, err := output.ParseFormat(o.format)
	if err != nil {
		return output.FormatText
	}
	return f
}

// writer returns an output writer for cmd's stdout honouring --format and --no-color.
func (o *globalOptions) writer(cmd *cobra.Command) *output.Writer {
	return output.NewStyled(cmd.OutOrStdout(), o.outputFormat(), o.noColor)
}

// reportError prints err in the requested format.
func reportError(w io.Writer, format string, err error) {
	var be *errors.BookError
	if !stderrors.As(err, &be) {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if format == string(output.FormatJSON) {
		if data, jerr := errors.FormatJSON(err); jerr == nil {
			_, _ = fmt.Fprintln(w, string(data))
			return
		}
	}
	_, _ = fmt.Fprint(w, errors.FormatForCLI(err))
}
