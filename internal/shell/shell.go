package shell

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/output"
	"github.com/Aman-CERP/addrbook/internal/watcher"
)

// DefaultPrompt is printed before each command.
const DefaultPrompt = "> "

// errEndOfInput stops the loop when input runs out in the middle of a command.
var errEndOfInput = stderrors.New("end of input")

// errQuit stops the loop on exit or quit.
var errQuit = stderrors.New("quit")

// Options configures a Shell.
type Options struct {
	// Path is the book file that add and delete write to.
	Path string

	// Prompt defaults to DefaultPrompt.
	Prompt string

	// RecentSize bounds the recent list. Defaults to book.DefaultRecentSize.
	RecentSize int

	// Retry is the policy for writes to Path.
	Retry errors.RetryConfig

	// Watcher, when set, reloads the book after other processes change Path.
	Watcher watcher.Watcher

	// NoColor disables styled contact output.
	NoColor bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Shell runs the command loop over one book.
type Shell struct {
	path    string
	book    *book.Book
	recent  *book.Recent
	prompt  string
	retry   errors.RetryConfig
	watcher watcher.Watcher
	logger  *slog.Logger

	in  *lineReader
	raw io.Writer
	out *output.Writer

	// written is the file state after this shell's last write.
	written stamp
}

// New creates a shell over b reading commands from in and writing to out.
func New(b *book.Book, in io.Reader, out io.Writer, opts Options) (*Shell, error) {
	if b == nil {
		return nil, errors.InternalError("shell needs a book", nil)
	}
	if opts.Path == "" {
		return nil, errors.ValidationError("shell needs a book path", nil)
	}

	recent, err := book.NewRecent(opts.RecentSize)
	if err != nil {
		return nil, errors.InternalError("failed to create recent list", err)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Shell{
		path:    opts.Path,
		book:    b,
		recent:  recent,
		prompt:  prompt,
		retry:   opts.Retry,
		watcher: opts.Watcher,
		logger:  logger,
		in:      newLineReader(in),
		raw:     out,
		out:     output.NewStyled(out, output.FormatText, opts.NoColor),
		written: statStamp(opts.Path),
	}, nil
}

// Book returns the book currently held by the shell. It changes on reload.
func (s *Shell) Book() *book.Book {
	return s.book
}

// Run executes commands until exit, end of input or ctx cancellation.
// The watcher, if any, runs alongside and is stopped when the loop ends.
func (s *Shell) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		defer s.in.close()
		if s.watcher != nil {
			defer func() { _ = s.watcher.Stop() }()
		}
		return s.loop(gctx)
	})

	return g.Wait()
}

func (s *Shell) loop(ctx context.Context) error {
	var (
		events <-chan watcher.FileEvent
		errs   <-chan error
	)
	if s.watcher != nil {
		events = s.watcher.Events()
		errs = s.watcher.Errors()
	}

	s.logger.Debug("shell started", slog.String("path", s.path), slog.Int("contacts", s.book.Len()))

	s.print(s.prompt)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if s.handleChange(event) {
				s.print(s.prompt)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.Warn("book watcher error", slog.String("error", err.Error()))

		case line, ok := <-s.in.lines:
			if !ok {
				return nil
			}
			err := s.dispatch(ctx, line)
			if stderrors.Is(err, errQuit) || stderrors.Is(err, errEndOfInput) {
				return nil
			}
			if err != nil {
				return err
			}
			s.print(s.prompt)
		}
	}
}

// dispatch runs one command line.
func (s *Shell) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := lookup(name)
	if !ok {
		s.out.Println("Invalid command")
		s.out.Println("Type 'help' to list commands.")
		return nil
	}

	s.logger.Debug("shell command", slog.String("command", cmd.name))
	return cmd.run(s, ctx, fields[1:])
}

// ask prints prompt and returns the trimmed answer.
func (s *Shell) ask(ctx context.Context, prompt string) (string, error) {
	s.print(prompt)
	line, ok := s.in.next(ctx)
	if !ok {
		s.print("\n")
		return "", errEndOfInput
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) print(text string) {
	_, _ = fmt.Fprint(s.raw, text)
}
