package cmd

import (
	stderrors "errors"
	"log/slog"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

// resolveBookPath picks the book file: positional argument, then --book,
// then book.path from configuration.
func (o *globalOptions) resolveBookPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if o.bookPath != "" {
		return o.bookPath
	}
	return o.settings().Book.Path
}

// loadBook loads the book at path. A missing file is an empty book when
// book.create_if_missing is set.
func (o *globalOptions) loadBook(path string) (*book.Book, error) {
	load := persist.Load
	if o.settings().Book.CreateIfMissing {
		load = persist.LoadOrCreate
	}

	b, err := load(path)
	if err != nil {
		slog.Error("failed to load book", slog.String("path", path), slog.String("error", err.Error()))
		var be *errors.BookError
		if stderrors.As(err, &be) && be.Suggestion == "" && be.Code == errors.ErrCodeLoadFailed {
			be.WithSuggestion("Check the path, or set book.create_if_missing to start an empty book")
		}
		return nil, err
	}

	slog.Debug("book loaded", slog.String("path", path), slog.Int("contacts", b.Len()))
	return b, nil
}

// retryPolicy is the configured retry policy for book writes.
func (o *globalOptions) retryPolicy() errors.RetryConfig {
	return o.settings().RetryPolicy()
}
