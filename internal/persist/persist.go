// Package persist moves an address book between memory and its backing
// file: one tab-delimited line per contact.
//
// Files are opened and closed per call. Writers take an exclusive lock on
// <path>.lock so two processes never interleave partial lines.
package persist

import (
	"bufio"
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

// maxLineSize bounds a single record line.
const maxLineSize = 1024 * 1024

// Load reads every line of path into a fresh book.
//
// Loading is all-or-nothing: on any error no book is returned. An unreadable
// or missing file yields ERR_201_LOAD_FAILED; a malformed line yields the
// codec's decode error with a "line" detail. Blank lines are skipped.
func Load(path string) (*book.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadError(path, err)
	}
	defer func() { _ = f.Close() }()

	b := book.New()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || line == "\r" {
			continue
		}
		c, err := codec.Decode(line)
		if err != nil {
			return nil, withLine(err, path, lineNo)
		}
		b.Add(c)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.LoadError(path, err).WithDetail("line", strconv.Itoa(lineNo+1))
	}

	return b, nil
}

// LoadOrCreate is Load, except that a missing file yields an empty book.
func LoadOrCreate(path string) (*book.Book, error) {
	b, err := Load(path)
	if err != nil && stderrors.Is(err, fs.ErrNotExist) {
		return book.New(), nil
	}
	return b, err
}

// Append writes c as one line at the end of path, creating the file if
// needed. It is independent of any in-memory book: callers pair it with
// book.Add themselves. Failures are retryable ERR_202_WRITE_FAILED errors.
// A failed write is truncated away, so a retry never follows a partial line.
func Append(path string, c contact.Contact) error {
	return withLock(path, func() error {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errors.WriteError(path, err)
		}
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return errors.WriteError(path, err)
		}
		if _, err := writeLine(f, codec.Encode(c)+"\n"); err != nil {
			if terr := f.Truncate(info.Size()); terr != nil {
				err = stderrors.Join(err, terr)
			}
			_ = f.Close()
			return errors.WriteError(path, err)
		}
		if err := f.Close(); err != nil {
			return errors.WriteError(path, err)
		}
		return nil
	})
}

// writeLine is swapped in tests to simulate short writes.
var writeLine = func(f *os.File, line string) (int, error) {
	return f.WriteString(line)
}

// AppendWithRetry calls Append under the given retry policy.
func AppendWithRetry(ctx context.Context, path string, c contact.Contact, cfg errors.RetryConfig) error {
	return errors.Retry(ctx, cfg, func() error {
		return Append(path, c)
	})
}

func withLine(err error, path string, lineNo int) error {
	var be *errors.BookError
	if stderrors.As(err, &be) {
		return be.WithDetail("path", path).WithDetail("line", strconv.Itoa(lineNo))
	}
	return errors.LoadError(path, err).WithDetail("line", strconv.Itoa(lineNo))
}

func lockError(path string, cause error) error {
	return errors.New(errors.ErrCodeLockFailed, "cannot lock address book", cause).
		WithDetail("path", path)
}
