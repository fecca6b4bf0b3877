package preflight

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

// CheckBookFile loads the book to confirm every line decodes.
func (c *Checker) CheckBookFile(path string) CheckResult {
	result := CheckResult{
		Name:     "book_file",
		Required: true,
	}

	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		if c.createIfMissing {
			result.Status = StatusWarn
			result.Message = "does not exist yet; it will be created on first use"
			return result
		}
		result.Status = StatusFail
		result.Message = "does not exist"
		return result
	}
	if err != nil {
		result.Status = StatusFail
		result.Message = err.Error()
		return result
	}
	if info.IsDir() {
		result.Status = StatusFail
		result.Message = "is a directory"
		return result
	}

	b, err := persist.Load(path)
	if err != nil {
		result.Status = StatusFail
		result.Message = err.Error()
		var be *errors.BookError
		if stderrors.As(err, &be) && be.Details["line"] != "" {
			result.Message = fmt.Sprintf("line %s: %s", be.Details["line"], be.Message)
		}
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%d contacts, %s", b.Len(), humanize.IBytes(uint64(info.Size()))) //nolint:gosec // size is non-negative
	result.Details = fmt.Sprintf("last assigned id %d, modified %s", b.LastAssignedID(), humanize.Time(info.ModTime()))
	return result
}

// CheckLock reports whether another process is writing the book.
func (c *Checker) CheckLock(path string) CheckResult {
	result := CheckResult{Name: "book_lock"}

	held, err := persist.LockHeld(path)
	switch {
	case err != nil:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("cannot probe lock: %v", err)
	case held:
		result.Status = StatusWarn
		result.Message = "held by another process; writes will wait for it"
	default:
		result.Status = StatusPass
		result.Message = "free"
	}
	return result
}
