package persist

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

// Save rewrites path to hold exactly the contacts of b, ordered by id.
// Uses atomic write (temp file + rename) so readers never see a partial file.
func Save(path string, b *book.Book) error {
	return withLock(path, func() error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.WriteError(path, err)
		}

		tmpPath := path + ".tmp"
		f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return errors.WriteError(path, err)
		}

		w := bufio.NewWriter(f)
		for _, c := range b.List() {
			if _, err := w.WriteString(codec.Encode(c) + "\n"); err != nil {
				_ = f.Close()
				_ = os.Remove(tmpPath)
				return errors.WriteError(path, err)
			}
		}
		if err := w.Flush(); err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
			return errors.WriteError(path, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(tmpPath)
			return errors.WriteError(path, err)
		}

		if err := os.Rename(tmpPath, path); err != nil {
			// Clean up temp file on failure
			_ = os.Remove(tmpPath)
			return errors.WriteError(path, err)
		}
		return nil
	})
}
