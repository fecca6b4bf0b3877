package shell

import (
	"log/slog"
	"os"
	"time"

	"github.com/Aman-CERP/addrbook/internal/persist"
	"github.com/Aman-CERP/addrbook/internal/watcher"
)

// stamp is the part of a file's state that changes on every write.
type stamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statStamp(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}

func (a stamp) equal(b stamp) bool {
	return a.exists == b.exists && a.size == b.size && a.modTime.Equal(b.modTime)
}

func (s *Shell) markWritten() {
	s.written = statStamp(s.path)
}

// handleChange reloads the book after an outside change to its file.
// Events caused by this shell's own writes are recognised by the file
// stamp and ignored. It reports whether anything was printed.
func (s *Shell) handleChange(event watcher.FileEvent) bool {
	current := statStamp(s.path)
	if current.equal(s.written) {
		s.logger.Debug("ignoring own write", slog.String("op", event.Operation.String()))
		return false
	}
	s.reload(current)
	return true
}

// syncWithDisk reloads the book when the file changed since this shell last
// loaded or wrote it. add and delete call it before writing. It returns
// false when the changed file cannot be loaded; callers must not write then.
func (s *Shell) syncWithDisk() bool {
	current := statStamp(s.path)
	if current.equal(s.written) {
		return true
	}
	return s.reload(current)
}

// reload replaces the book with the file's contents and reports the outcome.
// A removed file keeps the book in memory. After a failed load the stamp
// is left alone so the next write attempt checks the file again.
func (s *Shell) reload(current stamp) bool {
	if !current.exists {
		s.written = current
		s.logger.Warn("book file removed", slog.String("path", s.path))
		s.out.Println("")
		s.out.Warning("Book file was removed; keeping contacts in memory.")
		return true
	}

	reloaded, err := persist.Load(s.path)
	if err != nil {
		s.logger.Warn("reload failed", slog.String("path", s.path), slog.String("error", err.Error()))
		s.out.Println("")
		s.out.Warningf("Book file changed but could not be reloaded: %s", err.Error())
		return false
	}

	s.book = reloaded
	s.written = current
	s.logger.Info("book reloaded", slog.String("path", s.path), slog.Int("contacts", reloaded.Len()))
	s.out.Println("")
	s.out.Statusf("🔄", "Book changed on disk, reloaded %d contacts", reloaded.Len())
	return true
}
