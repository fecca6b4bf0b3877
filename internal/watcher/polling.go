package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"
)

// poller detects changes to one file by comparing stat snapshots.
type poller struct {
	path string
	last fileSnapshot
}

type fileSnapshot struct {
	exists  bool
	modTime time.Time
	size    int64
}

func newPoller(path string) (*poller, error) {
	p := &poller{path: path}
	snap, err := p.stat()
	if err != nil {
		return nil, err
	}
	p.last = snap
	return p, nil
}

func (p *poller) stat() (fileSnapshot, error) {
	info, err := os.Stat(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileSnapshot{}, nil
	}
	if err != nil {
		return fileSnapshot{}, err
	}
	return fileSnapshot{exists: true, modTime: info.ModTime(), size: info.Size()}, nil
}

// check returns the operation since the previous check, if any.
func (p *poller) check() (Operation, bool, error) {
	snap, err := p.stat()
	if err != nil {
		return 0, false, err
	}
	prev := p.last
	p.last = snap

	switch {
	case !prev.exists && snap.exists:
		return OpCreate, true, nil
	case prev.exists && !snap.exists:
		return OpDelete, true, nil
	case snap.exists && (!prev.modTime.Equal(snap.modTime) || prev.size != snap.size):
		return OpModify, true, nil
	default:
		return 0, false, nil
	}
}

// run polls every interval, passing changes to emit, until ctx or stop ends it.
func (p *poller) run(ctx context.Context, stop <-chan struct{}, interval time.Duration,
	emit func(Operation), emitErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			op, changed, err := p.check()
			if err != nil {
				emitErr(err)
				continue
			}
			if changed {
				emit(op)
			}
		}
	}
}
