package shell

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// lineReader feeds input lines to the command loop over a channel so the
// loop can wait for input and watcher events at the same time.
type lineReader struct {
	lines chan string
	done  chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go lr.scan(r)
	return lr
}

func (lr *lineReader) scan(r io.Reader) {
	defer close(lr.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lr.lines <- strings.TrimRight(scanner.Text(), "\r"):
		case <-lr.done:
			return
		}
	}
}

// next blocks for the next line. ok is false once input is exhausted or
// ctx is done.
func (lr *lineReader) next(ctx context.Context) (line string, ok bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok = <-lr.lines:
		return line, ok
	}
}

// close releases the scanning goroutine if it is waiting to deliver a line.
// A goroutine blocked reading the underlying reader exits when it returns.
func (lr *lineReader) close() {
	select {
	case <-lr.done:
	default:
		close(lr.done)
	}
}
