// Package fanin serializes writes from many producer goroutines onto one
// underlying sink through a single writer goroutine, so no partial lines
// interleave.
package fanin

import (
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

// Writer fans lines from any number of producers into one goroutine that
// owns the underlying sink. Only the handle returned by New can Flush;
// clones share the channel but hold no join capability. After the first
// write error the goroutine keeps draining so producers never block; the
// error surfaces when the owning handle flushes.
type Writer struct {
	lines chan []byte
	group *errgroup.Group
	owner bool
}

// New starts the writer goroutine over w and returns the owning handle.
func New(w io.Writer) *Writer {
	lines := make(chan []byte, 256)
	var group errgroup.Group
	group.Go(func() error {
		var werr error
		for line := range lines {
			if werr != nil {
				continue
			}
			if _, err := w.Write(line); err != nil {
				werr = err
			}
		}
		if werr == nil {
			if f, ok := w.(interface{ Flush() error }); ok {
				werr = f.Flush()
			}
		}
		return werr
	})
	return &Writer{lines: lines, group: &group, owner: true}
}

// Clone returns a producer handle sharing this writer's channel. Clones
// must stop writing before the owning handle flushes, and must not be
// flushed themselves.
func (w *Writer) Clone() *Writer {
	return &Writer{lines: w.lines, group: w.group}
}

// WriteLine queues one line for writing, appending a newline. The buffer
// is copied; callers may reuse it immediately.
func (w *Writer) WriteLine(line []byte) {
	msg := make([]byte, len(line)+1)
	copy(msg, line)
	msg[len(line)] = '\n'
	w.lines <- msg
}

// WriteStringLine queues one line for writing, appending a newline.
func (w *Writer) WriteStringLine(line string) {
	w.WriteLine([]byte(line))
}

// Flush closes the channel and joins the writer goroutine, returning the
// first write error it encountered. After the drain the goroutine flushes
// the underlying sink when it offers a Flush method, so buffered sinks do
// not lose tail data. Valid only on the owning handle.
func (w *Writer) Flush() error {
	if !w.owner {
		return errors.New("fanin: Flush called on a cloned handle")
	}
	close(w.lines)
	return w.group.Wait()
}
