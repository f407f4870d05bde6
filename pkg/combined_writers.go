package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all Writers. Unlike io.MultiWriter
// it keeps going after a failing writer, so a broken log file does not
// silence stdout.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{
		Writers: make([]io.Writer, 0, len(writers)),
	}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

// Write reports len(p) when at least one writer accepted the whole of p.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for i, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
			continue
		}
		n = len(p)
	}
	return n, err
}
