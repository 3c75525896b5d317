package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes every chunk to all of its writers, even when some of them fail.
// Used to mirror the rotated log file to stdout.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write reports len(p) when at least one writer got the full chunk,
// so a broken stdout does not make logrus drop the file output.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		err       error
		delivered bool
	)
	for _, w := range cw.Writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		delivered = true
	}
	if !delivered {
		return 0, err
	}
	return len(p), err
}
