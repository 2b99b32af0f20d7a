package kfmt

import "io"

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each output line.
type PrefixWriter struct {
	// Sink receives all writes, prefixes included.
	Sink io.Writer

	// Prefix is injected at the start of every line.
	Prefix []byte

	midLine bool
	scratch [1]byte
}

// Write writes len(p) bytes from p to the underlying sink, emitting the
// configured prefix whenever a new line begins. The returned count covers
// the bytes of p only, not the injected prefixes.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for _, b := range p {
		if !w.midLine {
			if _, err := w.Sink.Write(w.Prefix); err != nil {
				return written, err
			}
			w.midLine = true
		}

		w.scratch[0] = b
		n, err := w.Sink.Write(w.scratch[:])
		written += n
		if err != nil {
			return written, err
		}

		if b == '\n' {
			w.midLine = false
		}
	}

	return written, nil
}
