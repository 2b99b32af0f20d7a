package kfmt

import "io"

// earlyBufferSize defines the size of the ring buffer that captures early
// Printf output. The default is large enough to hold the contents of a
// standard 80x25 text console.
const earlyBufferSize = 2048

// ringBuffer is a fixed-size byte ring. Writes never fail; once the buffer
// fills up, the oldest bytes are overwritten so the most recent boot output
// is always retained.
type ringBuffer struct {
	data  [earlyBufferSize]byte
	rHead int
	used  int
}

// Write appends len(p) bytes from p to the buffer, evicting the oldest bytes
// if the buffer is full.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		if rb.used == earlyBufferSize {
			rb.data[rb.rHead] = b
			rb.rHead = (rb.rHead + 1) % earlyBufferSize
			continue
		}

		rb.data[(rb.rHead+rb.used)%earlyBufferSize] = b
		rb.used++
	}

	return len(p), nil
}

// Read reads up to len(p) bytes into p, returning io.EOF once the buffer has
// been drained.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.used == 0 {
		return 0, io.EOF
	}

	var n int
	for ; n < len(p) && rb.used > 0; n++ {
		p[n] = rb.data[rb.rHead]
		rb.rHead = (rb.rHead + 1) % earlyBufferSize
		rb.used--
	}

	return n, nil
}
