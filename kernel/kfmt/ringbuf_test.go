package kfmt

import (
	"bytes"
	"io"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var rb ringBuffer
		exp := "the big brown fox jumped over the lazy dog"

		n, err := rb.Write([]byte(exp))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(exp) {
			t.Fatalf("expected to write %d bytes; wrote %d", len(exp), n)
		}

		var buf bytes.Buffer
		io.Copy(&buf, &rb)
		if got := buf.String(); got != exp {
			t.Fatalf("expected to read %q; got %q", exp, got)
		}
	})

	t.Run("overflow evicts oldest bytes", func(t *testing.T) {
		var rb ringBuffer

		payload := make([]byte, earlyBufferSize)
		for i := range payload {
			payload[i] = 'x'
		}
		rb.Write(payload)
		rb.Write([]byte("tail"))

		out := make([]byte, earlyBufferSize)
		n, err := rb.Read(out)
		if err != nil {
			t.Fatal(err)
		}
		if n != earlyBufferSize {
			t.Fatalf("expected full buffer read of %d bytes; got %d", earlyBufferSize, n)
		}
		if got := string(out[n-4:]); got != "tail" {
			t.Fatalf("expected buffer to end with the newest bytes; got %q", got)
		}
	})

	t.Run("drained buffer returns EOF", func(t *testing.T) {
		var rb ringBuffer
		rb.Write([]byte("ab"))

		out := make([]byte, 8)
		if n, _ := rb.Read(out); n != 2 {
			t.Fatalf("expected to read 2 bytes; got %d", n)
		}
		if _, err := rb.Read(out); err != io.EOF {
			t.Fatalf("expected io.EOF; got %v", err)
		}
	})

	t.Run("byte by byte read", func(t *testing.T) {
		var rb ringBuffer
		exp := "scancode"
		rb.Write([]byte(exp))

		var buf bytes.Buffer
		single := make([]byte, 1)
		for {
			_, err := rb.Read(single)
			if err == io.EOF {
				break
			}
			buf.Write(single)
		}

		if got := buf.String(); got != exp {
			t.Fatalf("expected to read %q; got %q", exp, got)
		}
	})
}
