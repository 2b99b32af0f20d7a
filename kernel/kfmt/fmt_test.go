package kfmt

import (
	"bytes"
	"testing"
)

func TestFprintf(t *testing.T) {
	specs := []struct {
		descr  string
		format string
		args   []interface{}
		exp    string
	}{
		{"plain text", "hello, kernel", nil, "hello, kernel"},
		{"string verb", "[%s]", []interface{}{"vector"}, "[vector]"},
		{"padded string", "%8s|", []interface{}{"gdt"}, "     gdt|"},
		{"byte slice", "%s", []interface{}{[]byte("irq")}, "irq"},
		{"base 10", "%d ticks", []interface{}{100}, "100 ticks"},
		{"negative base 10", "%d", []interface{}{-42}, "-42"},
		{"padded base 10", "%5d", []interface{}{7}, "    7"},
		{"base 16", "0x%x", []interface{}{uint32(0xb8000)}, "0xb8000"},
		{"zero-padded base 16", "0x%8x", []interface{}{uint16(0xff)}, "0x000000ff"},
		{"negative zero-padded", "%6x", []interface{}{-1}, "-00001"},
		{"base 8", "%o", []interface{}{8}, "10"},
		{"bool true", "%t", []interface{}{true}, "true"},
		{"bool false", "%t", []interface{}{false}, "false"},
		{"uintptr", "%x", []interface{}{uintptr(0xdead)}, "dead"},
		{"literal percent", "100%% done", nil, "100% done"},
		{"missing arg", "%d", nil, "%!(MISSING)"},
		{"extra arg", "done", []interface{}{1}, "done%!(EXTRA)"},
		{"wrong type for %d", "%d", []interface{}{"nan"}, "%!(WRONGTYPE)"},
		{"wrong type for %t", "%t", []interface{}{1}, "%!(WRONGTYPE)"},
		{"dangling percent", "fail: %", nil, "fail: %!(NOVERB)"},
		{"unknown verb", "%q", []interface{}{"x"}, "%!(NOVERB)"},
	}

	var buf bytes.Buffer
	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			buf.Reset()
			Fprintf(&buf, spec.format, spec.args...)
			if got := buf.String(); got != spec.exp {
				t.Errorf("expected %q; got %q", spec.exp, got)
			}
		})
	}
}

func TestEarlyOutputBuffering(t *testing.T) {
	defer func() {
		outputSink = nil
		earlyPrintBuffer = ringBuffer{}
	}()

	outputSink = nil
	earlyPrintBuffer = ringBuffer{}

	Printf("booting %s %d\n", "dios", 1)

	// Until a sink is attached, GetOutputSink exposes the boot buffer.
	if got := GetOutputSink(); got != &earlyPrintBuffer {
		t.Fatal("expected GetOutputSink to return the early boot buffer")
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if exp, got := "booting dios 1\n", buf.String(); got != exp {
		t.Fatalf("expected sink to receive buffered output %q; got %q", exp, got)
	}

	buf.Reset()
	Printf("online\n")
	if exp, got := "online\n", buf.String(); got != exp {
		t.Fatalf("expected direct output %q; got %q", exp, got)
	}

	if got := GetOutputSink(); got != &buf {
		t.Fatal("expected GetOutputSink to return the registered sink")
	}
}
