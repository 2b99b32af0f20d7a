// Package kfmt provides the formatted-output primitives used by the kernel.
// The formatter is self-contained so it can run before the full Go runtime
// is up: it supports a small verb set, performs no heap allocation for its
// own bookkeeping and buffers output in a ring buffer until an output sink
// (normally the active TTY) is attached.
package kfmt

import "io"

// maxIntBufSize is the scratch space for formatting a single integer,
// including sign and padding.
const maxIntBufSize = 32

var (
	errMissingArg   = []byte("%!(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// earlyPrintBuffer captures Printf output emitted before a sink is
	// registered via SetOutputSink.
	earlyPrintBuffer ringBuffer

	// outputSink is where Printf sends its output. While nil, output is
	// redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the target for Printf output to w and drains any data
// accumulated in the early boot buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the current Printf target. If no sink has been
// registered yet, the early boot buffer is returned instead.
func GetOutputSink() io.Writer {
	if outputSink == nil {
		return &earlyPrintBuffer
	}
	return outputSink
}

// Printf writes a formatted string to the active output sink. The supported
// verb subset is:
//
//	%s  string or byte slice
//	%d  base-10 integer
//	%x  base-16 integer, lower-case, zero-padded
//	%o  base-8 integer, zero-padded
//	%t  "true" or "false"
//
// An optional decimal width may precede the verb; values narrower than the
// width are left-padded (with spaces for %s and %d, zeroes for %x and %o).
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but writes the formatted output to w.
// Passing a nil writer routes the output to the early boot buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		fmtLen   = len(format)
	)

	for i := 0; i < fmtLen; i++ {
		ch := format[i]
		if ch != '%' {
			writeByte(w, ch)
			continue
		}

		// Scan the optional width.
		pad := 0
		for i++; i < fmtLen && format[i] >= '0' && format[i] <= '9'; i++ {
			pad = pad*10 + int(format[i]-'0')
		}

		if i == fmtLen {
			write(w, errNoVerb)
			break
		}

		verb := format[i]
		if verb == '%' {
			writeByte(w, '%')
			continue
		}

		if argIndex >= len(args) {
			write(w, errMissingArg)
			continue
		}
		arg := args[argIndex]
		argIndex++

		switch verb {
		case 'o':
			fmtInt(w, arg, 8, pad)
		case 'd':
			fmtInt(w, arg, 10, pad)
		case 'x':
			fmtInt(w, arg, 16, pad)
		case 's':
			fmtString(w, arg, pad)
		case 't':
			fmtBool(w, arg)
		default:
			write(w, errNoVerb)
		}
	}

	for ; argIndex < len(args); argIndex++ {
		write(w, errExtraArg)
	}
}

// fmtBool writes a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	bVal, ok := v.(bool)
	if !ok {
		write(w, errWrongArgType)
		return
	}

	if bVal {
		write(w, trueValue)
	} else {
		write(w, falseValue)
	}
}

// fmtString writes a formatted version of string or []byte value v, applying
// the requested left padding.
func fmtString(w io.Writer, v interface{}, padLen int) {
	switch sVal := v.(type) {
	case string:
		for i := len(sVal); i < padLen; i++ {
			writeByte(w, ' ')
		}
		for i := 0; i < len(sVal); i++ {
			writeByte(w, sVal[i])
		}
	case []byte:
		for i := len(sVal); i < padLen; i++ {
			writeByte(w, ' ')
		}
		write(w, sVal)
	default:
		write(w, errWrongArgType)
	}
}

// fmtInt writes a formatted version of v in the requested base, applying the
// requested padding. All built-in signed and unsigned integer types are
// supported.
func fmtInt(w io.Writer, v interface{}, base, padLen int) {
	var (
		uval uint64
		neg  bool
		buf  [maxIntBufSize]byte
	)

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		neg = t < 0
		uval = absInt64(int64(t))
	case int16:
		neg = t < 0
		uval = absInt64(int64(t))
	case int32:
		neg = t < 0
		uval = absInt64(int64(t))
	case int64:
		neg = t < 0
		uval = absInt64(t)
	case int:
		neg = t < 0
		uval = absInt64(int64(t))
	default:
		write(w, errWrongArgType)
		return
	}

	padCh := byte(' ')
	if base == 8 || base == 16 {
		padCh = '0'
	}
	if padLen >= maxIntBufSize {
		padLen = maxIntBufSize - 1
	}

	// Emit the digits in reverse order.
	index := 0
	for {
		digit := byte(uval % uint64(base))
		if digit < 10 {
			buf[index] = digit + '0'
		} else {
			buf[index] = digit - 10 + 'a'
		}
		index++

		uval /= uint64(base)
		if uval == 0 {
			break
		}
	}

	if neg && padCh == '0' {
		// The sign must precede zero padding.
		for ; index < padLen-1; index++ {
			buf[index] = padCh
		}
		buf[index] = '-'
		index++
	} else {
		if neg {
			buf[index] = '-'
			index++
		}
		for ; index < padLen; index++ {
			buf[index] = padCh
		}
	}

	// Reverse in place.
	for left, right := 0, index-1; left < right; left, right = left+1, right-1 {
		buf[left], buf[right] = buf[right], buf[left]
	}

	write(w, buf[0:index])
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// write sends p to w, or to the early boot buffer when no writer is set.
func write(w io.Writer, p []byte) {
	if w == nil {
		earlyPrintBuffer.Write(p)
		return
	}
	w.Write(p)
}

// singleByte is a shared scratch buffer for emitting one character at a time
// without converting sub-strings to byte slices.
var singleByte = []byte{0}

func writeByte(w io.Writer, b byte) {
	singleByte[0] = b
	write(w, singleByte)
}
