package tty

import (
	"github.com/silaspsadia/DiOS/device"
	"github.com/silaspsadia/DiOS/device/video/console"
	"github.com/silaspsadia/DiOS/kernel"
	"io"
)

// VT implements a terminal that buffers its contents and optionally mirrors
// them to an attached console. The terminal interprets the following special
// characters:
//   - \r (carriage-return)
//   - \n (line-feed)
//   - \b (backspace)
//   - \t (tab; expanded to tabWidth spaces)
type VT struct {
	cons console.Device

	width  uint32
	height uint32

	// The terminal contents. Each character occupies 3 bytes and uses
	// the format: (ASCII char, fg, bg).
	data []uint8

	tabWidth         uint8
	defaultFg, curFg uint8
	defaultBg, curBg uint8
	cursorX          uint32
	cursorY          uint32
	state            State
}

// NewVT creates a new virtual terminal device. The tabWidth parameter
// controls tab expansion.
func NewVT(tabWidth uint8) *VT {
	return &VT{
		tabWidth: tabWidth,
		cursorX:  1,
		cursorY:  1,
	}
}

// AttachTo connects a TTY to a console instance and resets its contents.
func (t *VT) AttachTo(cons console.Device) {
	if cons == nil {
		return
	}

	t.cons = cons
	t.width, t.height = cons.Dimensions()
	t.defaultFg, t.defaultBg = cons.DefaultColors()
	t.curFg, t.curBg = t.defaultFg, t.defaultBg
	t.cursorX, t.cursorY = 1, 1

	t.data = make([]uint8, t.width*t.height*3)
	for i := 0; i < len(t.data); i += 3 {
		t.data[i] = ' '
		t.data[i+1] = t.defaultFg
		t.data[i+2] = t.defaultBg
	}
}

// State returns the TTY's state.
func (t *VT) State() State {
	return t.state
}

// SetState updates the TTY's state. Activating the terminal syncs its
// buffered contents to the attached console.
func (t *VT) SetState(newState State) {
	if t.state == newState {
		return
	}

	t.state = newState

	if t.state == StateActive && t.cons != nil {
		offset := 0
		for y := uint32(1); y <= t.height; y++ {
			for x := uint32(1); x <= t.width; x, offset = x+1, offset+3 {
				t.cons.Write(t.data[offset], t.data[offset+1], t.data[offset+2], x, y)
			}
		}
	}
}

// CursorPosition returns the current cursor position.
func (t *VT) CursorPosition() (uint32, uint32) {
	return t.cursorX, t.cursorY
}

// SetCursorPosition sets the current cursor position to (x,y), clipped to
// the terminal dimensions.
func (t *VT) SetCursorPosition(x, y uint32) {
	if t.cons == nil {
		return
	}

	if x < 1 {
		x = 1
	} else if x > t.width {
		x = t.width
	}
	if y < 1 {
		y = 1
	} else if y > t.height {
		y = t.height
	}

	t.cursorX, t.cursorY = x, y
}

// Write writes len(p) bytes from p to the terminal.
func (t *VT) Write(p []byte) (int, error) {
	for _, b := range p {
		if err := t.WriteByte(b); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// WriteByte writes a single byte to the terminal, interpreting the special
// characters documented on VT.
func (t *VT) WriteByte(b byte) error {
	// Output sent before a console is attached has nowhere to live yet
	// and gets dropped; kfmt's early buffer covers that window.
	if t.data == nil {
		return nil
	}

	switch b {
	case '\n':
		t.cursorX = 1
		t.lineFeed()
	case '\r':
		t.cursorX = 1
	case '\b':
		if t.cursorX > 1 {
			t.cursorX--
			t.putGlyph(' ')
		}
	case '\t':
		for i := uint8(0); i < t.tabWidth; i++ {
			t.advance(' ')
		}
	default:
		t.advance(b)
	}

	return nil
}

// advance writes ch at the cursor and moves the cursor right, wrapping to
// the next line at the right edge.
func (t *VT) advance(ch byte) {
	t.putGlyph(ch)

	t.cursorX++
	if t.cursorX > t.width {
		t.cursorX = 1
		t.lineFeed()
	}
}

// putGlyph stores ch at the cursor position and mirrors it to the console
// when the terminal is active.
func (t *VT) putGlyph(ch byte) {
	offset := ((t.cursorY-1)*t.width + (t.cursorX - 1)) * 3
	t.data[offset] = ch
	t.data[offset+1] = t.curFg
	t.data[offset+2] = t.curBg

	if t.state == StateActive && t.cons != nil {
		t.cons.Write(ch, t.curFg, t.curBg, t.cursorX, t.cursorY)
	}
}

// lineFeed moves the cursor down one line, scrolling the terminal contents
// up when the cursor is on the last line.
func (t *VT) lineFeed() {
	if t.cursorY < t.height {
		t.cursorY++
		return
	}

	// Shift the buffered contents up one line and clear the last line.
	rowLen := int(t.width * 3)
	copy(t.data, t.data[rowLen:])
	lastRow := t.data[len(t.data)-rowLen:]
	for i := 0; i < rowLen; i += 3 {
		lastRow[i] = ' '
		lastRow[i+1] = t.defaultFg
		lastRow[i+2] = t.defaultBg
	}

	if t.state == StateActive && t.cons != nil {
		t.cons.Scroll(console.ScrollDirUp, 1)
		t.cons.Fill(1, t.height, t.width, 1, t.defaultFg, t.defaultBg)
	}
}

// DriverName returns the name of this driver.
func (t *VT) DriverName() string {
	return "vt"
}

// DriverVersion returns the version of this driver.
func (t *VT) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver.
func (t *VT) DriverInit(_ io.Writer) *kernel.Error {
	return nil
}

// probeForVT returns a driver for the system terminal.
func probeForVT() device.Driver {
	return NewVT(DefaultTabWidth)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.InstallOrderTTY,
		Probe: probeForVT,
	})
}
