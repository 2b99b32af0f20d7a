package console

import (
	"io"

	"github.com/silaspsadia/DiOS/device"
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/kfmt"
	"github.com/silaspsadia/DiOS/kernel/mem"
	"github.com/silaspsadia/DiOS/kernel/mem/kmalloc"
)

// VgaTextConsole implements an EGA-compatible 80x25 text console. Each
// character in the console framebuffer is represented using two bytes: a
// byte for the character ASCII code and a byte that packs the foreground
// and background colors (4 bits each).
//
// The default settings for the console are light gray text (color 7) on a
// black background (color 0), with space as the clear character.
type VgaTextConsole struct {
	width  uint32
	height uint32

	fb []uint16

	defaultFg uint8
	defaultBg uint8
	clearChar uint16
}

const (
	defaultConsoleWidth  = 80
	defaultConsoleHeight = 25
)

// NewVgaTextConsole creates a new text console with the given dimensions.
func NewVgaTextConsole(columns, rows uint32) *VgaTextConsole {
	return &VgaTextConsole{
		width:     columns,
		height:    rows,
		clearChar: uint16(' '),
		defaultFg: 7,
		defaultBg: 0,
	}
}

// Dimensions returns the console width and height in characters.
func (cons *VgaTextConsole) Dimensions() (uint32, uint32) {
	return cons.width, cons.height
}

// DefaultColors returns the default foreground and background colors used by
// this console.
func (cons *VgaTextConsole) DefaultColors() (fg uint8, bg uint8) {
	return cons.defaultFg, cons.defaultBg
}

// Fill sets the contents of the specified rectangular region to the
// requested color. Both x and y coordinates are 1-based.
func (cons *VgaTextConsole) Fill(x, y, width, height uint32, fg, bg uint8) {
	clr := (((uint16(bg) << 4) | uint16(fg)) << 8) | cons.clearChar

	// Clip the rectangle to the console bounds.
	if x == 0 {
		x = 1
	} else if x > cons.width {
		x = cons.width
	}
	if y == 0 {
		y = 1
	} else if y > cons.height {
		y = cons.height
	}
	if x+width-1 > cons.width {
		width = cons.width - x + 1
	}
	if y+height-1 > cons.height {
		height = cons.height - y + 1
	}

	rowOffset := ((y - 1) * cons.width) + (x - 1)
	for ; height > 0; height, rowOffset = height-1, rowOffset+cons.width {
		for col := rowOffset; col < rowOffset+width; col++ {
			cons.fb[col] = clr
		}
	}
}

// Scroll the console contents to the specified direction. The caller is
// responsible for updating the contents of the region that was scrolled.
func (cons *VgaTextConsole) Scroll(dir ScrollDir, lines uint32) {
	if lines == 0 || lines > cons.height {
		return
	}

	offset := lines * cons.width

	switch dir {
	case ScrollDirUp:
		for i := uint32(0); i < (cons.height-lines)*cons.width; i++ {
			cons.fb[i] = cons.fb[i+offset]
		}
	case ScrollDirDown:
		for i := cons.height*cons.width - 1; i >= offset; i-- {
			cons.fb[i] = cons.fb[i-offset]
		}
	}
}

// Write a char to the specified location. Out-of-bounds coordinates and
// out-of-palette colors are clamped to a no-op and the defaults
// respectively. Both x and y coordinates are 1-based.
func (cons *VgaTextConsole) Write(ch byte, fg, bg uint8, x, y uint32) {
	if x < 1 || x > cons.width || y < 1 || y > cons.height {
		return
	}

	if fg > 15 {
		fg = cons.defaultFg
	}
	if bg > 15 {
		bg = cons.defaultBg
	}

	cons.fb[((y-1)*cons.width)+(x-1)] = (((uint16(bg) << 4) | uint16(fg)) << 8) | uint16(ch)
}

// DriverName returns the name of this driver.
func (cons *VgaTextConsole) DriverName() string {
	return "vga_text_console"
}

// DriverVersion returns the version of this driver.
func (cons *VgaTextConsole) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver by reserving and clearing the text
// framebuffer.
func (cons *VgaTextConsole) DriverInit(w io.Writer) *kernel.Error {
	fbSize := mem.Size(cons.width * cons.height * 2)
	if err := kmalloc.Alloc(fbSize); err != nil {
		return err
	}

	cons.fb = make([]uint16, cons.width*cons.height)
	cons.Fill(1, 1, cons.width, cons.height, cons.defaultFg, cons.defaultBg)

	kfmt.Fprintf(w, "text framebuffer %dx%d ready\n", cons.width, cons.height)
	return nil
}

// probeForVgaTextConsole checks for the presence of a vga text console.
func probeForVgaTextConsole() device.Driver {
	return NewVgaTextConsole(defaultConsoleWidth, defaultConsoleHeight)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.InstallOrderConsole,
		Probe: probeForVgaTextConsole,
	})
}
