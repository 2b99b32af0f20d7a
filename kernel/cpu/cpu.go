package cpu

// The CPU state backing these primitives is kept in Go so the boot path and
// the drivers can run hosted. Once the kernel is linked against an rt0 layer,
// the implementations below get swapped for their single-instruction
// equivalents (sti, cli, hlt, in, out).
var (
	intEnabled bool

	// ioSpace models the x86 I/O port address space.
	ioSpace [65536]uint8
)

// EnableInterrupts enables interrupt handling.
func EnableInterrupts() {
	intEnabled = true
}

// DisableInterrupts disables interrupt handling.
func DisableInterrupts() {
	intEnabled = false
}

// InterruptsEnabled returns true if interrupt handling is currently enabled.
func InterruptsEnabled() bool {
	return intEnabled
}

// Halt stops instruction execution.
func Halt() {
	for {
	}
}

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8 {
	return ioSpace[port]
}

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8) {
	ioSpace[port] = val
}
