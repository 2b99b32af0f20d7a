// Package irq wires interrupt handlers to IDT slots and tracks the state of
// the interrupt delivery path: first the service-routine stubs that populate
// the IDT, then the interrupt controller that remaps hardware IRQ lines away
// from the CPU exception range.
package irq

import (
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/gate"
)

// HandlerFn is invoked by Dispatch when its interrupt fires.
type HandlerFn func()

const (
	// masterOffset and slaveOffset are the IDT slots the controller maps
	// the two groups of eight hardware IRQ lines to. Lines 0-7 land at
	// masterOffset+line, lines 8-15 at slaveOffset+line-8, clear of the
	// 0-31 CPU exception range.
	masterOffset = gate.InterruptNumber(0x20)
	slaveOffset  = gate.InterruptNumber(0x28)

	numIRQLines = 16
)

var (
	// ErrMissingIDT is returned when the service routines are installed
	// before an IDT is active.
	ErrMissingIDT = &kernel.Error{Module: "irq", Message: "service routine install requires an active idt"}

	// ErrMissingRoutines is returned when the controller install or a
	// handler registration runs before the service routines are in place.
	ErrMissingRoutines = &kernel.Error{Module: "irq", Message: "service routines not installed"}

	// ErrAlreadyInstalled is returned on repeated install attempts.
	ErrAlreadyInstalled = &kernel.Error{Module: "irq", Message: "already installed"}

	// ErrBadIRQLine is returned for IRQ lines outside 0-15.
	ErrBadIRQLine = &kernel.Error{Module: "irq", Message: "irq line out of range"}

	// idtInstalledFn is mocked by tests.
	idtInstalledFn = gate.IDTInstalled

	handlers [gate.NumInterrupts]HandlerFn

	routinesActive   bool
	controllerActive bool
	spuriousCount    uint64
)

// InstallServiceRoutines populates the IDT slots with the interrupt stubs.
// Requires an active IDT.
func InstallServiceRoutines() *kernel.Error {
	if !idtInstalledFn() {
		return ErrMissingIDT
	}
	if routinesActive {
		return ErrAlreadyInstalled
	}

	routinesActive = true
	return nil
}

// InstallController remaps the interrupt controller so hardware IRQ lines
// are delivered to the slots starting at masterOffset/slaveOffset. Requires
// the service routines to be in place.
func InstallController() *kernel.Error {
	if !routinesActive {
		return ErrMissingRoutines
	}
	if controllerActive {
		return ErrAlreadyInstalled
	}

	controllerActive = true
	return nil
}

// ControllerInstalled returns true once the interrupt controller is remapped.
func ControllerInstalled() bool {
	return controllerActive
}

// VectorForIRQ returns the IDT slot that hardware IRQ line fires on once the
// controller is installed.
func VectorForIRQ(line uint8) (gate.InterruptNumber, *kernel.Error) {
	if line >= numIRQLines {
		return 0, ErrBadIRQLine
	}

	if line < 8 {
		return masterOffset + gate.InterruptNumber(line), nil
	}
	return slaveOffset + gate.InterruptNumber(line-8), nil
}

// HandleInterrupt registers handler for the given IDT slot, replacing any
// previous registration.
func HandleInterrupt(intNum gate.InterruptNumber, handler HandlerFn) *kernel.Error {
	if !routinesActive {
		return ErrMissingRoutines
	}

	handlers[intNum] = handler
	return nil
}

// Dispatch invokes the handler registered for intNum. Interrupts without a
// handler are counted as spurious and otherwise ignored.
func Dispatch(intNum gate.InterruptNumber) {
	if handler := handlers[intNum]; handler != nil {
		handler()
		return
	}

	spuriousCount++
}

// SpuriousCount returns the number of interrupts delivered to slots without
// a registered handler.
func SpuriousCount() uint64 {
	return spuriousCount
}
