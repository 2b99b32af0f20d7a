// Package gate tracks the CPU descriptor tables set up during boot. The
// table contents live with the low-level installation layer; this package
// owns the install bookkeeping and enforces that an IDT is never activated
// without a GDT behind it.
package gate

import "github.com/silaspsadia/DiOS/kernel"

// InterruptNumber describes an interrupt/exception/trap slot in the IDT.
type InterruptNumber uint8

// NumInterrupts is the number of slots in the IDT.
const NumInterrupts = 256

const (
	// DivideByZero occurs when dividing any number by 0 using the DIV or
	// IDIV instruction.
	DivideByZero = InterruptNumber(0)

	// NMI is a hardware interrupt that indicates issues with RAM or other
	// unrecoverable hardware problems.
	NMI = InterruptNumber(2)

	// DoubleFault occurs when an exception is unhandled or when an
	// exception occurs while the CPU is trying to call an exception
	// handler.
	DoubleFault = InterruptNumber(8)

	// GPFException is raised when a general protection fault occurs.
	GPFException = InterruptNumber(13)

	// PageFaultException is raised when a page-level protection or
	// presence check fails.
	PageFaultException = InterruptNumber(14)
)

var (
	// ErrAlreadyInstalled is returned when a descriptor table install is
	// attempted twice.
	ErrAlreadyInstalled = &kernel.Error{Module: "gate", Message: "descriptor table already installed"}

	// ErrMissingGDT is returned when an IDT install is attempted before
	// the GDT is active.
	ErrMissingGDT = &kernel.Error{Module: "gate", Message: "idt install requires an active gdt"}

	gdtActive bool
	idtActive bool
)

// InstallGDT activates the boot GDT. It must be called exactly once, before
// InstallIDT.
func InstallGDT() *kernel.Error {
	if gdtActive {
		return ErrAlreadyInstalled
	}

	gdtActive = true
	return nil
}

// InstallIDT activates the boot IDT. It must be called exactly once, after
// InstallGDT.
func InstallIDT() *kernel.Error {
	if !gdtActive {
		return ErrMissingGDT
	}
	if idtActive {
		return ErrAlreadyInstalled
	}

	idtActive = true
	return nil
}

// GDTInstalled returns true once the boot GDT is active.
func GDTInstalled() bool {
	return gdtActive
}

// IDTInstalled returns true once the boot IDT is active.
func IDTInstalled() bool {
	return idtActive
}
