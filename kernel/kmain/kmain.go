package kmain

import (
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/cpu"
	"github.com/silaspsadia/DiOS/kernel/gate"
	"github.com/silaspsadia/DiOS/kernel/hal"
	"github.com/silaspsadia/DiOS/kernel/irq"
	"github.com/silaspsadia/DiOS/kernel/kfmt"
	"github.com/silaspsadia/DiOS/kernel/mem"
	"github.com/silaspsadia/DiOS/kernel/mem/kmalloc"

	// Importing the driver packages is what registers them with the
	// install sequence.
	_ "github.com/silaspsadia/DiOS/device/keyboard"
	_ "github.com/silaspsadia/DiOS/device/timer"
)

// bootHeapLimit caps the kernel heap until a real memory map is consulted.
const bootHeapLimit = 64 * mem.Mb

var (
	// cpuHaltFn is mocked by tests.
	cpuHaltFn = cpu.Halt
)

// Kmain is the kernel entry point. It is invoked by the rt0 trampoline and
// is not expected to return: after bringing up the boot services it parks
// the CPU in a halt loop, waking only to service interrupts.
func Kmain() {
	if err := kernelEarly(); err != nil {
		kernel.Panic(err)
	}

	kfmt.Printf("Hello, kernel World%d!\n", 25)

	for {
		cpuHaltFn()
	}
}

// kernelEarly brings up the boot services in their contractual order: the
// output devices first so everything after them can log, then the CPU
// descriptor tables, the interrupt table, the interrupt service routines,
// the interrupt controller and finally the remaining hardware drivers.
// Interrupts stay disabled until the whole sequence has completed.
func kernelEarly() *kernel.Error {
	cpu.DisableInterrupts()
	kmalloc.SetLimit(bootHeapLimit)

	hal.InitTerminal()

	var err *kernel.Error
	if err = gate.InstallGDT(); err != nil {
		return err
	}
	if err = gate.InstallIDT(); err != nil {
		return err
	}
	if err = irq.InstallServiceRoutines(); err != nil {
		return err
	}
	if err = irq.InstallController(); err != nil {
		return err
	}

	hal.DetectHardware()

	cpu.EnableInterrupts()
	return nil
}
