package keyboard

import (
	"io"

	"github.com/silaspsadia/DiOS/device"
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/cpu"
	"github.com/silaspsadia/DiOS/kernel/irq"
	"github.com/silaspsadia/DiOS/kernel/kfmt"
	"github.com/silaspsadia/DiOS/kernel/libk/vector"
)

const (
	// kbdIRQLine is the hardware IRQ line the keyboard controller fires on.
	kbdIRQLine = 1

	// dataPort is the keyboard controller port that holds the scancode of
	// the key event being delivered.
	dataPort = 0x60

	// queueCapacity is the initial scancode queue capacity. The queue
	// grows on demand when key events outpace their consumers.
	queueCapacity = 8
)

// ErrMissingController is returned when the keyboard is installed before the
// interrupt controller has been remapped.
var ErrMissingController = &kernel.Error{Module: "ps2_keyboard", Message: "interrupt controller not installed"}

var (
	// controllerInstalledFn, handleIRQFn and portReadFn are mocked by tests.
	controllerInstalledFn = irq.ControllerInstalled
	handleIRQFn           = irq.HandleInterrupt
	portReadFn            = cpu.PortReadByte
)

// PS2 implements a driver for the PS/2 keyboard controller. Delivered
// scancodes are queued until a consumer picks them up; the queue hands back
// the most recent event first.
type PS2 struct {
	queue *vector.Vector[uint8]

	// dropped counts key events lost because the queue could not grow.
	dropped uint64
}

// DriverName returns the name of this driver.
func (d *PS2) DriverName() string {
	return "ps2_keyboard"
}

// DriverVersion returns the version of this driver.
func (d *PS2) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit allocates the scancode queue and registers the key-event
// handler on the keyboard IRQ line.
func (d *PS2) DriverInit(w io.Writer) *kernel.Error {
	if !controllerInstalledFn() {
		return ErrMissingController
	}

	queue, err := vector.New[uint8](queueCapacity)
	if err != nil {
		return err
	}

	intNum, err := irq.VectorForIRQ(kbdIRQLine)
	if err != nil {
		queue.Destroy()
		return err
	}
	if err := handleIRQFn(intNum, d.onKeyEvent); err != nil {
		queue.Destroy()
		return err
	}

	d.queue = queue
	kfmt.Fprintf(w, "scancode queue ready (%d slots)\n", queue.Cap())
	return nil
}

// onKeyEvent reads the pending scancode off the controller and queues it.
func (d *PS2) onKeyEvent() {
	sc := portReadFn(dataPort)
	if err := d.queue.Push(sc); err != nil {
		d.dropped++
	}
}

// ReadScancode removes and returns the most recent queued scancode.
// vector.ErrVectorEmpty is returned when no key events are pending.
func (d *PS2) ReadScancode() (uint8, *kernel.Error) {
	return d.queue.Pop()
}

// PendingEvents returns the number of queued scancodes.
func (d *PS2) PendingEvents() uint32 {
	return d.queue.Len()
}

// Dropped returns the number of key events lost to queue exhaustion.
func (d *PS2) Dropped() uint64 {
	return d.dropped
}

// probeForPS2 checks for the presence of a PS/2 keyboard controller.
func probeForPS2() device.Driver {
	return &PS2{}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.InstallOrderKeyboard,
		Probe: probeForPS2,
	})
}
