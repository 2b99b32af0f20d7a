package timer

import (
	"io"

	"github.com/silaspsadia/DiOS/device"
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/irq"
	"github.com/silaspsadia/DiOS/kernel/kfmt"
)

const (
	// pitIRQLine is the hardware IRQ line the timer fires on.
	pitIRQLine = 0

	// defaultFrequency is the tick rate the timer is programmed for.
	defaultFrequency = uint32(100)
)

// ErrMissingController is returned when the timer is installed before the
// interrupt controller has been remapped.
var ErrMissingController = &kernel.Error{Module: "pit", Message: "interrupt controller not installed"}

var (
	// controllerInstalledFn and handleIRQFn are mocked by tests.
	controllerInstalledFn = irq.ControllerInstalled
	handleIRQFn           = irq.HandleInterrupt
)

// PIT implements a driver for the programmable interval timer. It counts
// the ticks delivered on its IRQ line; everything that needs a monotonic
// boot-time clock reads the counter via Ticks.
type PIT struct {
	frequency uint32
	ticks     uint64
}

// DriverName returns the name of this driver.
func (p *PIT) DriverName() string {
	return "pit"
}

// DriverVersion returns the version of this driver.
func (p *PIT) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit programs the timer and registers its tick handler. The
// interrupt controller must be remapped first or the tick interrupt would
// collide with the CPU exception range.
func (p *PIT) DriverInit(w io.Writer) *kernel.Error {
	if !controllerInstalledFn() {
		return ErrMissingController
	}

	intNum, err := irq.VectorForIRQ(pitIRQLine)
	if err != nil {
		return err
	}
	if err := handleIRQFn(intNum, p.tick); err != nil {
		return err
	}

	kfmt.Fprintf(w, "ticking at %d Hz\n", p.frequency)
	return nil
}

// Frequency returns the programmed tick rate in Hz.
func (p *PIT) Frequency() uint32 {
	return p.frequency
}

// Ticks returns the number of timer interrupts delivered since install.
func (p *PIT) Ticks() uint64 {
	return p.ticks
}

func (p *PIT) tick() {
	p.ticks++
}

// probeForPIT checks for the presence of a programmable interval timer.
func probeForPIT() device.Driver {
	return &PIT{frequency: defaultFrequency}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.InstallOrderTimer,
		Probe: probeForPIT,
	})
}
