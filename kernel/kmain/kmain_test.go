package kmain

import (
	"testing"

	"github.com/silaspsadia/DiOS/device/keyboard"
	"github.com/silaspsadia/DiOS/device/timer"
	"github.com/silaspsadia/DiOS/kernel/cpu"
	"github.com/silaspsadia/DiOS/kernel/gate"
	"github.com/silaspsadia/DiOS/kernel/hal"
	"github.com/silaspsadia/DiOS/kernel/irq"
)

// The early boot path mutates package-level state across the gate, irq and
// hal packages, so the whole sequence is exercised once, in order, by a
// single test.
func TestKernelEarly(t *testing.T) {
	if err := kernelEarly(); err != nil {
		t.Fatalf("expected boot sequence to succeed; got %v", err)
	}

	if !gate.GDTInstalled() {
		t.Error("expected the GDT to be installed")
	}
	if !gate.IDTInstalled() {
		t.Error("expected the IDT to be installed")
	}
	if !irq.ControllerInstalled() {
		t.Error("expected the interrupt controller to be installed")
	}
	if !cpu.InterruptsEnabled() {
		t.Error("expected interrupts to be enabled after boot")
	}
	if hal.ActiveTTY() == nil {
		t.Fatal("expected an active TTY")
	}

	var (
		pit *timer.PIT
		kbd *keyboard.PS2
	)
	for _, drv := range hal.ActiveDrivers() {
		switch d := drv.(type) {
		case *timer.PIT:
			pit = d
		case *keyboard.PS2:
			kbd = d
		}
	}
	if pit == nil {
		t.Fatal("expected the timer driver to be active")
	}
	if kbd == nil {
		t.Fatal("expected the keyboard driver to be active")
	}

	t.Run("timer ticks are delivered", func(t *testing.T) {
		tickVector, err := irq.VectorForIRQ(0)
		if err != nil {
			t.Fatal(err)
		}

		before := pit.Ticks()
		irq.Dispatch(tickVector)
		irq.Dispatch(tickVector)

		if exp := before + 2; pit.Ticks() != exp {
			t.Fatalf("expected %d ticks; got %d", exp, pit.Ticks())
		}
	})

	t.Run("key events reach the scancode queue", func(t *testing.T) {
		keyVector, err := irq.VectorForIRQ(1)
		if err != nil {
			t.Fatal(err)
		}

		cpu.PortWriteByte(0x60, 0x2a)
		irq.Dispatch(keyVector)

		got, kerr := kbd.ReadScancode()
		if kerr != nil {
			t.Fatal(kerr)
		}
		if exp := uint8(0x2a); got != exp {
			t.Fatalf("expected scancode 0x%x; got 0x%x", exp, got)
		}
	})

	t.Run("double boot is rejected", func(t *testing.T) {
		if err := kernelEarly(); err != gate.ErrAlreadyInstalled {
			t.Fatalf("expected ErrAlreadyInstalled on second boot; got %v", err)
		}
	})
}
