package timer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/gate"
	"github.com/silaspsadia/DiOS/kernel/irq"
)

func TestPITInstall(t *testing.T) {
	defer func() {
		controllerInstalledFn = irq.ControllerInstalled
		handleIRQFn = irq.HandleInterrupt
	}()

	t.Run("requires interrupt controller", func(t *testing.T) {
		controllerInstalledFn = func() bool { return false }

		pit := &PIT{frequency: defaultFrequency}
		var buf bytes.Buffer
		if err := pit.DriverInit(&buf); err != ErrMissingController {
			t.Fatalf("expected ErrMissingController; got %v", err)
		}
	})

	t.Run("registers tick handler", func(t *testing.T) {
		controllerInstalledFn = func() bool { return true }

		var (
			gotInt  gate.InterruptNumber
			handler irq.HandlerFn
		)
		handleIRQFn = func(intNum gate.InterruptNumber, h irq.HandlerFn) *kernel.Error {
			gotInt = intNum
			handler = h
			return nil
		}

		pit := &PIT{frequency: defaultFrequency}
		var buf bytes.Buffer
		if err := pit.DriverInit(&buf); err != nil {
			t.Fatal(err)
		}

		if exp := gate.InterruptNumber(0x20); gotInt != exp {
			t.Fatalf("expected tick handler on slot 0x%x; got 0x%x", exp, gotInt)
		}
		if !strings.Contains(buf.String(), "ticking at 100 Hz") {
			t.Fatalf("expected init log; got %q", buf.String())
		}

		for i := 0; i < 3; i++ {
			handler()
		}
		if exp := uint64(3); pit.Ticks() != exp {
			t.Fatalf("expected %d ticks; got %d", exp, pit.Ticks())
		}
	})
}

func TestPITProbe(t *testing.T) {
	drv := probeForPIT()
	if drv == nil {
		t.Fatal("expected probe to return a driver")
	}

	pit, ok := drv.(*PIT)
	if !ok {
		t.Fatalf("expected probe to return a *PIT; got %T", drv)
	}
	if pit.Frequency() != defaultFrequency {
		t.Fatalf("expected default frequency %d; got %d", defaultFrequency, pit.Frequency())
	}
}
