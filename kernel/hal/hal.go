package hal

import (
	"bytes"
	"sort"

	"github.com/silaspsadia/DiOS/device"
	"github.com/silaspsadia/DiOS/device/tty"
	"github.com/silaspsadia/DiOS/device/video/console"
	"github.com/silaspsadia/DiOS/kernel/kfmt"
)

// managedDevices contains the devices installed by the HAL.
type managedDevices struct {
	activeConsole console.Device
	activeTTY     tty.Device

	// activeDrivers tracks all successfully initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer
)

// ActiveTTY returns the currently active TTY.
func ActiveTTY() tty.Device {
	return devices.activeTTY
}

// ActiveDrivers returns the list of successfully initialized drivers.
func ActiveDrivers() []device.Driver {
	return devices.activeDrivers
}

// InitTerminal probes and installs the output devices (console, then
// terminal) so the kernel can emit output before anything else comes up.
func InitTerminal() {
	install(func(order device.InstallOrder) bool {
		return order <= device.InstallOrderTTY
	})
}

// DetectHardware probes and installs the remaining registered drivers in
// their boot order. The output devices handled by InitTerminal are skipped.
func DetectHardware() {
	install(func(order device.InstallOrder) bool {
		return order > device.InstallOrderTTY
	})
}

// install probes each registered driver whose install slot is selected by
// wanted, in boot order, and invokes onDriverInit for every driver that
// initializes successfully.
func install(wanted func(device.InstallOrder) bool) {
	drivers := device.DriverList()
	sort.Stable(drivers)

	w := kfmt.PrefixWriter{Sink: kfmt.GetOutputSink()}

	for _, info := range drivers {
		if !wanted(info.Order) {
			continue
		}

		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked for every successfully initialized driver. The
// first console and the first terminal become the active ones; once both
// are present they get linked together.
func onDriverInit(drv device.Driver) {
	switch drvImpl := drv.(type) {
	case console.Device:
		if devices.activeConsole != nil {
			return
		}

		devices.activeConsole = drvImpl
		if devices.activeTTY != nil {
			linkTTYToConsole()
		}
	case tty.Device:
		if devices.activeTTY != nil {
			return
		}

		devices.activeTTY = drvImpl
		if devices.activeConsole != nil {
			linkTTYToConsole()
		}
	}
}

// linkTTYToConsole connects the active TTY device to the active console
// device and redirects kernel output to the terminal.
func linkTTYToConsole() {
	devices.activeTTY.AttachTo(devices.activeConsole)
	devices.activeTTY.SetState(tty.StateActive)
	kfmt.SetOutputSink(devices.activeTTY)
}
