package device

import (
	"io"
	"sort"

	"github.com/silaspsadia/DiOS/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that checks for the presence of a particular piece
// of hardware and returns a driver for it, or nil if the hardware is absent.
type ProbeFn func() Driver

// InstallOrder fixes the slot a driver occupies within the boot sequence.
// The output devices must come up before anything that needs to log, the
// descriptor and interrupt tables must precede the interrupt controller,
// and the controller must precede any driver that registers an interrupt
// handler. Interrupts are only enabled after the whole sequence completes.
type InstallOrder uint8

// The boot-install ranks, in the order the hal walks them.
const (
	InstallOrderConsole InstallOrder = iota
	InstallOrderTTY
	InstallOrderGDT
	InstallOrderIDT
	InstallOrderISR
	InstallOrderIRQ
	InstallOrderTimer
	InstallOrderKeyboard
)

// DriverInfo describes a driver registered with this package.
type DriverInfo struct {
	// Order is the driver's slot in the boot sequence.
	Order InstallOrder

	// Probe checks whether the device is present.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that can be sorted by
// install order.
type DriverInfoList []*DriverInfo

// Len returns the number of entries in the list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 list entries.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less reports whether entry i must be installed before entry j.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var _ sort.Interface = (DriverInfoList)(nil)

var registeredDrivers DriverInfoList

// RegisterDriver adds a driver to the list of registered drivers. Driver
// packages call this from their init so that importing the package is
// enough to make the hardware it manages installable.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}
