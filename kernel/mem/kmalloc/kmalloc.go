package kmalloc

import (
	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/mem"
)

// ErrOutOfMemory is returned by Alloc when a reservation would push the heap
// past the limit configured via SetLimit.
var ErrOutOfMemory = &kernel.Error{Module: "kmalloc", Message: "out of memory"}

// Stats describes the accounting state of the kernel heap.
type Stats struct {
	// TotalAllocs and TotalFrees count the reservations and releases
	// performed since boot (or the last call to Reset).
	TotalAllocs uint64
	TotalFrees  uint64

	// InUse is the number of bytes currently reserved.
	InUse mem.Size

	// Limit is the configured heap limit; 0 means unlimited.
	Limit mem.Size
}

var heapStats Stats

// SetLimit caps the number of bytes that Alloc will hand out. A zero limit
// removes the cap.
func SetLimit(limit mem.Size) {
	heapStats.Limit = limit
}

// Alloc reserves size bytes from the kernel heap. The backing storage itself
// comes from the block that the caller allocates after a successful
// reservation; Alloc only performs the accounting that decides whether the
// request can be satisfied at all.
func Alloc(size mem.Size) *kernel.Error {
	if heapStats.Limit != 0 && heapStats.InUse+size > heapStats.Limit {
		return ErrOutOfMemory
	}

	heapStats.InUse += size
	heapStats.TotalAllocs++
	return nil
}

// Free releases a reservation of size bytes made by a previous call to Alloc.
func Free(size mem.Size) {
	if size > heapStats.InUse {
		size = heapStats.InUse
	}

	heapStats.InUse -= size
	heapStats.TotalFrees++
}

// ReadStats returns a snapshot of the heap accounting state.
func ReadStats() Stats {
	return heapStats
}

// Reset clears the accounting state but keeps the configured limit.
func Reset() {
	limit := heapStats.Limit
	heapStats = Stats{Limit: limit}
}
