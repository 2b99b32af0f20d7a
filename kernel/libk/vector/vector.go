// Package vector provides the kernel's generic growable container. A
// Vector[T] stores its elements by value in a contiguous, exclusively owned
// buffer that doubles in capacity whenever an append finds it full. A
// PtrVector[T] stores addresses of separately allocated objects and can
// optionally take ownership of them, in which case destroying the container
// also releases every pointee still stored in it.
//
// Containers have an explicit, deterministic lifetime: they are created by
// New/NewPtr, mutated by Push/Pop only and released exactly once by Destroy.
// They carry no internal synchronization; callers running with interrupts
// enabled must bracket every mutating call with their own exclusive-access
// discipline.
package vector

import (
	"unsafe"

	"github.com/silaspsadia/DiOS/kernel"
	"github.com/silaspsadia/DiOS/kernel/mem"
	"github.com/silaspsadia/DiOS/kernel/mem/kmalloc"
)

// DefaultCapacity is the number of element slots a vector starts out with
// when the caller does not request a minimum capacity.
const DefaultCapacity = 1

var (
	// ErrVectorEmpty is returned by Pop when the vector holds no elements.
	ErrVectorEmpty = &kernel.Error{Module: "vector", Message: "pop from empty vector"}

	// ErrVectorDestroyed is returned by any operation applied to a vector
	// after its storage has been released.
	ErrVectorDestroyed = &kernel.Error{Module: "vector", Message: "vector used after destroy"}

	// ErrIndexOutOfRange is returned by At for indexes at or past the
	// vector length.
	ErrIndexOutOfRange = &kernel.Error{Module: "vector", Message: "index out of range"}

	// ErrBadDestructor is returned by NewPtr when the ownership flag and
	// the destructor argument disagree.
	ErrBadDestructor = &kernel.Error{Module: "vector", Message: "destructor does not match ownership policy"}

	// allocFn and freeFn are mocked by tests.
	allocFn = kmalloc.Alloc
	freeFn  = kmalloc.Free
)

// Vector is a growable container for elements of type T. The zero value is
// not usable; vectors must be obtained through New.
type Vector[T any] struct {
	length   uint32
	capacity uint32
	elemSize mem.Size
	data     []T
}

// New creates an empty vector with storage for at least minCapacity elements.
// Passing 0 selects DefaultCapacity. If the heap cannot satisfy the request
// no vector is created.
func New[T any](minCapacity uint32) (*Vector[T], *kernel.Error) {
	if minCapacity == 0 {
		minCapacity = DefaultCapacity
	}

	var zero T
	elemSize := mem.Size(unsafe.Sizeof(zero))
	if err := allocFn(mem.Size(minCapacity) * elemSize); err != nil {
		return nil, err
	}

	return &Vector[T]{
		capacity: minCapacity,
		elemSize: elemSize,
		data:     make([]T, minCapacity),
	}, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() uint32 {
	return v.length
}

// Cap returns the number of allocated element slots.
func (v *Vector[T]) Cap() uint32 {
	return v.capacity
}

// ElemSize returns the size of one element in bytes.
func (v *Vector[T]) ElemSize() mem.Size {
	return v.elemSize
}

// Push appends val to the vector, growing the backing storage first if all
// slots are in use. A successful grow reallocates the buffer so any raw
// pointers into the old storage become invalid. On allocation failure the
// vector is left exactly as it was.
func (v *Vector[T]) Push(val T) *kernel.Error {
	if v.data == nil {
		return ErrVectorDestroyed
	}

	if v.length == v.capacity {
		if err := v.grow(); err != nil {
			return err
		}
	}

	v.data[v.length] = val
	v.length++
	return nil
}

// Pop removes and returns the most recently pushed element. Capacity is
// never given back on Pop; callers that need the memory reclaimed must
// destroy the vector and create a new one.
func (v *Vector[T]) Pop() (T, *kernel.Error) {
	var zero T

	if v.data == nil {
		return zero, ErrVectorDestroyed
	}
	if v.length == 0 {
		return zero, ErrVectorEmpty
	}

	v.length--
	val := v.data[v.length]
	v.data[v.length] = zero
	return val, nil
}

// At returns the element stored at index without removing it.
func (v *Vector[T]) At(index uint32) (T, *kernel.Error) {
	var zero T

	if v.data == nil {
		return zero, ErrVectorDestroyed
	}
	if index >= v.length {
		return zero, ErrIndexOutOfRange
	}

	return v.data[index], nil
}

// Destroy releases the backing storage. The vector must not be used again
// after this call; any further operation reports ErrVectorDestroyed.
func (v *Vector[T]) Destroy() *kernel.Error {
	if v.data == nil {
		return ErrVectorDestroyed
	}

	freeFn(mem.Size(v.capacity) * v.elemSize)
	v.data = nil
	v.length, v.capacity = 0, 0
	return nil
}

// grow doubles the vector capacity. Growth is always multiplicative so that
// a sequence of N pushes triggers O(log N) reallocations.
func (v *Vector[T]) grow() *kernel.Error {
	newCapacity := v.capacity * 2
	if err := allocFn(mem.Size(newCapacity) * v.elemSize); err != nil {
		return err
	}

	newData := make([]T, newCapacity)
	copy(newData, v.data[:v.length])
	freeFn(mem.Size(v.capacity) * v.elemSize)

	v.data = newData
	v.capacity = newCapacity
	return nil
}

// Destructor releases a pointee owned by a PtrVector.
type Destructor[T any] func(*T)

// PtrVector is a growable container for pointers to separately allocated
// objects of type T. Only the addresses are stored; pointees are never
// copied. When created with ownTargets set, the vector assumes ownership of
// every pushed pointee and applies its destructor to each live element on
// Destroy.
type PtrVector[T any] struct {
	vec         Vector[*T]
	ownsTargets bool
	free        Destructor[T]
}

// NewPtr creates an empty pointer vector. The ownership policy is fixed at
// creation: an owning vector requires a destructor for its pointees while a
// borrowing vector must not be given one.
func NewPtr[T any](ownTargets bool, free Destructor[T], minCapacity uint32) (*PtrVector[T], *kernel.Error) {
	if ownTargets == (free == nil) {
		return nil, ErrBadDestructor
	}

	vec, err := New[*T](minCapacity)
	if err != nil {
		return nil, err
	}

	return &PtrVector[T]{
		vec:         *vec,
		ownsTargets: ownTargets,
		free:        free,
	}, nil
}

// Len returns the number of live elements.
func (v *PtrVector[T]) Len() uint32 {
	return v.vec.Len()
}

// Cap returns the number of allocated element slots.
func (v *PtrVector[T]) Cap() uint32 {
	return v.vec.Cap()
}

// OwnsTargets returns true if destroying the vector also releases the
// pointed-to objects.
func (v *PtrVector[T]) OwnsTargets() bool {
	return v.ownsTargets
}

// Push appends the address val to the vector.
func (v *PtrVector[T]) Push(val *T) *kernel.Error {
	return v.vec.Push(val)
}

// Pop removes and returns the most recently pushed address. Ownership of the
// pointee transfers back to the caller.
func (v *PtrVector[T]) Pop() (*T, *kernel.Error) {
	return v.vec.Pop()
}

// At returns the address stored at index without removing it.
func (v *PtrVector[T]) At(index uint32) (*T, *kernel.Error) {
	return v.vec.At(index)
}

// Destroy releases the backing storage. For an owning vector the destructor
// runs first, over the live elements only; stale addresses left in unused
// capacity are never touched.
func (v *PtrVector[T]) Destroy() *kernel.Error {
	if v.vec.data == nil {
		return ErrVectorDestroyed
	}

	if v.ownsTargets {
		for i := uint32(0); i < v.vec.length; i++ {
			v.free(v.vec.data[i])
		}
	}

	return v.vec.Destroy()
}
