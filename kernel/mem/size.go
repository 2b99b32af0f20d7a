package mem

// Size is a byte quantity used by the allocator accounting.
type Size uint64

// Units for expressing allocation sizes and heap limits.
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
)
