package main

import "github.com/silaspsadia/DiOS/kernel/kmain"

// main works as a trampoline for calling the actual kernel entrypoint
// (kmain.Kmain). It is intentionally defined to prevent the Go compiler from
// optimizing away the kernel code, as the compiler is not aware of the
// presence of the rt0 code that jumps to it.
//
// main is not expected to return. If it does, the rt0 code will halt the CPU.
func main() {
	kmain.Kmain()
}
