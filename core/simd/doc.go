// Package simd provides CPU-dispatched float64 reduction kernels.
//
// Runtime feature detection picks the widest usable block width the
// first time a kernel runs; the choice is immutable for the process
// lifetime. Set RTBKIT_SIMD (generic, neon, avx2, avx512) to pin a
// narrower width, for example when comparing results across machines.
//
// The kernels are portable Go. Block widths match the vector widths of
// the named instruction sets so the compiler can keep the independent
// accumulator chains in registers.
package simd
