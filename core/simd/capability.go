package simd

import (
	"os"
	"strings"
	"sync"
)

// EnvISA is the environment variable that pins kernel dispatch to a
// specific instruction set. Unknown or unsupported values are ignored.
const EnvISA = "RTBKIT_SIMD"

// ISA identifies the instruction set a kernel block width is sized for.
type ISA uint8

const (
	Generic ISA = iota
	NEON
	AVX2
	AVX512
)

func (isa ISA) String() string {
	switch isa {
	case NEON:
		return "neon"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "generic"
	}
}

// ParseISA maps a RTBKIT_SIMD value to an ISA. Matching is
// case-insensitive; the second result is false for unknown names.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "scalar":
		return Generic, true
	case "neon", "asimd":
		return NEON, true
	case "avx2":
		return AVX2, true
	case "avx512", "avx-512":
		return AVX512, true
	}
	return Generic, false
}

var (
	// Feature flags filled in by the per-arch detectFeatures.
	hasNEON   bool
	hasAVX2   bool
	hasAVX512 bool

	capOnce sync.Once
	active  ISA
)

// ActiveISA reports the instruction set kernels dispatch to. The first
// call (or the first kernel call) runs feature detection; the result
// never changes afterwards.
func ActiveISA() ISA {
	capOnce.Do(bindKernels)
	return active
}

func supported(isa ISA) bool {
	switch isa {
	case NEON:
		return hasNEON
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512
	}
	return true
}

func pickISA() ISA {
	if env := os.Getenv(EnvISA); env != "" {
		if isa, ok := ParseISA(env); ok && supported(isa) {
			return isa
		}
	}
	switch {
	case hasAVX512:
		return AVX512
	case hasAVX2:
		return AVX2
	case hasNEON:
		return NEON
	}
	return Generic
}

func bindKernels() {
	detectFeatures()
	active = pickISA()
	switch active {
	case AVX512:
		kernelDot, kernelMoments = dot16, moments8
	case AVX2:
		kernelDot, kernelMoments = dot8, moments8
	case NEON:
		kernelDot, kernelMoments = dot4, moments4
	default:
		kernelDot, kernelMoments = dotScalar, momentsScalar
	}
}
