//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func detectFeatures() {
	hasAVX2 = cpu.X86.HasAVX2 && cpu.X86.HasFMA
	hasAVX512 = cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ
}
