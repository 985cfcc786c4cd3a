//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detectFeatures() {
	hasNEON = cpu.ARM64.HasASIMD
}
