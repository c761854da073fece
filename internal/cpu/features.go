// Package cpu reports the SIMD features of the host for benchmark output.
package cpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features lists the instruction set extensions relevant to FFT kernels.
type Features struct {
	HasSSE2   bool
	HasSSE3   bool
	HasSSSE3  bool
	HasSSE41  bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasFMA    bool

	HasNEON  bool
	HasASIMD bool

	Architecture string
}

// Detect reads the feature flags golang.org/x/sys/cpu collected at startup.
func Detect() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasSSE3:      cpu.X86.HasSSE3,
		HasSSSE3:     cpu.X86.HasSSSE3,
		HasSSE41:     cpu.X86.HasSSE41,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasFMA:       cpu.X86.HasFMA,
		HasNEON:      cpu.ARM.HasNEON,
		HasASIMD:     cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// String returns the architecture followed by the supported extensions,
// e.g. "amd64 sse2 sse3 avx avx2 fma".
func (f Features) String() string {
	names := []string{f.Architecture}

	for _, ext := range []struct {
		ok   bool
		name string
	}{
		{f.HasSSE2, "sse2"},
		{f.HasSSE3, "sse3"},
		{f.HasSSSE3, "ssse3"},
		{f.HasSSE41, "sse4.1"},
		{f.HasAVX, "avx"},
		{f.HasAVX2, "avx2"},
		{f.HasAVX512, "avx512"},
		{f.HasFMA, "fma"},
		{f.HasNEON, "neon"},
		{f.HasASIMD, "asimd"},
	} {
		if ext.ok {
			names = append(names, ext.name)
		}
	}

	return strings.Join(names, " ")
}
