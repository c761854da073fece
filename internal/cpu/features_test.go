package cpu

import (
	"runtime"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	f := Detect()
	if f.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Error("amd64 always has SSE2")
	}

	if runtime.GOARCH == "arm64" && !f.HasASIMD {
		t.Log("arm64 without ASIMD reported")
	}
}

func TestFeaturesString(t *testing.T) {
	t.Parallel()

	f := Features{Architecture: "amd64", HasSSE2: true, HasAVX2: true}
	if got := f.String(); got != "amd64 sse2 avx2" {
		t.Errorf("String() = %q", got)
	}

	if got := (Features{Architecture: "wasm"}).String(); strings.Contains(got, " ") {
		t.Errorf("String() = %q, want architecture only", got)
	}
}
