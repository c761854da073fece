package algosht

import (
	"sync"

	algofft "github.com/cwbudde/algo-fft"
)

// FFTPlan is a complex FFT of fixed length. Forward is unnormalized and
// Inverse is scaled by 1/Len, the convention of algo-fft. dst and src must
// both have length Len. Implementations must be safe for concurrent use.
type FFTPlan interface {
	Len() int
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// RealFFTPlan is a real-to-complex FFT of fixed length n with a half
// spectrum of n/2+1 bins, normalized like FFTPlan.
type RealFFTPlan interface {
	Len() int
	Forward(dst []complex128, src []float64) error
	Inverse(dst []float64, src []complex128) error
}

// FFTBackend creates the FFT plans used by the transforms.
type FFTBackend interface {
	Name() string
	NewPlan(n int) (FFTPlan, error)
	NewRealPlan(n int) (RealFFTPlan, error)
}

var (
	backendMu sync.RWMutex
	backend   FFTBackend = AlgoFFTBackend{}
)

// RegisterBackend installs the process-wide default backend used by plans
// whose PlanOptions do not name one. Passing nil restores algo-fft.
func RegisterBackend(b FFTBackend) {
	if b == nil {
		b = AlgoFFTBackend{}
	}

	backendMu.Lock()
	backend = b
	backendMu.Unlock()
}

// CurrentBackend returns the process-wide default backend.
func CurrentBackend() FFTBackend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()

	return b
}

// AlgoFFTBackend plans transforms with github.com/cwbudde/algo-fft.
type AlgoFFTBackend struct{}

func (AlgoFFTBackend) Name() string { return "algo-fft" }

func (AlgoFFTBackend) NewPlan(n int) (FFTPlan, error) {
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// NewRealPlan returns an algo-fft real plan. algo-fft needs n >= 2, so the
// single-sample case is served by a trivial identity plan.
func (AlgoFFTBackend) NewRealPlan(n int) (RealFFTPlan, error) {
	if n == 1 {
		return singleRealPlan{}, nil
	}

	p, err := algofft.NewPlanReal64(n)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// singleRealPlan is the length-1 real FFT: the spectrum is the sample.
type singleRealPlan struct{}

func (singleRealPlan) Len() int { return 1 }

func (singleRealPlan) Forward(dst []complex128, src []float64) error {
	if len(dst) != 1 || len(src) != 1 {
		return algofft.ErrLengthMismatch
	}

	dst[0] = complex(src[0], 0)

	return nil
}

func (singleRealPlan) Inverse(dst []float64, src []complex128) error {
	if len(dst) != 1 || len(src) != 1 {
		return algofft.ErrLengthMismatch
	}

	dst[0] = real(src[0])

	return nil
}

func wrapBackend(op string, b FFTBackend, n int, err error) error {
	return newError(KindInternal, op, err, "backend %s, n=%d", b.Name(), n)
}
