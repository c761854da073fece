package algosht

import (
	"runtime"
	"time"
)

// PlanOptions configures plan creation. The zero value selects GOMAXPROCS
// workers, the registered FFT backend and no observer.
type PlanOptions struct {
	// Workers bounds the goroutines a single transform uses. Values < 1
	// select runtime.GOMAXPROCS(0); 1 runs everything on the caller's
	// goroutine.
	Workers int

	// Backend overrides the process-wide FFT backend.
	Backend FFTBackend

	// Observer, if set, is notified after every transform.
	Observer Observer
}

func (o PlanOptions) workers() int {
	if o.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}

	return o.Workers
}

func (o PlanOptions) backend() FFTBackend {
	if o.Backend == nil {
		return CurrentBackend()
	}

	return o.Backend
}

// Op names a transform entry point.
type Op string

const (
	OpForward     Op = "forward"
	OpInverse     Op = "inverse"
	OpForwardReal Op = "forward_real"
	OpInverseReal Op = "inverse_real"
)

// TransformEvent describes one finished transform.
type TransformEvent struct {
	Op       Op
	Scheme   Scheme
	L        int
	Spin     int
	Duration time.Duration
	Err      error
}

// Observer receives TransformEvents. Implementations must be safe for
// concurrent use when a plan is shared between goroutines.
type Observer interface {
	ObserveTransform(TransformEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TransformEvent)

func (f ObserverFunc) ObserveTransform(ev TransformEvent) { f(ev) }
