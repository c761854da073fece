// Package metrics exports transform counts and latencies to Prometheus.
package metrics

import (
	"errors"

	algosht "github.com/cwbudde/algo-sht"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ssht"

// Recorder implements algosht.Observer on top of Prometheus collectors.
type Recorder struct {
	transforms *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ algosht.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Counts spherical harmonic transforms by operation, scheme and status",
		}, []string{"op", "scheme", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Wall time of spherical harmonic transforms",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"op", "scheme"}),
	}

	for _, c := range []prometheus.Collector{r.transforms, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveTransform records ev.
func (r *Recorder) ObserveTransform(ev algosht.TransformEvent) {
	op, scheme := string(ev.Op), ev.Scheme.String()

	r.transforms.WithLabelValues(op, scheme, status(ev.Err)).Inc()
	r.duration.WithLabelValues(op, scheme).Observe(ev.Duration.Seconds())
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, algosht.ErrArgumentInvalid):
		return algosht.KindArgumentInvalid.String()
	case errors.Is(err, algosht.ErrPreconditionViolation):
		return algosht.KindPreconditionViolation.String()
	case errors.Is(err, algosht.ErrAllocationFailure):
		return algosht.KindAllocationFailure.String()
	default:
		return "error"
	}
}
