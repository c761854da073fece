package algosht

import "k8s.io/klog/v2"

// Stage is a step of the transform pipeline. A Plan is created through
// GridReady and WeightsReady; every call then walks BasisReady, Accumulating
// and Done without keeping state between calls.
type Stage uint8

const (
	StageIdle Stage = iota
	StageGridReady
	StageWeightsReady
	StageBasisReady
	StageAccumulating
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageGridReady:
		return "grid-ready"
	case StageWeightsReady:
		return "weights-ready"
	case StageBasisReady:
		return "basis-ready"
	case StageAccumulating:
		return "accumulating"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	logPlan  klog.Level = 2
	logStage klog.Level = 4
)

func (p *Plan) enter(op Op, st Stage) {
	if v := klog.V(logStage); v.Enabled() {
		v.InfoS("Transform stage", "op", op, "scheme", p.scheme, "L", p.bandLimit, "stage", st)
	}
}
