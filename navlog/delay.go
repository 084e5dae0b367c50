package navlog

// EMA is an exponential moving-average low-pass filter, the same shape MRPT's
// CAbstractPTGBasedReactive uses for its timoff_* delay-model filters
// (coefficient alpha=0.7 by default).
type EMA struct {
	alpha  float64
	value  float64
	primed bool
}

// NewEMA returns a filter with the given smoothing coefficient in (0,1].
// A larger alpha weighs the new sample more heavily.
func NewEMA(alpha float64) *EMA {
	return &EMA{alpha: alpha}
}

// Update folds in a new sample and returns the filtered value. The first
// sample seeds the filter exactly (no smoothing from zero).
func (e *EMA) Update(sample float64) float64 {
	if !e.primed {
		e.value = sample
		e.primed = true
		return e.value
	}
	e.value = e.alpha*sample + (1-e.alpha)*e.value
	return e.value
}

// Value returns the current filtered value without updating it.
func (e *EMA) Value() float64 {
	return e.value
}

// Primed reports whether at least one sample has been folded in.
func (e *EMA) Primed() bool {
	return e.primed
}

// DelayEstimator bundles the EMA filters needed by the reactive planner's
// delay-compensation stage (spec §4.3 P5): observed sensor ages and the
// round-trip time from a velocity command being decided to it taking effect.
type DelayEstimator struct {
	TimoffObstacles      *EMA // age of the last obstacle observation
	TimoffCurPoseVelAge  *EMA // age of the last pose/vel sample
	TimSendVelCmd        *EMA // mean time to physically apply a new command
	TimChangeSpeed       *EMA // mean time between successive speed changes
}

// NewDelayEstimator returns a DelayEstimator with MRPT's default alpha=0.7
// smoothing coefficient on every filter.
func NewDelayEstimator() *DelayEstimator {
	const alpha = 0.7
	return &DelayEstimator{
		TimoffObstacles:     NewEMA(alpha),
		TimoffCurPoseVelAge: NewEMA(alpha),
		TimSendVelCmd:       NewEMA(alpha),
		TimChangeSpeed:      NewEMA(alpha),
	}
}
