package geom

import "github.com/pkg/errors"

// ErrNoSamples is returned by History.InterpolateAt when the history is empty.
var ErrNoSamples = errors.New("pose history has no samples")

// History is a time-ordered sliding window of pose/velocity samples, used to
// recover the robot's pose at an arbitrary past instant (needed by the NOP
// continuation's pose prediction). Samples older than the configured window
// are evicted on every Append.
type History struct {
	window  float64
	samples []PoseVelSample
}

// NewHistory returns a History retaining samples for windowSecs seconds.
func NewHistory(windowSecs float64) *History {
	return &History{window: windowSecs}
}

// Append adds a new sample, assumed to be newer than all previous samples,
// then evicts anything older than the retention window.
func (h *History) Append(s PoseVelSample) {
	h.samples = append(h.samples, s)
	cutoff := s.TimestampSecs - h.window
	i := 0
	for i < len(h.samples) && h.samples[i].TimestampSecs < cutoff {
		i++
	}
	if i > 0 {
		h.samples = append([]PoseVelSample{}, h.samples[i:]...)
	}
}

// Reset clears all stored samples, used when a new navigation starts.
func (h *History) Reset() {
	h.samples = nil
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	return len(h.samples)
}

// InterpolateAt returns the pose/velocity linearly interpolated between the
// two samples bracketing t. If t is before the first or after the last
// sample, the nearest endpoint is returned (clamped extrapolation).
func (h *History) InterpolateAt(t float64) (PoseVelSample, error) {
	if len(h.samples) == 0 {
		return PoseVelSample{}, ErrNoSamples
	}
	if len(h.samples) == 1 || t <= h.samples[0].TimestampSecs {
		return h.samples[0], nil
	}
	last := h.samples[len(h.samples)-1]
	if t >= last.TimestampSecs {
		return last, nil
	}
	for i := 1; i < len(h.samples); i++ {
		if h.samples[i].TimestampSecs >= t {
			a, b := h.samples[i-1], h.samples[i]
			span := b.TimestampSecs - a.TimestampSecs
			if span <= 0 {
				return a, nil
			}
			frac := (t - a.TimestampSecs) / span
			return PoseVelSample{
				Pose: Pose2D{
					X:   a.Pose.X + frac*(b.Pose.X-a.Pose.X),
					Y:   a.Pose.Y + frac*(b.Pose.Y-a.Pose.Y),
					Phi: WrapToPi(a.Pose.Phi + frac*WrapToPi(b.Pose.Phi-a.Pose.Phi)),
				},
				VelGlobal: Twist2D{
					Vx: a.VelGlobal.Vx + frac*(b.VelGlobal.Vx-a.VelGlobal.Vx),
					Vy: a.VelGlobal.Vy + frac*(b.VelGlobal.Vy-a.VelGlobal.Vy),
					W:  a.VelGlobal.W + frac*(b.VelGlobal.W-a.VelGlobal.W),
				},
				TimestampSecs: t,
			}, nil
		}
	}
	return last, nil
}
