package holonomic

import "math"

// vff is a virtual force field holonomic method: every direction whose
// obstacle distance is below MaxObstacleDist contributes a repulsive force
// that grows linearly as its clearance shrinks, the target contributes a single
// attractive force, and the resultant vector's angle and magnitude become
// the desired direction and speed.
type vff struct {
	repulsiveGain, attractiveGain float64
}

// NewVFF returns a virtual-force-field Method with the given repulsive and
// attractive gains.
func NewVFF(repulsiveGain, attractiveGain float64) Method {
	if repulsiveGain <= 0 {
		repulsiveGain = 1.0
	}
	if attractiveGain <= 0 {
		attractiveGain = 1.0
	}
	return &vff{repulsiveGain: repulsiveGain, attractiveGain: attractiveGain}
}

func (v *vff) Name() string { return "vff" }

func (v *vff) Compute(in Input) Output {
	k := len(in.TPObstacles)
	if k == 0 {
		return Output{Log: map[string]interface{}{"reason": "no directions"}}
	}
	var fx, fy float64
	maxObs := in.MaxObstacleDist
	if maxObs <= 0 {
		maxObs = 1.0
	}
	for i, d := range in.TPObstacles {
		if d >= maxObs {
			continue
		}
		alpha := alphaForIndex(i, k)
		mag := v.repulsiveGain * (maxObs - d) / maxObs
		// force points away from the obstacle direction
		fx -= mag * math.Cos(alpha)
		fy -= mag * math.Sin(alpha)
	}
	targetAlpha := math.Atan2(in.TargetY, in.TargetX)
	targetDist := math.Hypot(in.TargetX, in.TargetY)
	fx += v.attractiveGain * math.Cos(targetAlpha)
	fy += v.attractiveGain * math.Sin(targetAlpha)

	resultAlpha := math.Atan2(fy, fx)
	mag := math.Hypot(fx, fy)
	speed := clamp01(mag / (v.attractiveGain + v.repulsiveGain))
	if in.EnableApproachTargetSlowdown && targetDist < 1.0 {
		speed = math.Min(speed, math.Max(0.1, targetDist))
	}
	return Output{
		DesiredAlpha: resultAlpha,
		DesiredSpeed: speed,
		Log: map[string]interface{}{
			"fx": fx, "fy": fy,
		},
	}
}
