package tpspace

import (
	"math"

	"github.com/fossabot/mrpt/geom"
)

// NewStraightPTG returns a PTG whose K trajectories are straight lines radiating
// from the origin at each discretized heading, the holonomic-like family
// typically used for omnidirectional bases or as the direct "can I reach this
// point in a straight shot" test used by the waypoint skip-ahead reachability
// check (spec §4.2 step 3).
func NewStraightPTG(numPaths uint, refDistance float64) PTG {
	pathFn := func(alpha, s float64) geom.Pose2D {
		sin, cos := math.Sincos(alpha)
		return geom.Pose2D{X: s * cos, Y: s * sin, Phi: alpha}
	}
	cmdFn := func(alpha float64) geom.Twist2D {
		sin, cos := math.Sincos(alpha)
		return geom.Twist2D{Vx: cos, Vy: sin, W: 0}
	}
	return newGridPTG("straight", numPaths, refDistance, true, 1.0, pathFn, cmdFn)
}

// NewCircularArcPTG returns a differential-drive-style PTG whose K
// trajectories are constant-curvature arcs: direction k turns its full
// heading change of alpha(k) uniformly over RefDistance meters of travel
// (alpha=0 is a straight line). This is the PTG family used for
// nonholonomic bases, grounded on MRPT's "C" (circular arc) PTG family
// referenced in the navigation core's glossary.
func NewCircularArcPTG(numPaths uint, refDistance float64) PTG {
	pathFn := func(alpha, s float64) geom.Pose2D {
		if math.Abs(alpha) < 1e-6 {
			return geom.Pose2D{X: s, Y: 0, Phi: 0}
		}
		theta := alpha * s / refDistance
		r := refDistance / alpha
		sin, cos := math.Sincos(theta)
		return geom.Pose2D{X: r * sin, Y: r * (1 - cos), Phi: geom.WrapToPi(theta)}
	}
	cmdFn := func(alpha float64) geom.Twist2D {
		return geom.Twist2D{Vx: 1.0, Vy: 0, W: alpha / refDistance}
	}
	return newGridPTG("circular_arc", numPaths, refDistance, true, 0.9, pathFn, cmdFn)
}
