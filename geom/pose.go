// Package geom provides the 2-D pose, velocity, and interpolation primitives
// shared by the navigator, the PTG trajectory transform, and the holonomic
// planner. It intentionally stays independent of go.viam.com/rdk/spatialmath's
// 3-D quaternion machinery: everything here lives in the robot's flat working
// plane.
package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Pose2D is a position and heading in a fixed global frame.
type Pose2D struct {
	X, Y, Phi float64
}

// Vector returns the (x, y) components as an r3.Vector with z=0, for reuse of
// github.com/golang/geo/r3's algebra.
func (p Pose2D) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: 0}
}

// vectorFromTo returns the r3.Vector from a to b's positions, z=0.
func vectorFromTo(a, b Pose2D) r3.Vector {
	return b.Vector().Sub(a.Vector())
}

// WrapToPi wraps an angle into [-pi, pi).
func WrapToPi(theta float64) float64 {
	return theta - 2*math.Pi*math.Floor((theta+math.Pi)/(2*math.Pi))
}

// Compose returns this pose transformed into the frame of base, i.e. the
// global pose of a point expressed as `this` relative to `base`.
func (p Pose2D) Compose(base Pose2D) Pose2D {
	sin, cos := math.Sincos(base.Phi)
	return Pose2D{
		X:   base.X + p.X*cos - p.Y*sin,
		Y:   base.Y + p.X*sin + p.Y*cos,
		Phi: WrapToPi(base.Phi + p.Phi),
	}
}

// InverseCompose expresses the global pose p in the local frame of base:
// the inverse of Compose.
func (p Pose2D) InverseCompose(base Pose2D) Pose2D {
	dx, dy := p.X-base.X, p.Y-base.Y
	sin, cos := math.Sincos(-base.Phi)
	return Pose2D{
		X:   dx*cos - dy*sin,
		Y:   dx*sin + dy*cos,
		Phi: WrapToPi(p.Phi - base.Phi),
	}
}

// Dist2D returns the Euclidean distance between two poses' positions.
func Dist2D(a, b Pose2D) float64 {
	return vectorFromTo(a, b).Norm()
}

// Twist2D is a planar velocity: linear components (Vx, Vy) and angular rate W.
type Twist2D struct {
	Vx, Vy, W float64
}

// Rotated returns the twist rotated by -phi, i.e. converts a global twist into
// the robot-local frame whose heading is phi.
func (t Twist2D) Rotated(phi float64) Twist2D {
	sin, cos := math.Sincos(-phi)
	return Twist2D{
		Vx: t.Vx*cos - t.Vy*sin,
		Vy: t.Vx*sin + t.Vy*cos,
		W:  t.W,
	}
}

// Integrate applies the twist for dt seconds starting at the origin pose,
// using a simple linear integration of the local twist. This is used both by
// the delay model's pose extrapolation and by the simulated robot's Tick.
func (t Twist2D) Integrate(dt float64) Pose2D {
	return Pose2D{X: t.Vx * dt, Y: t.Vy * dt, Phi: WrapToPi(t.W * dt)}
}

// PoseVelSample bundles a pose with global and local velocity and the
// timestamp (robot navigation-time seconds) at which it was taken.
type PoseVelSample struct {
	Pose          Pose2D
	VelGlobal     Twist2D
	VelLocal      Twist2D
	TimestampSecs float64
}

// DistPointToSegment returns the distance from point p to the segment [a, b],
// and the closest point on the segment.
func DistPointToSegment(p, a, b Pose2D) (float64, Pose2D) {
	seg := vectorFromTo(a, b)
	lenSq := seg.Dot(seg)
	if lenSq < 1e-12 {
		return Dist2D(p, a), a
	}
	t := vectorFromTo(a, p).Dot(seg) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closestVec := a.Vector().Add(seg.Mul(t))
	closest := Pose2D{X: closestVec.X, Y: closestVec.Y}
	return Dist2D(p, closest), closest
}
