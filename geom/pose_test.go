package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapToPi(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, -math.Pi},
		{3 * math.Pi, -math.Pi},
		{-3 * math.Pi, -math.Pi},
		{0.5, 0.5},
	}
	for _, c := range cases {
		got := WrapToPi(c.in)
		assert.InDelta(t, c.want, got, 1e-9)
		assert.True(t, got >= -math.Pi && got < math.Pi+1e-9)
	}
}

func TestComposeInverseComposeRoundTrip(t *testing.T) {
	base := Pose2D{X: 1, Y: -2, Phi: math.Pi / 4}
	local := Pose2D{X: 0.5, Y: 0.25, Phi: 0.1}

	global := local.Compose(base)
	back := global.InverseCompose(base)

	assert.InDelta(t, local.X, back.X, 1e-9)
	assert.InDelta(t, local.Y, back.Y, 1e-9)
	assert.InDelta(t, local.Phi, back.Phi, 1e-9)
}

func TestDist2D(t *testing.T) {
	d := Dist2D(Pose2D{X: 0, Y: 0}, Pose2D{X: 3, Y: 4})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestTwistIntegrateAndRotate(t *testing.T) {
	tw := Twist2D{Vx: 1, Vy: 0, W: math.Pi / 2}
	p := tw.Integrate(1.0)
	assert.InDelta(t, 1.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, p.Phi, 1e-9)

	rotated := tw.Rotated(math.Pi / 2)
	assert.InDelta(t, 0.0, rotated.Vx, 1e-9)
	assert.InDelta(t, -1.0, rotated.Vy, 1e-9)
}

func TestDistPointToSegment(t *testing.T) {
	a := Pose2D{X: 0, Y: 0}
	b := Pose2D{X: 10, Y: 0}

	d, closest := DistPointToSegment(Pose2D{X: 5, Y: 3}, a, b)
	require.InDelta(t, 3.0, d, 1e-9)
	assert.InDelta(t, 5.0, closest.X, 1e-9)

	// Beyond the segment's end clamps to b.
	d2, closest2 := DistPointToSegment(Pose2D{X: 20, Y: 0}, a, b)
	assert.InDelta(t, 10.0, d2, 1e-9)
	assert.InDelta(t, b.X, closest2.X, 1e-9)

	// Degenerate (zero-length) segment falls back to point distance.
	d3, _ := DistPointToSegment(Pose2D{X: 1, Y: 1}, a, a)
	assert.InDelta(t, math.Sqrt2, d3, 1e-9)
}
