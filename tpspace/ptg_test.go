package tpspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.viam.com/test"

	"github.com/fossabot/mrpt/geom"
)

func TestAlphaIndexRoundTrip(t *testing.T) {
	ptg := NewStraightPTG(16, 2.0)
	for k := uint(0); k < ptg.AlphaValuesCount(); k++ {
		alpha := ptg.Index2Alpha(k)
		assert.Equal(t, k, ptg.Alpha2Index(alpha))
	}
}

func TestStraightPTGInverseMapRoundTrip(t *testing.T) {
	ptg := NewStraightPTG(32, 2.0)
	require.NoError(t, ptg.Initialize())

	k := uint(10)
	step, inRange := ptg.GetPathStepForDist(k, 1.0)
	require.True(t, inRange)
	pose := ptg.GetPathPose(k, step)

	gotK, gotD, inDomain := ptg.InverseMapWS2TP(pose.X, pose.Y)
	require.True(t, inDomain)
	assert.Equal(t, k, gotK)
	assert.InDelta(t, 0.5, gotD, 0.05)
}

func TestStraightPTGOutOfDomain(t *testing.T) {
	ptg := NewStraightPTG(16, 1.0)
	require.NoError(t, ptg.Initialize())
	_, _, inDomain := ptg.InverseMapWS2TP(100, 100)
	assert.False(t, inDomain)
}

func TestCircularArcPTGIsBijectiveForModerateArcs(t *testing.T) {
	ptg := NewCircularArcPTG(16, 2.0)
	require.NoError(t, ptg.Initialize())

	k := ptg.Alpha2Index(0.3)
	assert.True(t, ptg.IsBijectiveAt(k, 50))
}

func TestInitializeIsIdempotent(t *testing.T) {
	ptg := NewStraightPTG(8, 1.0)
	require.NoError(t, ptg.Initialize())
	require.NoError(t, ptg.Initialize())
}

func TestComputeTPObstaclesClampsFreeDistance(t *testing.T) {
	ptg := NewStraightPTG(8, 2.0)
	require.NoError(t, ptg.Initialize())
	view := NewView(ptg)

	k := uint(4)
	alpha := ptg.Index2Alpha(k)
	blocking := geom.Pose2D{X: 0.5 * math.Cos(alpha), Y: 0.5 * math.Sin(alpha)}

	ComputeTPObstacles(ptg, []geom.Pose2D{blocking}, view)
	assert.Less(t, view.TPObstacles[k], 1.0)
}

// TestCircularArcPTGRefDistanceAndNOP is written in rdk's own test.That
// style rather than testify's, matching how the original component tests
// this pack was drawn from assert simple property lookups.
func TestCircularArcPTGRefDistanceAndNOP(t *testing.T) {
	ptg := NewCircularArcPTG(16, 3.5)
	test.That(t, ptg.RefDistance(), test.ShouldEqual, 3.5)
	test.That(t, ptg.Name(), test.ShouldNotBeEmpty)

	k := ptg.Alpha2Index(0.0)
	test.That(t, ptg.SupportsVelCmdNOP(), test.ShouldBeTrue)
	test.That(t, ptg.MaxTimeInVelCmdNOP(k), test.ShouldBeGreaterThan, 0)
}
