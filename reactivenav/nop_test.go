package reactivenav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/tpspace"
)

func navReadyForNOP(t *testing.T) *Navigator {
	t.Helper()
	nav, _ := newTestNavigator(t, testConfig(), defaultPTGFleet())
	nav.navParams = &NavRequest{Target: geom.Pose2D{X: 2.0}, AllowedDistance: 0.15}

	ptg := nav.ptgs[0]
	require.NoError(t, ptg.Initialize())
	view := tpspace.NewView(ptg)
	for i := range view.TPObstacles {
		view.TPObstacles[i] = 1.0
	}
	nav.lastViews = []*tpspace.View{view}

	sample := geom.PoseVelSample{Pose: geom.Pose2D{}, TimestampSecs: 0}
	nav.curPoseVel = sample
	nav.poseHistory.Append(sample)

	alphaIdx := ptg.Alpha2Index(0)
	nav.lastSentCmd = LastSentCmd{
		valid:         true,
		PTGIndex:      0,
		AlphaIndex:    alphaIdx,
		PoseVelAtSend: sample,
		SendTimeSecs:  0,
		SpeedScale:    1.0,
	}
	return nav
}

// NOP continuation saving a fresh plan (spec §8 scenario 4): under favorable
// conditions re-affirming the last command must be offered as a viable
// candidate.
func TestBuildNOPCandidateAllowsContinuationUnderFavorableConditions(t *testing.T) {
	nav := navReadyForNOP(t)
	cand, ctx := nav.buildNOPCandidateLocked(0.1, false, nav.lastViews, geom.Pose2D{})
	require.NotNil(t, cand)
	assert.True(t, ctx.Allowed)
	assert.True(t, cand.IsNOP)
}

func TestBuildNOPCandidateRejectsWhenTargetChanged(t *testing.T) {
	nav := navReadyForNOP(t)
	cand, ctx := nav.buildNOPCandidateLocked(0.1, true, nav.lastViews, geom.Pose2D{})
	assert.Nil(t, cand)
	assert.False(t, ctx.Allowed)
	assert.Contains(t, ctx.Reason, "target changed")
}

func TestBuildNOPCandidateRejectsWithNoPreviousCommand(t *testing.T) {
	nav := navReadyForNOP(t)
	nav.lastSentCmd = LastSentCmd{}
	cand, ctx := nav.buildNOPCandidateLocked(0.1, false, nav.lastViews, geom.Pose2D{})
	assert.Nil(t, cand)
	assert.Contains(t, ctx.Reason, "no previous command")
}

func TestBuildNOPCandidateRejectsAfterTimeout(t *testing.T) {
	nav := navReadyForNOP(t)
	cand, ctx := nav.buildNOPCandidateLocked(5.0, false, nav.lastViews, geom.Pose2D{})
	assert.Nil(t, cand)
	assert.Contains(t, ctx.Reason, "timeout")
}

func TestBuildNOPCandidateRejectsWhenFreeSpaceTooLow(t *testing.T) {
	nav := navReadyForNOP(t)
	for i := range nav.lastViews[0].TPObstacles {
		nav.lastViews[0].TPObstacles[i] = 0.01
	}
	cand, ctx := nav.buildNOPCandidateLocked(0.1, false, nav.lastViews, geom.Pose2D{})
	assert.Nil(t, cand)
	assert.Contains(t, ctx.Reason, "free space")
}

// A robot that actually moved along the continued direction as commanded
// must still be offered the NOP candidate: the predicted-vs-actual mismatch
// check compares against the PTG's own predicted path pose, not against a
// frozen send-time pose.
func TestBuildNOPCandidateAllowsContinuationWhenRobotMovedAsCommanded(t *testing.T) {
	nav := navReadyForNOP(t)
	ptg := nav.ptgs[0]
	step := int(math.Round(0.1 / ptg.GetPathStepDuration()))
	moved := ptg.GetPathPose(nav.lastSentCmd.AlphaIndex, step)
	nav.curPoseVel = geom.PoseVelSample{Pose: moved, TimestampSecs: 0.1}
	nav.poseHistory.Append(nav.curPoseVel)

	cand, ctx := nav.buildNOPCandidateLocked(0.1, false, nav.lastViews, geom.Pose2D{})
	require.NotNil(t, cand)
	assert.True(t, ctx.Allowed)
}

// A robot that drifted far from the PTG's predicted path for the continued
// direction must have its NOP candidate rejected (spec §4.3 P7.4).
func TestBuildNOPCandidateRejectsWhenActualPathDivergesFromPrediction(t *testing.T) {
	nav := navReadyForNOP(t)
	nav.curPoseVel = geom.PoseVelSample{Pose: geom.Pose2D{X: 0.0, Y: 1.0}, TimestampSecs: 0.1}
	nav.poseHistory.Append(nav.curPoseVel)

	cand, ctx := nav.buildNOPCandidateLocked(0.1, false, nav.lastViews, geom.Pose2D{})
	assert.Nil(t, cand)
	assert.Contains(t, ctx.Reason, "diverged")
}
