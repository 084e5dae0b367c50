package reactivenav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fossabot/mrpt/config"
	"github.com/fossabot/mrpt/geom"
)

func TestBlendCommandPassesThroughWithoutPreviousCommand(t *testing.T) {
	cmd := geom.Twist2D{Vx: 1.0}
	got := blendCommand(geom.Twist2D{}, cmd, 0, 0.2)
	assert.Equal(t, cmd, got)
}

func TestBlendCommandInterpolatesTowardNewCommand(t *testing.T) {
	prev := geom.Twist2D{Vx: 0.0}
	cmd := geom.Twist2D{Vx: 1.0}
	got := blendCommand(prev, cmd, 0.1, 0.1) // beta = 0.5
	assert.InDelta(t, 0.5, got.Vx, 1e-9)
}

func TestBlendCommandDisabledWhenTauIsZero(t *testing.T) {
	prev := geom.Twist2D{Vx: 0.0}
	cmd := geom.Twist2D{Vx: 1.0}
	got := blendCommand(prev, cmd, 0.1, 0)
	assert.Equal(t, cmd, got)
}

func TestClipToLimitsScalesUniformlyAcrossAxes(t *testing.T) {
	cmd := geom.Twist2D{Vx: 2.0, Vy: 1.0, W: 0.0}
	limits := config.SpeedLimits{MaxVx: 1.0}
	clipped, scale := clipToLimits(cmd, limits)
	assert.InDelta(t, 0.5, scale, 1e-9)
	assert.InDelta(t, 1.0, clipped.Vx, 1e-9)
	assert.InDelta(t, 0.5, clipped.Vy, 1e-9)
}

func TestClipToLimitsNoOpWhenWithinBounds(t *testing.T) {
	cmd := geom.Twist2D{Vx: 0.5}
	limits := config.SpeedLimits{MaxVx: 1.0}
	clipped, scale := clipToLimits(cmd, limits)
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, cmd, clipped)
}

func TestClipToLimitsZeroLimitMeansUnbounded(t *testing.T) {
	cmd := geom.Twist2D{Vx: 100.0}
	clipped, scale := clipToLimits(cmd, config.SpeedLimits{})
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, cmd, clipped)
}

func TestBlendAndLimitFirstEmissionPassesThroughThenClips(t *testing.T) {
	nav, _ := newTestNavigator(t, testConfig(), defaultPTGFleet())
	nav.cfg.RobotAbsoluteSpeedLimits = config.SpeedLimits{MaxVx: 0.5}

	blended, scale := nav.blendAndLimit(geom.Twist2D{Vx: 1.0}, 0)
	assert.InDelta(t, 0.5, blended.Vx, 1e-9)
	assert.InDelta(t, 0.5, scale, 1e-9)
	assert.Equal(t, nav.lastBlendedCmd, blended)
}
