package reactivenav

import (
	"math"

	"github.com/fossabot/mrpt/config"
	"github.com/fossabot/mrpt/geom"
)

// blendCommand implements spec §4.7's low-pass filter between the previously
// issued command and a freshly scored one, coefficient beta = dt/(dt+tau).
// tau<=0 disables filtering; dt<=0 means there is no previous command to
// blend against (the navigation's first emission), so the new command passes
// through unchanged.
func blendCommand(prev, cmd geom.Twist2D, dt, tau float64) geom.Twist2D {
	if tau <= 0 || dt <= 0 {
		return cmd
	}
	beta := dt / (dt + tau)
	return geom.Twist2D{
		Vx: beta*cmd.Vx + (1-beta)*prev.Vx,
		Vy: beta*cmd.Vy + (1-beta)*prev.Vy,
		W:  beta*cmd.W + (1-beta)*prev.W,
	}
}

// clipToLimits scales cmd down uniformly, if needed, so no axis exceeds its
// configured absolute limit. A limit of 0 means "unbounded" for that axis.
// The returned scale is the factor actually applied, so callers can correct
// downstream quantities (e.g. a logged ETA) derived from the pre-clip speed.
func clipToLimits(cmd geom.Twist2D, limits config.SpeedLimits) (geom.Twist2D, float64) {
	scale := 1.0
	if limits.MaxVx > 0 && math.Abs(cmd.Vx) > limits.MaxVx {
		scale = math.Min(scale, limits.MaxVx/math.Abs(cmd.Vx))
	}
	if limits.MaxVy > 0 && math.Abs(cmd.Vy) > limits.MaxVy {
		scale = math.Min(scale, limits.MaxVy/math.Abs(cmd.Vy))
	}
	if limits.MaxW > 0 && math.Abs(cmd.W) > limits.MaxW {
		scale = math.Min(scale, limits.MaxW/math.Abs(cmd.W))
	}
	return geom.Twist2D{Vx: cmd.Vx * scale, Vy: cmd.Vy * scale, W: cmd.W * scale}, scale
}

// blendAndLimit applies spec §4.7's scale -> blend -> limit pipeline's last
// two stages to an already speed-scaled command, updating the navigator's
// continuity state. It returns the command actually to be sent and the
// combined scale factor relative to scaledCmd (1.0 if neither stage altered
// it), which the caller folds back into the chosen candidate's logged ETA.
func (n *Navigator) blendAndLimit(scaledCmd geom.Twist2D, dt float64) (geom.Twist2D, float64) {
	blended := blendCommand(n.lastBlendedCmd, scaledCmd, dt, n.cfg.SpeedfilterTau)
	limited, clipScale := clipToLimits(blended, n.cfg.RobotAbsoluteSpeedLimits)
	n.lastBlendedCmd = limited

	scale := clipScale
	if mag := math.Hypot(scaledCmd.Vx, scaledCmd.Vy) + math.Abs(scaledCmd.W); mag > 1e-9 {
		blendedMag := math.Hypot(limited.Vx, limited.Vy) + math.Abs(limited.W)
		scale = blendedMag / mag
	}
	return limited, scale
}
