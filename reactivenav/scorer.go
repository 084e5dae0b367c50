package reactivenav

import (
	"math"

	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/tpspace"
)

// scoreInputs bundles everything computeScoreProps (spec §4.5) needs about
// one candidate movement.
type scoreInputs struct {
	ptgIndex    int
	ptg         tpspace.PTG
	view        *tpspace.View
	alphaIndex  uint
	speed       float64
	isNOP       bool
	targetLocal geom.Pose2D // target expressed relative to this candidate's planning origin
	lastCmd     LastSentCmd
	nowSecs     float64
	evaluateClearance bool
}

// computeScoreProps fills in the named scoring properties a CandidateMovement
// carries (spec §4.5 table). moveK is always in.alphaIndex; the predicted
// end pose used for dist_eucl_final is recorded in the robpose_x,
// robpose_y and robpose_phi properties.
func computeScoreProps(in scoreInputs) map[string]float64 {
	props := map[string]float64{}
	moveK := in.alphaIndex
	tpObs := in.view.TPObstacles
	var colfree float64
	if int(moveK) < len(tpObs) {
		colfree = tpObs[moveK]
	}

	targetAlpha := math.Atan2(in.targetLocal.Y, in.targetLocal.X)
	td := in.view.TargetD
	headingAtTarget := moveK == in.view.TargetK && td > 0
	if headingAtTarget && colfree > td+0.05 {
		ratio := colfree / (td + 0.05)
		if ratio > 1 {
			ratio = 1
		}
		colfree = ratio
	}
	props["colision_free_distance"] = colfree

	// dist_eucl_final: clamp d = min(tp_obs, 0.99*target_d) before the path
	// pose lookup (spec §9 Open Question: keep this clamp).
	dClamped := math.Min(colfree, 0.99*td)
	step, _ := in.ptg.GetPathStepForDist(moveK, dClamped*in.ptg.RefDistance())
	endPose := in.ptg.GetPathPose(moveK, step)
	props["dist_eucl_final"] = geom.Dist2D(endPose, geom.Pose2D{X: in.targetLocal.X, Y: in.targetLocal.Y})
	props["robpose_x"] = endPose.X
	props["robpose_y"] = endPose.Y
	props["robpose_phi"] = endPose.Phi

	if in.ptg.SupportsVelCmdNOP() {
		if in.isNOP {
			props["hysteresis"] = 1
		} else {
			props["hysteresis"] = 0
		}
	} else if in.lastCmd.Valid() && in.lastCmd.PTGIndex == in.ptgIndex {
		// Same PTG index means the same VelCmd kind (identity-checked), so the
		// two commands' components are directly comparable: take the min
		// per-component hysteresis rather than an alpha-angle proxy.
		desired := in.ptg.DirectionToMotionCommand(moveK).Twist
		last := in.ptg.DirectionToMotionCommand(in.lastCmd.AlphaIndex).Twist
		props["hysteresis"] = math.Min(
			math.Exp(-math.Abs(desired.Vx-last.Vx)/0.20),
			math.Min(
				math.Exp(-math.Abs(desired.Vy-last.Vy)/0.20),
				math.Exp(-math.Abs(desired.W-last.W)/0.20),
			),
		)
	} else {
		props["hysteresis"] = 1
	}

	if in.evaluateClearance {
		props["clearance"] = in.view.Clearance.Get(moveK, 1.01*td)
	} else {
		props["clearance"] = 1.0
	}

	eta := in.ptg.GetPathStepDuration() * float64(step) * in.speed
	if in.isNOP {
		eta -= in.nowSecs - in.lastCmd.SendTimeSecs
	}
	props["eta"] = eta

	props["ptg_priority"] = in.ptg.GetScorePriority() * in.ptg.EvalPathRelativePriority(in.view.TargetK, in.view.TargetD)

	props["ptg_idx"] = float64(in.ptgIndex)
	props["ref_dist"] = in.ptg.RefDistance()
	props["target_dir"] = targetAlpha
	props["target_k"] = float64(in.view.TargetK)
	props["target_d_norm"] = td
	props["move_k"] = float64(moveK)
	props["is_ptg_cont"] = boolToFloat(in.isNOP)
	props["num_paths"] = float64(in.ptg.AlphaValuesCount())
	props["ws_target_x"] = in.targetLocal.X
	props["ws_target_y"] = in.targetLocal.Y

	return props
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
