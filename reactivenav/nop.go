package reactivenav

import (
	"math"

	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/navlog"
	"github.com/fossabot/mrpt/selector"
	"github.com/fossabot/mrpt/tpspace"
)

// buildNOPCandidateLocked implements spec §4.3 P7: deciding whether "keep
// doing the last command" is itself a viable candidate this iteration, and
// if so, scoring it the same way a fresh candidate is scored. relPoseVelCmd
// is the delay model's planning-origin offset computed earlier in this same
// iteration (P5), reused here so the NOP candidate's target is expressed in
// the same frame as every other candidate's.
func (n *Navigator) buildNOPCandidateLocked(tIterStart float64, targetChanged bool, views []*tpspace.View, relPoseVelCmd geom.Pose2D) (*selector.Candidate, navlog.NOPContext) {
	ctx := navlog.NOPContext{MoveK: -1, CurK: -1}

	if targetChanged {
		ctx.Reason = "target changed this iteration"
		return nil, ctx
	}
	cmd := n.lastSentCmd
	if !cmd.Valid() {
		ctx.Reason = "no previous command to continue"
		return nil, ctx
	}
	if cmd.PTGIndex < 0 || cmd.PTGIndex >= len(n.ptgs) {
		ctx.Reason = "previous command's PTG index is out of range"
		return nil, ctx
	}
	ptg := n.ptgs[cmd.PTGIndex]
	if !ptg.SupportsVelCmdNOP() {
		ctx.Reason = "PTG does not support NOP continuation"
		return nil, ctx
	}
	elapsed := tIterStart - cmd.SendTimeSecs
	if elapsed >= ptg.MaxTimeInVelCmdNOP(cmd.AlphaIndex) {
		ctx.Reason = "NOP timeout exceeded"
		return nil, ctx
	}

	predictedAt := cmd.SendTimeSecs + n.delay.TimChangeSpeed.Value()
	predicted, err := n.poseHistory.InterpolateAt(predictedAt)
	if err != nil {
		ctx.Reason = "no pose history available to predict continuation pose"
		return nil, ctx
	}

	moveK := cmd.AlphaIndex
	view := views[cmd.PTGIndex]
	if view == nil || int(moveK) >= len(view.TPObstacles) {
		ctx.Reason = "no current TP-Space view for the continued PTG"
		return nil, ctx
	}

	// Time-based vs. inverse-map path-step prediction (spec §4.3 P7.3):
	// short, slow-moving intervals trust elapsed time directly; longer ones
	// re-derive the step from how far the robot actually travelled.
	actual := n.curPoseVel.Pose
	distTravelled := geom.Dist2D(actual, cmd.PoseVelAtSend.Pose)
	var step int
	if limit := n.cfg.MaxDistForTimebasedPathPrediction; limit <= 0 || distTravelled <= limit {
		step = int(math.Round(elapsed / ptg.GetPathStepDuration()))
	} else {
		step, _ = ptg.GetPathStepForDist(moveK, distTravelled)
	}

	// cur_k / cur_norm_d: where the inverse workspace->TP map places the
	// robot's actual displacement since the command was sent, relative to
	// the continued direction. Diverging from move_k signals the robot
	// drifted off the trajectory it was commanded to follow.
	actualLocal := actual.InverseCompose(cmd.PoseVelAtSend.Pose)
	curK, curNormD, curInDomain := ptg.InverseMapWS2TP(actualLocal.X, actualLocal.Y)
	ctx.CurK = int(curK)

	bijective := ptg.IsBijectiveAt(moveK, 0) && ptg.IsBijectiveAt(moveK, step)
	colfreeK := moveK
	if bijective && curInDomain {
		colfreeK = curK
	}
	colfree := view.TPObstacles[moveK]
	if int(colfreeK) < len(view.TPObstacles) {
		if alt := view.TPObstacles[colfreeK]; alt < colfree {
			colfree = alt
		}
	}
	if curInDomain && colfree < 1.0 {
		// A free distance below 1.0 is a real sensed obstacle rather than
		// refDistance truncation, so the distance already travelled toward
		// it (cur_norm_d) is subtracted from the remaining free space.
		colfree = math.Max(0, colfree-curNormD)
	}
	if colfree < n.cfg.MinNormalizedFreeSpaceForPTGContinuation {
		ctx.Reason = "insufficient remaining free space ahead"
		return nil, ctx
	}

	ptgPredictedPose := ptg.GetPathPose(moveK, step).Compose(cmd.PoseVelAtSend.Pose)
	mismatch := geom.Dist2D(ptgPredictedPose, actual)
	if maxMismatch := n.cfg.MaxDistancePredictedActualPath; maxMismatch > 0 && mismatch > maxMismatch {
		ctx.Reason = "predicted and actual path diverged too far"
		return nil, ctx
	}

	localTarget := n.navParams.Target.InverseCompose(predicted.Pose)
	relTarget := geom.Pose2D{
		X:   localTarget.X - relPoseVelCmd.X,
		Y:   localTarget.Y - relPoseVelCmd.Y,
		Phi: geom.WrapToPi(localTarget.Phi - relPoseVelCmd.Phi),
	}
	_, _, targetInDomain := ptg.InverseMapWS2TP(relTarget.X, relTarget.Y)
	if !targetInDomain {
		ctx.Reason = "target left this PTG's domain"
		return nil, ctx
	}

	props := computeScoreProps(scoreInputs{
		ptgIndex:          cmd.PTGIndex,
		ptg:               ptg,
		view:              view,
		alphaIndex:        moveK,
		speed:             cmd.SpeedScale,
		isNOP:             true,
		targetLocal:       relTarget,
		lastCmd:           cmd,
		nowSecs:           tIterStart,
		evaluateClearance: n.cfg.EvaluateClearance,
	})

	ctx.Allowed = true
	ctx.Reason = "continuing previous command"
	ctx.MoveK = int(moveK)
	ctx.ColfreeDist = colfree

	return &selector.Candidate{
		PTGIndex: cmd.PTGIndex,
		Alpha:    ptg.Index2Alpha(moveK),
		Speed:    cmd.SpeedScale,
		Props:    props,
		IsNOP:    true,
	}, ctx
}
