package reactivenav

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/holonomic"
	"github.com/fossabot/mrpt/navlog"
	"github.com/fossabot/mrpt/selector"
	"github.com/fossabot/mrpt/tpspace"
)

// initializePTGFleetLocked calls Initialize on every PTG in the fleet,
// accumulating independent failures with multierr rather than stopping at
// the first one — one pathological PTG family should not take down the rest
// of the fleet. It returns which indices failed and the combined error, if
// any.
func (n *Navigator) initializePTGFleetLocked() (failed map[int]bool, combined error) {
	for i, ptg := range n.ptgs {
		if err := ptg.Initialize(); err != nil {
			if failed == nil {
				failed = map[int]bool{}
			}
			failed[i] = true
			combined = multierr.Append(combined, errors.Wrapf(err, "PTG %q (index %d)", ptg.Name(), i))
		}
	}
	return failed, combined
}

// reactiveIterationLocked runs one full pass of the per-iteration reactive
// pipeline (spec §4.3, stages P1-P10). It is only reached from Step() while
// Navigating, after the target-reached test, the bad-approach alarm, and the
// waypoint sequencer have all run without ending the cycle early.
func (n *Navigator) reactiveIterationLocked() {
	tIterStart := n.robot.GetNavigationTime()
	n.iterationIndex++
	rec := navlog.NewRecord(n.iterationIndex, tIterStart)
	if n.navParams != nil {
		rec.RequestID = n.navParams.ID.String()
	}
	rec.CurrentPose = n.curPoseVel.Pose
	rec.CurrentVelGlobal = n.curPoseVel.VelGlobal
	rec.CurrentVelLocal = n.curPoseVel.VelLocal
	rec.WorkspaceTarget = n.navParams.Target

	// P1: target-change detection. A changed target disqualifies the NOP
	// continuation candidate this iteration (spec §4.3 P7.1).
	targetChanged := !n.prevTargetValid ||
		geom.Dist2D(n.navParams.Target, n.prevTargetGlobal) > 1e-9 ||
		math.Abs(geom.WrapToPi(n.navParams.Target.Phi-n.prevTargetGlobal.Phi)) > 1e-9
	n.prevTargetGlobal = n.navParams.Target
	n.prevTargetValid = true
	rec.Values["target_changed"] = boolToFloat(targetChanged)

	// P2: idempotent PTG initialization. A single PTG family failing to
	// initialize (e.g. a pathological refDistance) does not need to abort
	// the whole fleet, so failures are accumulated rather than treated as
	// fatal on the first one; only running out of usable PTGs is fatal.
	failed, initErr := n.initializePTGFleetLocked()
	if initErr != nil {
		n.logger.Warnw("some PTGs failed to initialize", "error", initErr)
		if len(failed) == len(n.ptgs) {
			n.doEmergencyStop("no PTG in the fleet initialized successfully: " + initErr.Error())
			return
		}
	}

	// P3: kinematic update.
	for i, ptg := range n.ptgs {
		if failed[i] {
			continue
		}
		ptg.UpdateCurrentRobotVel(n.curPoseVel.VelLocal)
	}

	// P4: obstacle sensing.
	obstacles, obsTimestamp, err := n.robot.SenseObstacles()
	if err != nil {
		n.doEmergencyStop("obstacle sensing failed: " + err.Error())
		return
	}
	if n.cfg.EnableObstacleFiltering {
		obstacles = tpspace.FilterObstaclesByDistance(obstacles, obstacleFilterMinSeparation)
	}

	// P5: delay compensation.
	relPoseSense, relPoseVelCmd, tpOrigin := n.computeDelayCompensationLocked(tIterStart, obsTimestamp)
	_ = relPoseSense

	localTarget := n.navParams.Target.InverseCompose(n.curPoseVel.Pose)
	relTarget := geom.Pose2D{
		X:   localTarget.X - relPoseVelCmd.X,
		Y:   localTarget.Y - relPoseVelCmd.Y,
		Phi: geom.WrapToPi(localTarget.Phi - relPoseVelCmd.Phi),
	}
	rec.RelativeTarget = relTarget

	shiftedObstacles := make([]geom.Pose2D, len(obstacles))
	for i, o := range obstacles {
		shiftedObstacles[i] = geom.Pose2D{X: o.X - tpOrigin.X, Y: o.Y - tpOrigin.Y, Phi: o.Phi}
	}

	// P6: per-PTG TP-Space transform, holonomic call, security ramp, scoring.
	views := make([]*tpspace.View, len(n.ptgs))
	infos := make([]navlog.PTGInfo, len(n.ptgs))
	candidates := make([]selector.Candidate, 0, len(n.ptgs)+1)

	for i, ptg := range n.ptgs {
		if failed[i] {
			views[i] = &tpspace.View{PTG: ptg}
			infos[i] = navlog.PTGInfo{PTGIndex: i}
			continue
		}
		view := tpspace.NewView(ptg)
		k, d, valid := ptg.InverseMapWS2TP(relTarget.X, relTarget.Y)
		view.TargetK, view.TargetD, view.ValidTP = k, d, valid
		views[i] = view

		info := navlog.PTGInfo{PTGIndex: i, ValidTP: valid, TPTargetK: int(k), TPTargetD: d}
		if !valid {
			infos[i] = info
			continue
		}

		tpspace.ComputeTPObstacles(ptg, shiftedObstacles, view)

		var tx, ty float64
		if ref := ptg.RefDistance(); ref > 0 {
			tx, ty = relTarget.X/ref, relTarget.Y/ref
		}
		holoOut := n.holonomic.Compute(holonomic.Input{
			TPObstacles:                  view.TPObstacles,
			TargetX:                      tx,
			TargetY:                      ty,
			Clearance:                    view.Clearance,
			MaxObstacleDist:              1.0,
			MaxRobotSpeed:                1.0,
			EnableApproachTargetSlowdown: !n.navParams.TargetIsIntermediary,
		})
		alphaIdx := ptg.Alpha2Index(holoOut.DesiredAlpha)
		speed := n.applySecureDistanceRampLocked(view, alphaIdx, holoOut.DesiredSpeed)

		props := computeScoreProps(scoreInputs{
			ptgIndex:          i,
			ptg:               ptg,
			view:              view,
			alphaIndex:        alphaIdx,
			speed:             speed,
			targetLocal:       relTarget,
			lastCmd:           n.lastSentCmd,
			nowSecs:           tIterStart,
			evaluateClearance: n.cfg.EvaluateClearance,
		})

		candidates = append(candidates, selector.Candidate{
			PTGIndex: i,
			Alpha:    ptg.Index2Alpha(alphaIdx),
			Speed:    speed,
			Props:    props,
		})

		info.TPObstacles = append([]float64{}, view.TPObstacles...)
		info.HolonomicLog = holoOut.Log
		info.DesiredAlpha = holoOut.DesiredAlpha
		info.DesiredSpeed = speed
		info.Eval = props
		infos[i] = info
	}
	n.lastViews = views

	// P7: NOP continuation candidate.
	nopCandidate, nopCtx := n.buildNOPCandidateLocked(tIterStart, targetChanged, views, relPoseVelCmd)
	rec.NOP = nopCtx
	nopSlot := -1
	if nopCandidate != nil {
		nopSlot = len(candidates)
		candidates = append(candidates, *nopCandidate)
	}

	// P8: multi-objective selection.
	best, evals := n.optimizer.Select(candidates)
	for i, ev := range evals {
		if i >= len(candidates) || candidates[i].IsNOP {
			continue
		}
		idx := candidates[i].PTGIndex
		if idx >= 0 && idx < len(infos) {
			for key, v := range ev {
				infos[idx].Eval[key] = v
			}
		}
	}
	rec.PerPTG = infos

	// P9: emission.
	n.emitLocked(best, nopSlot, candidates, views, tIterStart, rec)

	// P10: write the completed record.
	rec.Timestamps["iter_start"] = tIterStart
	rec.Timestamps["iter_end"] = n.robot.GetNavigationTime()
	if n.logWriter != nil {
		if err := n.logWriter.Write(rec); err != nil {
			n.logger.Warnw("failed writing navigation log record", "error", err)
		}
	}
}

// computeDelayCompensationLocked implements spec §4.3 P5. When
// use_delays_model is disabled both relative poses are the identity, so the
// TP-Space planning origin coincides with the robot's current pose (spec §3
// invariant).
func (n *Navigator) computeDelayCompensationLocked(tIterStart, obsTimestamp float64) (relPoseSense, relPoseVelCmd, tpOrigin geom.Pose2D) {
	if !n.cfg.UseDelaysModel {
		return geom.Pose2D{}, geom.Pose2D{}, geom.Pose2D{}
	}
	timoffObstacles := n.delay.TimoffObstacles.Update(tIterStart - obsTimestamp)
	timoffPoseAge := n.delay.TimoffCurPoseVelAge.Update(tIterStart - n.curPoseVel.TimestampSecs)

	timoffPose2Sense := timoffObstacles - timoffPoseAge
	timoffPose2VelCmd := n.delay.TimSendVelCmd.Value() + 0.5*n.delay.TimChangeSpeed.Value() - timoffPoseAge

	relPoseSense = n.curPoseVel.VelLocal.Integrate(timoffPose2Sense)
	relPoseVelCmd = n.curPoseVel.VelLocal.Integrate(timoffPose2VelCmd)
	tpOrigin = geom.Pose2D{
		X:   relPoseVelCmd.X - relPoseSense.X,
		Y:   relPoseVelCmd.Y - relPoseSense.Y,
		Phi: geom.WrapToPi(relPoseVelCmd.Phi - relPoseSense.Phi),
	}
	return relPoseSense, relPoseVelCmd, tpOrigin
}

// applySecureDistanceRampLocked implements spec §4.3 P6.4: the obstacle
// security slowdown ramp between secure_distance_start (full stop) and
// secure_distance_end (unrestricted speed).
func (n *Navigator) applySecureDistanceRampLocked(view *tpspace.View, alphaIdx uint, speed float64) float64 {
	if int(alphaIdx) >= len(view.TPObstacles) {
		return speed
	}
	d := view.TPObstacles[alphaIdx]
	start, end := n.cfg.SecureDistanceStart, n.cfg.SecureDistanceEnd
	switch {
	case d <= start:
		return 0
	case d < end:
		return speed * (d - start) / (end - start)
	default:
		return speed
	}
}

// emitLocked implements spec §4.3 P9: dispatching the winning candidate (or
// issuing a security pause if none is viable), and spec §4.7's
// scale -> blend -> limit velocity post-processing for a fresh command.
func (n *Navigator) emitLocked(best, nopSlot int, candidates []selector.Candidate, views []*tpspace.View, tIterStart float64, rec *navlog.Record) {
	if best < 0 || best >= len(candidates) {
		_ = n.robot.Stop(true)
		n.lastSentCmd = LastSentCmd{}
		rec.ChosenPTG = -1
		return
	}

	chosen := candidates[best]
	rec.ChosenPTG = chosen.PTGIndex

	if n.lastAnyCmdTime > 0 {
		n.delay.TimChangeSpeed.Update(tIterStart - n.lastAnyCmdTime)
	}

	if best == nopSlot {
		if !n.robot.ChangeSpeedsNOP() {
			n.doEmergencyStop("NOP re-affirmation command failed")
			return
		}
		rec.WasNOP = true
		n.delay.TimSendVelCmd.Update(n.robot.GetNavigationTime() - tIterStart)
		n.lastAnyCmdTime = tIterStart
		return
	}

	ptg := n.ptgs[chosen.PTGIndex]
	alphaIdx := ptg.Alpha2Index(chosen.Alpha)
	raw := ptg.DirectionToMotionCommand(alphaIdx)
	scaled := geom.Twist2D{Vx: raw.Twist.Vx * chosen.Speed, Vy: raw.Twist.Vy * chosen.Speed, W: raw.Twist.W * chosen.Speed}

	var dt float64
	if n.lastAnyCmdTime > 0 {
		dt = tIterStart - n.lastAnyCmdTime
	}
	blended, scale := n.blendAndLimit(scaled, dt)
	chosen.Props["eta"] *= scale

	if blended.Vx == 0 && blended.Vy == 0 && blended.W == 0 {
		// The post-processing pipeline itself reduced the command to a full
		// stop: treat this as a security pause, not a completed navigation.
		_ = n.robot.Stop(true)
		n.lastSentCmd = LastSentCmd{}
		rec.WasNOP = false
		rec.CmdVel = &blended
		return
	}

	if !n.robot.ChangeSpeeds(tpspace.VelCmd{Twist: blended}) {
		n.doEmergencyStop("ChangeSpeeds command failed")
		return
	}

	rec.CmdVel = &blended
	rec.WasNOP = false
	n.delay.TimSendVelCmd.Update(n.robot.GetNavigationTime() - tIterStart)

	n.lastSentCmd = LastSentCmd{
		valid:              true,
		PTGIndex:           chosen.PTGIndex,
		AlphaIndex:         alphaIdx,
		PoseVelAtSend:      n.curPoseVel,
		SendTimeSecs:       tIterStart,
		ColfreeDistAtMoveK: views[chosen.PTGIndex].TPObstacles[alphaIdx],
		SpeedScale:         chosen.Speed * scale,
		TPTargetK:          views[chosen.PTGIndex].TargetK,
	}
	n.lastAnyCmdTime = tIterStart
}
