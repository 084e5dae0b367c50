package reactivenav

import "github.com/fossabot/mrpt/geom"

// Step must be called periodically by the host (spec §4.1 "Step contract").
// In Idle/Suspended/NavError, only edge actions run. In Navigating, the
// target-reached test, the bad-approach alarm, the waypoint sequencer, and
// the reactive planner all run, in that order.
func (n *Navigator) Step() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.runEdgeActions()
	if n.state != Navigating {
		return
	}

	n.updateCurrentPoseAndSpeedsLocked()
	if n.state != Navigating {
		n.runEdgeActions()
		return
	}
	if n.navParams == nil {
		return
	}

	if n.targetReachedTestLocked() {
		n.runEdgeActions()
		return
	}
	if n.state != Navigating {
		n.runEdgeActions()
		return
	}

	if n.updateBadApproachAlarmLocked() {
		n.runEdgeActions()
		return
	}

	if n.waypoints != nil {
		n.sequencerStepLocked()
		if n.state != Navigating {
			n.runEdgeActions()
			return
		}
	}

	n.reactiveIterationLocked()
}

// targetReachedTestLocked implements spec §4.1's target-reached test. It
// returns true if this call ended the navigation (transitioned to Idle).
func (n *Navigator) targetReachedTestLocked() bool {
	target := n.navParams.Target
	dist, _ := geom.DistPointToSegment(target, n.prevPose, n.curPoseVel.Pose)

	sendEventDist := n.cfg.DistToTargetForSendingEvent
	if sendEventDist == 0 {
		sendEventDist = n.navParams.AllowedDistance
	}
	if dist < sendEventDist && !n.navigationEndEventSent && !n.navParams.TargetIsIntermediary {
		n.robot.SendNavigationEnd()
		n.navigationEndEventSent = true
	}

	reached := dist < n.navParams.AllowedDistance
	if !reached {
		return false
	}
	if n.navParams.TargetIsIntermediary {
		n.lastNavTargetReached = true
		return false
	}
	n.lastNavTargetReached = true
	_ = n.robot.Stop(false)
	n.setState(Idle)
	n.navParams = nil
	return true
}

// updateBadApproachAlarmLocked implements spec §4.1's bad-approach alarm: a
// monotone-decrease-of-distance watchdog that transitions to NavError if no
// new minimum distance to target has been observed within the configured
// timeout. Returns true if it transitioned to NavError.
func (n *Navigator) updateBadApproachAlarmLocked() bool {
	d := geom.Dist2D(n.curPoseVel.Pose, n.navParams.Target)
	now := n.robot.GetNavigationTime()
	if !n.badApproachMinDistSet || d < n.badApproachMinDist {
		n.badApproachMinDist = d
		n.badApproachLastMinTime = now
		n.badApproachMinDistSet = true
		return false
	}
	timeout := n.cfg.AlarmSeemsNotApproachingTargetTimeout
	if timeout <= 0 {
		return false
	}
	if now-n.badApproachLastMinTime > timeout {
		n.robot.SendWaySeemsBlocked()
		n.setState(NavError)
		return true
	}
	return false
}
