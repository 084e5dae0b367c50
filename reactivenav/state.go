package reactivenav

import (
	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/navlog"
)

// Navigate starts a new single-target navigation (spec §4.1 navigate()).
// Valid from any state except NavError.
func (n *Navigator) Navigate(req *NavRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.navigateLocked(req)
}

func (n *Navigator) navigateLocked(req *NavRequest) error {
	if n.state == NavError {
		return errNavError
	}
	target := req.Target
	if req.TargetIsRelative {
		n.updateCurrentPoseAndSpeedsLocked()
		target = target.Compose(n.curPoseVel.Pose)
	}
	wasNavigating := n.state == Navigating

	reqCopy := *req
	reqCopy.Target = target
	reqCopy.TargetIsRelative = false
	n.navParams = &reqCopy

	n.lastSentCmd = LastSentCmd{}
	n.navigationEndEventSent = false
	n.lastNavTargetReached = false
	n.badApproachMinDistSet = false
	n.prevTargetValid = false

	n.setState(Navigating)

	if !wasNavigating {
		n.poseHistory.Reset()
		n.robot.StartWatchdog(1000)
		n.onStartNewNavigation()
		n.robot.SendNavigationStart()
	}
	return nil
}

// onStartNewNavigation resets per-navigation scratch state (spec §4.1 edge
// action "invoke on_start_new_navigation"). PTG initialization is idempotent
// and therefore not repeated here.
func (n *Navigator) onStartNewNavigation() {
	n.iterationIndex = 0
	n.delay = navlog.NewDelayEstimator()
	n.lastViews = nil
}

// Cancel immediately discards the current request and stops the robot
// (spec §4.1 cancel()).
func (n *Navigator) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	wasNavigating := n.state == Navigating
	n.setState(Idle)
	n.navParams = nil
	n.waypoints = nil
	n.lastSentCmd = LastSentCmd{}
	_ = n.robot.Stop(false)
	if wasNavigating {
		n.robot.StopWatchdog()
	}
}

// Suspend pauses an in-progress navigation (spec §4.1 suspend()). No stop is
// issued here; the next Step() edge action is responsible for that per the
// spec.
func (n *Navigator) Suspend() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Navigating {
		return errNotNavigating
	}
	n.setState(Suspended)
	return nil
}

// Resume continues a Suspended navigation (spec §4.1 resume()).
func (n *Navigator) Resume() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Suspended {
		return errNotSuspended
	}
	n.setState(Navigating)
	return nil
}

// ResetNavError clears a NavError state back to Idle (spec §4.1
// reset_nav_error()).
func (n *Navigator) ResetNavError() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != NavError {
		return errNotInError
	}
	n.setState(Idle)
	return nil
}

func (n *Navigator) setState(s NavState) {
	n.state = s
}

// runEdgeActions executes the actions tied to a state transition that
// happened since the last call (spec §4.1 "Edge actions in step()"). It is
// idempotent: calling Step() repeatedly in a terminal state without an
// intervening transition fires no further actions (spec §8 round-trip
// property).
func (n *Navigator) runEdgeActions() {
	if n.state == n.lastNavigationState {
		return
	}
	prev := n.lastNavigationState
	switch {
	case prev == Navigating && n.state == Suspended:
		_ = n.robot.Stop(false)
		n.robot.StopWatchdog()
	case prev == Navigating && n.state == Idle:
		n.robot.StopWatchdog()
	case prev == Navigating && n.state == NavError:
		n.robot.SendNavigationEndDueToError()
		_ = n.robot.Stop(false)
		n.robot.StopWatchdog()
	case prev == Suspended && n.state == Navigating:
		n.poseHistory.Reset()
		n.robot.StartWatchdog(1000)
		n.onStartNewNavigation()
	}
	n.lastNavigationState = n.state
}

// updateCurrentPoseAndSpeedsLocked samples the robot's pose/velocity,
// skipping the query if less than minTimeBetweenPoseUpdates navigation-time
// seconds have elapsed since the last successful sample (spec §5, §9).
func (n *Navigator) updateCurrentPoseAndSpeedsLocked() {
	now := n.robot.GetNavigationTime()
	if n.curPoseVel.TimestampSecs > 0 && now-n.lastPoseQueryTime < minTimeBetweenPoseUpdates {
		return
	}
	pose, velGlobal, ts, err := n.robot.GetCurrentPoseAndSpeeds()
	if err != nil {
		n.doEmergencyStop("sensor read failure: " + err.Error())
		return
	}
	hadPrev := n.curPoseVel.TimestampSecs > 0
	oldPose := n.curPoseVel.Pose
	n.lastPoseQueryTime = now
	n.curPoseVel = geom.PoseVelSample{
		Pose:          pose,
		VelGlobal:     velGlobal,
		VelLocal:      velGlobal.Rotated(pose.Phi),
		TimestampSecs: ts,
	}
	if hadPrev {
		n.prevPose = oldPose
	} else {
		n.prevPose = pose // degenerate segment: only one pose known so far
	}
	n.poseHistory.Append(n.curPoseVel)
}

// doEmergencyStop performs the fatal-condition sequence common to every
// §7 "transient sensor"/"transient actuator"/"planner exception" error
// kind: stop the robot and transition to NavError. The actual
// SendNavigationEndDueToError/StopWatchdog calls happen via runEdgeActions
// on the next edge detection, matching the state-machine's own edge-action
// contract (spec §4.1).
func (n *Navigator) doEmergencyStop(msg string) {
	n.logger.Errorw("emergency stop", "reason", msg)
	_ = n.robot.Stop(true)
	n.setState(NavError)
}
