package reactivenav

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/fossabot/mrpt/geom"
)

// NavigateWaypoints starts a multi-waypoint navigation (spec §4.2). It
// promotes CurrentGoal to 0 and issues the first single-target navigation
// internally right away, so the following Step() calls run the sequencer.
func (n *Navigator) NavigateWaypoints(wps []Waypoint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(wps) == 0 {
		return errors.New("reactivenav: NavigateWaypoints requires at least one waypoint")
	}
	if n.state == NavError {
		return errNavError
	}
	n.waypoints = NewWaypointSequence(wps)
	n.lastAnnouncedGoal = -2
	n.waypoints.CurrentGoal = 0
	n.announceCurrentGoalLocked()
	return nil
}

// GetWaypointStatus returns a snapshot of the waypoint sequence's current
// status, or nil if no waypoint navigation is active. This is one of the
// public operations the spec lists as serialized by the navigator's single
// lock (spec §5), so no separate synchronization is needed here.
func (n *Navigator) GetWaypointStatus() []WaypointStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.waypoints == nil {
		return nil
	}
	out := make([]WaypointStatus, len(n.waypoints.Waypoints))
	copy(out, n.waypoints.Waypoints)
	return out
}

// sequencerStepLocked runs one cycle of the waypoint sequencer (spec §4.2),
// called from Step() before the reactive planner.
func (n *Navigator) sequencerStepLocked() {
	ws := n.waypoints
	oldLastPose := ws.LastRobotPose
	ws.LastRobotPose = n.curPoseVel.Pose

	if ws.CurrentGoal >= 0 && !ws.Waypoints[ws.CurrentGoal].Reached {
		cur := ws.Waypoints[ws.CurrentGoal]
		dist, _ := geom.DistPointToSegment(cur.Target, oldLastPose, n.curPoseVel.Pose)
		if dist < cur.AllowedDistance || n.lastNavTargetReached {
			n.markWaypointReachedLocked(ws.CurrentGoal)
		}
	}
	n.lastNavTargetReached = false

	n.skipAheadLocked()

	if ws.CurrentGoal < 0 && len(ws.Waypoints) > 0 {
		ws.CurrentGoal = 0
	}

	if ws.CurrentGoal != n.lastAnnouncedGoal && ws.CurrentGoal >= 0 {
		n.announceCurrentGoalLocked()
	}
}

// markWaypointReachedLocked marks waypoint idx reached, emits its event, and
// advances CurrentGoal (or sets FinalReached for the last waypoint). Once
// Reached is true it is never cleared (spec §3 invariant).
func (n *Navigator) markWaypointReachedLocked(idx int) {
	ws := n.waypoints
	if ws.Waypoints[idx].Reached {
		return
	}
	ws.Waypoints[idx].Reached = true
	n.robot.SendWaypointReached(idx)
	if idx == len(ws.Waypoints)-1 {
		ws.FinalReached = true
	} else if ws.CurrentGoal <= idx {
		ws.CurrentGoal = idx + 1
	}
}

// skipAheadLocked implements the skip-ahead policy (spec §4.2 step 3):
// scanning forward through consecutive skippable waypoints and advancing
// CurrentGoal directly to the furthest one confirmed reachable for
// MinTimestepsConfirmSkipWaypoints consecutive cycles.
func (n *Navigator) skipAheadLocked() {
	ws := n.waypoints
	if ws.CurrentGoal < 0 || ws.FinalReached {
		return
	}
	maxSkipDist := n.cfg.MaxDistanceToAllowSkipWaypoint
	minConfirm := n.cfg.MinTimestepsConfirmSkipWaypoints
	if minConfirm == 0 {
		minConfirm = 1
	}

	i := ws.CurrentGoal
	for i < len(ws.Waypoints)-1 {
		if !ws.Waypoints[i].AllowSkip {
			return // a barrier at or before i blocks any further skip-ahead
		}
		candidate := i + 1
		wp := &ws.Waypoints[candidate]
		dist := geom.Dist2D(n.curPoseVel.Pose, wp.Target)
		if maxSkipDist >= 0 && dist > maxSkipDist {
			return
		}
		localTarget := wp.Target.InverseCompose(n.curPoseVel.Pose)
		if !n.isDirectlyReachableLocked(localTarget) {
			wp.CounterSeenReachable = 0
			return
		}
		wp.CounterSeenReachable++
		if wp.CounterSeenReachable < minConfirm {
			return
		}
		for j := ws.CurrentGoal; j < candidate; j++ {
			n.markWaypointReachedLocked(j)
		}
		ws.CurrentGoal = candidate
		i = candidate
	}
}

// isDirectlyReachableLocked answers the sequencer's reachability query using
// the previous iteration's TP-Space obstacle views — the "direct PTG
// candidate" check the spec delegates to the reactive planner (spec §4.2
// step 3). Without any prior obstacle data yet (e.g. the very first cycle),
// it conservatively reports unreachable.
func (n *Navigator) isDirectlyReachableLocked(localTarget geom.Pose2D) bool {
	for i, ptg := range n.ptgs {
		if i >= len(n.lastViews) || n.lastViews[i] == nil {
			continue
		}
		k, d, inDomain := ptg.InverseMapWS2TP(localTarget.X, localTarget.Y)
		if !inDomain {
			continue
		}
		view := n.lastViews[i]
		if int(k) < len(view.TPObstacles) && view.TPObstacles[k] >= d {
			return true
		}
	}
	return false
}

// announceCurrentGoalLocked issues the internal single-target navigation for
// the sequencer's new CurrentGoal (spec §4.2 step 5).
func (n *Navigator) announceCurrentGoalLocked() {
	ws := n.waypoints
	wp := ws.Waypoints[ws.CurrentGoal]
	req := &NavRequest{
		ID:                   uuid.New(),
		Target:               wp.Target,
		AllowedDistance:      wp.AllowedDistance,
		TargetIsIntermediary: ws.CurrentGoal < len(ws.Waypoints)-1,
	}
	_ = n.navigateLocked(req)
	n.lastAnnouncedGoal = ws.CurrentGoal
	n.robot.SendNewWaypointTarget(ws.CurrentGoal)
}
