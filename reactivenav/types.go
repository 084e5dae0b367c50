// Package reactivenav implements the navigator state machine, waypoint
// sequencer, and PTG-based reactive planner (spec §4): the three tightly
// coupled layers are one package because the spec itself couples them (the
// sequencer re-enters navigation control, and the reactive planner answers
// the sequencer's reachability queries).
package reactivenav

import (
	"github.com/google/uuid"

	"github.com/fossabot/mrpt/geom"
)

// NavState is one of the navigator's four lifecycle states (spec §4.1).
type NavState int

const (
	// Idle is the initial state: no navigation request is active.
	Idle NavState = iota
	// Navigating is running the reactive control loop toward a target.
	Navigating
	// Suspended is a paused Navigating, resumable without losing progress.
	Suspended
	// NavError is a terminal fault state requiring ResetNavError to leave.
	NavError
)

func (s NavState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Navigating:
		return "Navigating"
	case Suspended:
		return "Suspended"
	case NavError:
		return "NavError"
	default:
		return "Unknown"
	}
}

// NavRequest is a single-target navigation request (spec §3).
type NavRequest struct {
	ID                    uuid.UUID
	Target                geom.Pose2D
	AllowedDistance       float64
	TargetIsRelative      bool
	TargetIsIntermediary  bool
}

// NewNavRequest returns a NavRequest stamped with a fresh session ID.
func NewNavRequest(target geom.Pose2D, allowedDistance float64) *NavRequest {
	return &NavRequest{ID: uuid.New(), Target: target, AllowedDistance: allowedDistance}
}

// Waypoint is one target in a multi-waypoint navigation (spec §3). A
// waypoint with AllowSkip=false is a barrier: the sequencer must visit it
// before advancing past it.
type Waypoint struct {
	Target          geom.Pose2D
	HasHeading      bool
	AllowedDistance float64
	AllowSkip       bool
}

// WaypointStatus augments a Waypoint with the sequencer's bookkeeping.
// Once Reached becomes true it must never return to false (spec §3
// invariant).
type WaypointStatus struct {
	Waypoint
	Reached              bool
	CounterSeenReachable uint32
}

// WaypointSequence is the ordered list of waypoints being sequenced through
// a navigation, plus the sequencer's progress state (spec §3).
type WaypointSequence struct {
	Waypoints     []WaypointStatus
	CurrentGoal   int // -1 .. len(Waypoints)-1
	FinalReached  bool
	LastRobotPose geom.Pose2D
}

// NewWaypointSequence returns a fresh sequence with CurrentGoal=-1.
func NewWaypointSequence(waypoints []Waypoint) *WaypointSequence {
	statuses := make([]WaypointStatus, len(waypoints))
	for i, w := range waypoints {
		statuses[i] = WaypointStatus{Waypoint: w}
	}
	return &WaypointSequence{Waypoints: statuses, CurrentGoal: -1}
}

// LastSentCmd records the most recently issued non-NOP velocity command,
// used both for hysteresis scoring and for the NOP continuation's
// bijectivity/timeout checks (spec §3).
type LastSentCmd struct {
	valid bool

	PTGIndex       int
	AlphaIndex     uint
	PoseVelAtSend  geom.PoseVelSample
	SendTimeSecs   float64
	ColfreeDistAtMoveK float64
	SpeedScale     float64
	TPTargetK      uint
}

// Valid reports whether this LastSentCmd reflects an actual successful
// ChangeSpeeds call in the current navigation (spec §8 invariant).
func (c LastSentCmd) Valid() bool { return c.valid }
