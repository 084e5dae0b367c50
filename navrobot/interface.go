// Package navrobot defines RobotInterface (spec §6), the abstract
// collaborator the navigator treats as a weak association: it is borrowed,
// never owned or freed, the way go.viam.com/rdk's services borrow a
// base.Base rather than constructing their own.
package navrobot

import (
	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/tpspace"
)

// Interface is the robot collaborator the navigation core drives. All
// methods may be called from the navigator's single control goroutine only;
// implementations must not block longer than the host's control period.
type Interface interface {
	// GetCurrentPoseAndSpeeds samples the robot's pose and global twist and
	// the navigation-time timestamp of the sample.
	GetCurrentPoseAndSpeeds() (geom.Pose2D, geom.Twist2D, float64, error)

	// GetNavigationTime returns the monotonic navigation clock, in seconds.
	// This may be simulation time.
	GetNavigationTime() float64

	// ChangeSpeeds submits a new velocity command. Returns false on failure
	// (spec §7 "transient actuator").
	ChangeSpeeds(cmd tpspace.VelCmd) bool

	// ChangeSpeedsNOP re-affirms the previously issued command without
	// resending its parameters.
	ChangeSpeedsNOP() bool

	// Stop commands an immediate halt. isEmergency distinguishes a
	// controlled cancel() from an emergency stop on fault.
	Stop(isEmergency bool) bool

	// StartWatchdog asks the robot side to independently stop if no
	// heartbeat is received within periodMs.
	StartWatchdog(periodMs int)
	// StopWatchdog cancels a previously started watchdog.
	StopWatchdog()

	// GetEmergencyStopCmd returns the canonical zero/stop velocity command.
	GetEmergencyStopCmd() tpspace.VelCmd

	// SenseObstacles populates the current workspace obstacle set (points
	// in the robot's local frame) and returns the timestamp at which they
	// were observed. Returns an error on sensor failure (spec §7 "transient
	// sensor").
	SenseObstacles() ([]geom.Pose2D, float64, error)

	EventSink
}

// EventSink is the collection of event callbacks the navigator emits into,
// in the strict order documented in spec §5.
type EventSink interface {
	SendNavigationStart()
	SendNavigationEnd()
	SendNavigationEndDueToError()
	SendWaySeemsBlocked()
	SendWaypointReached(idx int)
	SendNewWaypointTarget(idx int)
}
