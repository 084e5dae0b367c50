package navrobot

import (
	"sync"

	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/tpspace"
)

// Simulated is a kinematic fake robot: it integrates whatever velocity
// command it was last given, advancing its pose only when Tick is called.
// It is meant for this module's own test suites, the same role
// go.viam.com/rdk/testutils/inject fakes play for rdk's component tests.
type Simulated struct {
	mu sync.Mutex

	pose   geom.Pose2D
	vel    geom.Twist2D
	navTim float64

	obstacles    []geom.Pose2D
	obstaclesTim float64

	lastCmd    tpspace.VelCmd
	stopped    bool
	watchdogOn bool

	// Events observed, for assertions in tests.
	Events []string

	// Failure injection.
	FailNextSense       bool
	FailNextChangeSpeed bool
}

// NewSimulated returns a Simulated robot starting at pose origin with no
// obstacles nearby.
func NewSimulated(start geom.Pose2D) *Simulated {
	return &Simulated{pose: start, stopped: true}
}

// Tick advances navigation time by dt seconds, integrating the last velocity
// command into the pose.
func (s *Simulated) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		local := s.vel
		delta := local.Integrate(dt)
		s.pose = delta.Compose(s.pose)
	}
	s.navTim += dt
}

// SetObstacles replaces the obstacle set the next SenseObstacles call will
// return, in the robot's local frame, timestamped at the current nav time.
func (s *Simulated) SetObstacles(obstacles []geom.Pose2D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obstacles = obstacles
	s.obstaclesTim = s.navTim
}

// Pose returns the current simulated pose, for test assertions.
func (s *Simulated) Pose() geom.Pose2D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

func (s *Simulated) GetCurrentPoseAndSpeeds() (geom.Pose2D, geom.Twist2D, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// vel is the robot-local command twist; report it in the global frame.
	return s.pose, s.vel.Rotated(-s.pose.Phi), s.navTim, nil
}

func (s *Simulated) GetNavigationTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navTim
}

func (s *Simulated) ChangeSpeeds(cmd tpspace.VelCmd) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextChangeSpeed {
		s.FailNextChangeSpeed = false
		return false
	}
	s.lastCmd = cmd
	s.vel = cmd.Twist
	s.stopped = false
	return true
}

func (s *Simulated) ChangeSpeedsNOP() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return true
}

func (s *Simulated) Stop(isEmergency bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vel = geom.Twist2D{}
	s.stopped = true
	if isEmergency {
		s.Events = append(s.Events, "emergency_stop")
	} else {
		s.Events = append(s.Events, "stop")
	}
	return true
}

func (s *Simulated) StartWatchdog(periodMs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchdogOn = true
}

func (s *Simulated) StopWatchdog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchdogOn = false
}

func (s *Simulated) GetEmergencyStopCmd() tpspace.VelCmd {
	return tpspace.VelCmd{}
}

func (s *Simulated) SenseObstacles() ([]geom.Pose2D, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextSense {
		s.FailNextSense = false
		return nil, 0, errSenseFailed
	}
	return s.obstacles, s.obstaclesTim, nil
}

func (s *Simulated) SendNavigationStart()         { s.event("navigation_start") }
func (s *Simulated) SendNavigationEnd()           { s.event("navigation_end") }
func (s *Simulated) SendNavigationEndDueToError() { s.event("navigation_end_due_to_error") }
func (s *Simulated) SendWaySeemsBlocked()         { s.event("way_seems_blocked") }
func (s *Simulated) SendWaypointReached(idx int)  { s.event("waypoint_reached") }
func (s *Simulated) SendNewWaypointTarget(idx int) { s.event("new_waypoint_target") }

func (s *Simulated) event(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, name)
}
