package reactivenav

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/fossabot/mrpt/config"
	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/holonomic"
	"github.com/fossabot/mrpt/navlog"
	"github.com/fossabot/mrpt/navrobot"
	"github.com/fossabot/mrpt/selector"
	"github.com/fossabot/mrpt/tpspace"
)

// minTimeBetweenPoseUpdates guards against re-querying the robot's pose more
// often than this, so that a recursing or too-fast caller does not thrash
// the sensor (spec §5, §9 supplemented feature from MRPT's
// MIN_TIME_BETWEEN_POSE_UPDATES).
const minTimeBetweenPoseUpdates = 0.020

// poseHistoryWindowSecs is the sliding window retained for NOP pose
// interpolation (spec §3 Lifecycle).
const poseHistoryWindowSecs = 20.0

// obstacleFilterMinSeparation is the decimation distance applied to sensed
// obstacles when EnableObstacleFiltering is set (spec §4.3 P4, §6
// enable_obstacle_filtering).
const obstacleFilterMinSeparation = 0.02

// Navigator is the navigation core's single entry point: it owns the state
// machine (spec §4.1), the waypoint sequencer (§4.2), and the reactive
// per-iteration pipeline (§4.3), all serialized by one lock (spec §5).
//
// Unlike the original MRPT design, Step never re-enters Navigate through the
// public, lock-taking entry point — the skip-waypoint path calls an internal
// helper that assumes the lock is already held. This resolves the "eliminate
// the recursive lock" open question (spec §9) by construction rather than by
// using a recursive mutex.
type Navigator struct {
	mu sync.Mutex

	robot     navrobot.Interface
	ptgs      []tpspace.PTG
	holonomic holonomic.Method
	optimizer selector.Optimizer
	cfg       config.Config
	clock     clock.Clock
	logger    navlog.Logger
	logWriter *navlog.Writer

	state                  NavState
	lastNavigationState    NavState
	navigationEndEventSent bool
	navParams              *NavRequest
	lastNavTargetReached   bool

	curPoseVel        geom.PoseVelSample
	prevPose          geom.Pose2D
	lastPoseQueryTime float64
	poseHistory       *geom.History

	waypoints *WaypointSequence

	lastSentCmd LastSentCmd

	badApproachMinDist     float64
	badApproachMinDistSet  bool
	badApproachLastMinTime float64

	delay           *navlog.DelayEstimator
	ptgsInitialized bool

	prevTargetGlobal geom.Pose2D
	prevTargetValid  bool

	lastViews []*tpspace.View

	iterationIndex    int
	lastAnnouncedGoal int

	lastBlendedCmd geom.Twist2D
	lastAnyCmdTime float64
}

// Options configures NewNavigator beyond the required collaborators.
type Options struct {
	Clock     clock.Clock
	Logger    navlog.Logger
	LogWriter *navlog.Writer
}

// NewNavigator builds a Navigator. ptgs is the fixed set of PTG instances
// the navigator will own and initialize lazily (spec §4.3 P2); the
// holonomic method and optimizer are constructed from cfg's required
// "holonomic_method"/"motion_decider_method" registry names (spec §6).
func NewNavigator(robot navrobot.Interface, ptgs []tpspace.PTG, cfg config.Config, opts Options) (*Navigator, error) {
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	if len(ptgs) == 0 {
		return nil, errors.New("reactivenav: at least one PTG is required")
	}
	holo, err := holonomic.New(cfg.HolonomicMethod, cfg.HolonomicMethodAttributes)
	if err != nil {
		return nil, errors.Wrap(err, "constructing holonomic method")
	}
	opt, err := selector.New(cfg.MotionDeciderMethod, cfg.MotionDeciderAttributes)
	if err != nil {
		return nil, errors.Wrap(err, "constructing motion decider")
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = navlog.NewLogger("reactivenav")
	}
	return &Navigator{
		robot:     robot,
		ptgs:      ptgs,
		holonomic: holo,
		optimizer: opt,
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
		logWriter: opts.LogWriter,
		state:               Idle,
		lastNavigationState: Idle,
		poseHistory:         geom.NewHistory(poseHistoryWindowSecs),
		delay:               navlog.NewDelayEstimator(),
		lastAnnouncedGoal:   -2,
	}, nil
}

// State returns the navigator's current lifecycle state.
func (n *Navigator) State() NavState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Close releases the navigator's log file, if one was opened.
func (n *Navigator) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.logWriter.Close()
}
