// Package tpspace defines the Parameterized Trajectory Generator (PTG)
// abstraction and the workspace<->TP-Space transform used by the reactive
// planner (spec §4.3 P6, §6 PTG). The shape of the interface mirrors
// go.viam.com/rdk/motionplan/tpspace.PTG; the geometry itself is specific to
// the 2-D reactive-navigation domain rather than rdk's 3-D arm trajectories.
package tpspace

import (
	"math"

	"github.com/fossabot/mrpt/geom"
)

// VelCmd is an opaque kinematic velocity command a PTG knows how to produce
// for one of its own directions; the navigator never interprets its fields,
// it only forwards them to navrobot.Interface.ChangeSpeeds.
type VelCmd struct {
	Twist geom.Twist2D
}

// PTG is the trajectory-family abstraction: given a reference distance and a
// discretization of K "alpha" directions, it maps workspace points to/from
// TP-Space (alpha-index, normalized distance) and can reproduce any point
// along one of its own precomputed trajectories.
type PTG interface {
	// Name identifies this PTG for logging and registration.
	Name() string

	// AlphaValuesCount returns K, the number of discrete directions.
	AlphaValuesCount() uint

	// Alpha2Index returns the nearest direction index for continuous alpha.
	Alpha2Index(alpha float64) uint
	// Index2Alpha returns the continuous alpha value of direction index k.
	Index2Alpha(k uint) float64

	// InverseMapWS2TP converts a workspace point (relative to the PTG's
	// origin) into TP-Space. inDomain is false if the point cannot be
	// reached by any trajectory of this PTG.
	InverseMapWS2TP(x, y float64) (k uint, dNorm float64, inDomain bool)

	// GetPathStepForDist returns the discrete path step index reached after
	// traveling dist meters along direction k, and whether dist is within
	// the precomputed range of that trajectory.
	GetPathStepForDist(k uint, dist float64) (step int, inRange bool)

	// GetPathPose returns the pose (relative to the PTG origin) at the given
	// step along direction k's trajectory.
	GetPathPose(k uint, step int) geom.Pose2D

	// GetPathDist returns the distance traveled (meters) at the given step
	// along direction k's trajectory.
	GetPathDist(k uint, step int) float64

	// GetPathStepDuration returns the time (seconds) represented by one
	// path step, constant across the whole PTG.
	GetPathStepDuration() float64

	// IsBijectiveAt reports whether the workspace point at (k, step) has a
	// unique preimage under InverseMapWS2TP, a precondition for NOP
	// continuation correctness (spec §4.3 P7.3).
	IsBijectiveAt(k uint, step int) bool

	// RefDistance returns the reference distance (meters) all normalized
	// TP-Space distances are scaled by.
	RefDistance() float64

	// SupportsVelCmdNOP reports whether this PTG's motion is smooth enough
	// that "keep doing what you were doing" is a valid decision.
	SupportsVelCmdNOP() bool
	// MaxTimeInVelCmdNOP returns, for direction k, how long a NOP
	// continuation of that direction may run before it must be refreshed.
	MaxTimeInVelCmdNOP(k uint) float64

	// DirectionToMotionCommand returns the canonical full-speed velocity
	// command for direction k.
	DirectionToMotionCommand(k uint) VelCmd

	// UpdateCurrentRobotVel informs the PTG of the robot's current local
	// velocity, used by PTGs whose shape depends on current speed.
	UpdateCurrentRobotVel(vel geom.Twist2D)

	// GetScorePriority returns a fixed per-PTG priority weight.
	GetScorePriority() float64
	// EvalPathRelativePriority scores how well-aligned a TP-Space target is
	// with this PTG's preferred motion, in [0,1].
	EvalPathRelativePriority(targetK uint, targetDNorm float64) float64

	// InitTPObstacles resets a TP_Obstacles buffer of length K to 1.0 (no
	// obstacle detected on any direction).
	InitTPObstacles(out []float64)
	// InitClearanceDiagram resets an optional clearance table.
	InitClearanceDiagram(out Clearance)
	// UpdateClearancePost lets the PTG post-process a computed clearance
	// diagram given the final TP_Obstacles, e.g. to clip clearance beyond
	// the obstacle-free distance.
	UpdateClearancePost(c Clearance, tpObstacles []float64)

	// Initialize performs one-time precomputation (collision grids, etc).
	// Must be idempotent (spec §4.3 P2).
	Initialize() error
}

// Clearance holds, for a direction index k and a normalized distance bucket,
// the lateral headroom to the nearest obstacle (spec Glossary "clearance
// diagram"). Buckets are keyed by a coarse integer quantization of d*100.
type Clearance map[uint]map[int]float64

// Get returns the clearance for direction k at normalized distance d,
// falling back to 1.0 (maximum clearance) if no entry exists.
func (c Clearance) Get(k uint, d float64) float64 {
	bucket := int(math.Round(d * 100))
	if byD, ok := c[k]; ok {
		if v, ok := byD[bucket]; ok {
			return v
		}
	}
	return 1.0
}

// Set records a clearance value for direction k at normalized distance d.
func (c Clearance) Set(k uint, d, value float64) {
	bucket := int(math.Round(d * 100))
	byD, ok := c[k]
	if !ok {
		byD = map[int]float64{}
		c[k] = byD
	}
	byD[bucket] = value
}

// View is the per-PTG, per-cycle TP-Space snapshot computed by the reactive
// planner's P6 stage (spec §3 TPSpaceView).
type View struct {
	PTG          PTG
	K            uint
	TPObstacles  []float64 // normalized free distance per direction, [0,1]
	Clearance    Clearance
	TargetK      uint
	TargetD      float64 // normalized, [0,1]
	ValidTP      bool
}

// NewView allocates a View for ptg with TP_Obstacles initialized to all-ones.
func NewView(ptg PTG) *View {
	k := ptg.AlphaValuesCount()
	obstacles := make([]float64, k)
	ptg.InitTPObstacles(obstacles)
	var clearance Clearance
	clearance = Clearance{}
	ptg.InitClearanceDiagram(clearance)
	return &View{PTG: ptg, K: k, TPObstacles: obstacles, Clearance: clearance}
}
