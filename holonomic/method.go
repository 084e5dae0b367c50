// Package holonomic defines the holonomic sub-planner abstraction (spec
// §4.4): a reactive planner that operates on one PTG's TP-Space view under
// the fiction that the robot can move in any direction at any speed.
package holonomic

import "github.com/fossabot/mrpt/tpspace"

// Input bundles the per-PTG TP-Space quantities the holonomic method needs.
// TargetX/TargetY are the TP-Space target expressed as normalized Cartesian
// coordinates (direction = atan2(TargetY, TargetX), distance =
// hypot(TargetX, TargetY)), the convention MRPT's holonomic navigation
// methods use.
type Input struct {
	TPObstacles                  []float64
	TargetX, TargetY             float64
	Clearance                    tpspace.Clearance
	MaxObstacleDist              float64
	MaxRobotSpeed                float64
	EnableApproachTargetSlowdown bool
}

// Output is the holonomic method's decision: a direction and a normalized
// speed, plus a free-form log record for the navigation log file.
type Output struct {
	DesiredAlpha float64
	DesiredSpeed float64 // in [0,1]
	Log          map[string]interface{}
}

// Method is the holonomic sub-planner capability (spec §4.4, §6
// HolonomicMethod). Implementations are registered by name and constructed
// from configuration, the same as PTG and MultiObjectiveOptimizer.
type Method interface {
	Name() string
	Compute(in Input) Output
}
