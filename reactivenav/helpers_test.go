package reactivenav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fossabot/mrpt/config"
	"github.com/fossabot/mrpt/geom"
	"github.com/fossabot/mrpt/navlog"
	"github.com/fossabot/mrpt/navrobot"
	"github.com/fossabot/mrpt/tpspace"
)

func testConfig() config.Config {
	c := config.Default()
	c.HolonomicMethod = "gap_search"
	c.MotionDeciderMethod = "weighted_sum"
	c.RefDistance = 2.0
	c.AlarmSeemsNotApproachingTargetTimeout = 5.0
	return c
}

func newTestNavigator(t *testing.T, cfg config.Config, ptgs []tpspace.PTG) (*Navigator, *navrobot.Simulated) {
	t.Helper()
	robot := navrobot.NewSimulated(geom.Pose2D{})
	nav, err := NewNavigator(robot, ptgs, cfg, Options{Logger: navlog.NewTestLogger("test")})
	require.NoError(t, err)
	return nav, robot
}

func defaultPTGFleet() []tpspace.PTG {
	return []tpspace.PTG{tpspace.NewStraightPTG(32, 2.0)}
}

// runUntilIdleOrTimeout drives Step()/Tick() in lock-step until the navigator
// leaves Navigating or maxIterations is exhausted, returning how many ticks
// elapsed.
func runUntilIdleOrTimeout(nav *Navigator, robot *navrobot.Simulated, dt float64, maxIterations int) int {
	i := 0
	for ; i < maxIterations; i++ {
		nav.Step()
		if nav.State() != Navigating {
			break
		}
		robot.Tick(dt)
	}
	return i
}
