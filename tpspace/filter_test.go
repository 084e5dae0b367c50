package tpspace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fossabot/mrpt/geom"
)

func TestFilterObstaclesByDistanceDropsCloseDuplicates(t *testing.T) {
	obstacles := []geom.Pose2D{
		{X: 0, Y: 0},
		{X: 0.005, Y: 0}, // within minSeparation of the first point
		{X: 1, Y: 0},
	}
	got := FilterObstaclesByDistance(obstacles, 0.02)
	assert.Len(t, got, 2)
	assert.Equal(t, obstacles[0], got[0])
	assert.Equal(t, obstacles[2], got[1])
}

func TestFilterObstaclesByDistanceDisabledPassesThrough(t *testing.T) {
	obstacles := []geom.Pose2D{{X: 0, Y: 0}, {X: 0.001, Y: 0}}
	got := FilterObstaclesByDistance(obstacles, 0)
	assert.Equal(t, obstacles, got)
}
