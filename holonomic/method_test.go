package holonomic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func freeObstacles(k int) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = 1.0
	}
	return out
}

func TestGapSearchAimsAtTargetWhenClear(t *testing.T) {
	m := NewGapSearch(0.5)
	out := m.Compute(Input{
		TPObstacles: freeObstacles(32),
		TargetX:     1.0,
		TargetY:     0.0,
	})
	assert.InDelta(t, 0.0, out.DesiredAlpha, 0.25)
	assert.Greater(t, out.DesiredSpeed, 0.0)
}

func TestGapSearchAvoidsBlockedDirection(t *testing.T) {
	obs := freeObstacles(32)
	// Block every direction near straight ahead (index ~16 of 32).
	for i := 12; i <= 20; i++ {
		obs[i] = 0.0
	}
	m := NewGapSearch(0.5)
	out := m.Compute(Input{TPObstacles: obs, TargetX: 1.0, TargetY: 0.0})

	chosenIdx := 0
	bestDiff := math.Inf(1)
	for i := range obs {
		d := math.Abs(geomAngleDiff(alphaForIndex(i, len(obs)), out.DesiredAlpha))
		if d < bestDiff {
			bestDiff = d
			chosenIdx = i
		}
	}
	assert.Greater(t, obs[chosenIdx], 0.0)
}

func TestVFFRepelsFromCloseObstacle(t *testing.T) {
	obs := freeObstacles(16)
	obs[0] = 0.0 // obstacle directly at alpha(0)
	m := NewVFF(1.0, 1.0)
	out := m.Compute(Input{TPObstacles: obs, TargetX: 1.0, TargetY: 0.0, MaxObstacleDist: 1.0})
	assert.NotZero(t, out.Log["fx"])
}

func TestRegistryConstructsConfiguredMethods(t *testing.T) {
	m, err := New("gap_search", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "gap_search", m.Name())

	v, err := New("vff", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "vff", v.Name())
}
