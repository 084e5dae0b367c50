package navlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEMAFirstSampleSeedsExactly(t *testing.T) {
	e := NewEMA(0.7)
	assert.False(t, e.Primed())
	assert.Equal(t, 1.5, e.Update(1.5))
	assert.True(t, e.Primed())
}

func TestEMASmoothsTowardNewSamples(t *testing.T) {
	e := NewEMA(0.5)
	e.Update(0)
	v := e.Update(1)
	assert.InDelta(t, 0.5, v, 1e-9)
	assert.InDelta(t, 0.5, e.Value(), 1e-9)
}

func TestNewDelayEstimatorFiltersIndependent(t *testing.T) {
	d := NewDelayEstimator()
	d.TimoffObstacles.Update(0.1)
	d.TimChangeSpeed.Update(0.2)
	assert.InDelta(t, 0.1, d.TimoffObstacles.Value(), 1e-9)
	assert.InDelta(t, 0.2, d.TimChangeSpeed.Value(), 1e-9)
	assert.False(t, d.TimoffCurPoseVelAge.Primed())
}
