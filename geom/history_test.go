package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryInterpolateAt(t *testing.T) {
	h := NewHistory(20.0)
	h.Append(PoseVelSample{Pose: Pose2D{X: 0}, TimestampSecs: 0})
	h.Append(PoseVelSample{Pose: Pose2D{X: 10}, TimestampSecs: 10})

	mid, err := h.InterpolateAt(5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mid.Pose.X, 1e-9)

	before, err := h.InterpolateAt(-5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, before.Pose.X, 1e-9)

	after, err := h.InterpolateAt(50)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, after.Pose.X, 1e-9)
}

func TestHistoryInterpolateAtNoSamples(t *testing.T) {
	h := NewHistory(20.0)
	_, err := h.InterpolateAt(0)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestHistoryEvictsOldSamples(t *testing.T) {
	h := NewHistory(5.0)
	h.Append(PoseVelSample{Pose: Pose2D{X: 0}, TimestampSecs: 0})
	h.Append(PoseVelSample{Pose: Pose2D{X: 1}, TimestampSecs: 3})
	h.Append(PoseVelSample{Pose: Pose2D{X: 2}, TimestampSecs: 9})

	assert.Equal(t, 2, h.Len())
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(5.0)
	h.Append(PoseVelSample{TimestampSecs: 0})
	h.Reset()
	assert.Equal(t, 0, h.Len())
}
