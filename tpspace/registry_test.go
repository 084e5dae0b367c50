package tpspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossabot/mrpt/config"
)

func TestNewBuiltinFamilies(t *testing.T) {
	straight, err := New("straight", config.AttributeMap{"num_paths": float64(8)}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, uint(8), straight.AlphaValuesCount())

	arc, err := New("circular_arc", nil, 1.5)
	require.NoError(t, err)
	assert.Equal(t, uint(31), arc.AlphaValuesCount())
}

func TestNewUnknownFamily(t *testing.T) {
	_, err := New("does_not_exist", nil, 1.0)
	assert.Error(t, err)
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		Register("straight", func(config.AttributeMap, float64) (PTG, error) { return nil, nil })
	})
}
