package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	c := Default()
	c.HolonomicMethod = "gap_search"
	c.MotionDeciderMethod = "weighted_sum"
	c.RefDistance = 1.0
	return c
}

func TestValidateRequiresHolonomicMethod(t *testing.T) {
	c := validConfig()
	c.HolonomicMethod = ""
	err := c.Validate("nav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holonomic_method")
}

func TestValidateRequiresMotionDeciderMethod(t *testing.T) {
	c := validConfig()
	c.MotionDeciderMethod = ""
	require.Error(t, c.Validate("nav"))
}

func TestValidateRequiresPositiveRefDistance(t *testing.T) {
	c := validConfig()
	c.RefDistance = 0
	require.Error(t, c.Validate("nav"))
}

func TestValidateSecureDistanceOrdering(t *testing.T) {
	c := validConfig()
	c.SecureDistanceStart = 0.3
	c.SecureDistanceEnd = 0.2
	err := c.Validate("nav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_distance_end")
}

func TestValidateAccumulatesMultipleErrors(t *testing.T) {
	c := Config{}
	err := c.Validate("nav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holonomic_method")
	assert.Contains(t, err.Error(), "motion_decider_method")
	assert.Contains(t, err.Error(), "ref_distance")
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	c := validConfig()
	require.NoError(t, c.Validate("nav"))
}

func TestTransformAttributeMapToStruct(t *testing.T) {
	type attrs struct {
		FreeThreshold float64 `json:"free_threshold"`
	}
	var a attrs
	_, err := TransformAttributeMapToStruct(&a, AttributeMap{"free_threshold": 0.4})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, a.FreeThreshold, 1e-9)
}

func TestTransformAttributeMapToStructWeaklyTyped(t *testing.T) {
	type attrs struct {
		NumPaths uint `json:"num_paths"`
	}
	var a attrs
	// Decoded from JSON, integers commonly arrive as float64.
	_, err := TransformAttributeMapToStruct(&a, AttributeMap{"num_paths": float64(31)})
	require.NoError(t, err)
	assert.Equal(t, uint(31), a.NumPaths)
}
