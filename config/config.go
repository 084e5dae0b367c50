// Package config defines the recognized configuration surface of the
// navigation core (spec §6 "Config surface") and the attribute-map decoding
// convention shared with the rest of the pluggable-component ecosystem.
package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// AttributeMap is a generic JSON-decoded attribute bag, the same shape
// go.viam.com/rdk/config.AttributeMap uses to carry plugin-specific
// configuration (holonomic method parameters, optimizer weights, ...)
// before it is decoded into a concrete typed struct.
type AttributeMap map[string]interface{}

// TransformAttributeMapToStruct decodes an AttributeMap into dst using
// mapstructure, the same helper rdk's component constructors call from their
// config.RegisterComponentAttributeMapConverter callback.
func TransformAttributeMapToStruct(dst interface{}, attrs AttributeMap) (interface{}, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return nil, errors.Wrap(err, "building attribute decoder")
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return nil, errors.Wrap(err, "decoding attribute map")
	}
	return dst, nil
}

// ErrFieldRequired reports a missing required configuration key, the
// "configuration missing" error kind from spec §7.
type ErrFieldRequired struct {
	Path  string
	Field string
}

func (e *ErrFieldRequired) Error() string {
	if e.Path == "" {
		return "config: missing required field " + e.Field
	}
	return "config: " + e.Path + ": missing required field " + e.Field
}

// NewFieldRequiredError returns an ErrFieldRequired for field at path.
func NewFieldRequiredError(path, field string) error {
	return &ErrFieldRequired{Path: path, Field: field}
}

// Config is the recognized configuration surface of the navigation core
// (spec §6). Every field has the documented default unless stated otherwise.
type Config struct {
	// Required.
	HolonomicMethod      string  `json:"holonomic_method"`
	MotionDeciderMethod  string  `json:"motion_decider_method"`
	RefDistance          float64 `json:"ref_distance"`

	DistToTargetForSendingEvent               float64 `json:"dist_to_target_for_sending_event"`
	AlarmSeemsNotApproachingTargetTimeout      float64 `json:"alarm_seems_not_approaching_target_timeout"`
	SpeedfilterTau                             float64 `json:"speedfilter_tau"`
	SecureDistanceStart                        float64 `json:"secure_distance_start"`
	SecureDistanceEnd                          float64 `json:"secure_distance_end"`
	UseDelaysModel                             bool    `json:"use_delays_model"`
	MaxDistancePredictedActualPath             float64 `json:"max_distance_predicted_actual_path"`
	MinNormalizedFreeSpaceForPTGContinuation   float64 `json:"min_normalized_free_space_for_ptg_continuation"`
	EnableObstacleFiltering                    bool    `json:"enable_obstacle_filtering"`
	EvaluateClearance                          bool    `json:"evaluate_clearance"`
	MaxDistForTimebasedPathPrediction          float64 `json:"max_dist_for_timebased_path_prediction"`
	RobotAbsoluteSpeedLimits                   SpeedLimits `json:"robot_absolute_speed_limits"`
	MaxDistanceToAllowSkipWaypoint             float64 `json:"max_distance_to_allow_skip_waypoint"`
	MinTimestepsConfirmSkipWaypoints           uint32  `json:"min_timesteps_confirm_skip_waypoints"`

	HolonomicMethodAttributes AttributeMap `json:"holonomic_method_attributes,omitempty"`
	MotionDeciderAttributes   AttributeMap `json:"motion_decider_attributes,omitempty"`

	LogDirectory string `json:"log_directory,omitempty"`
}

// SpeedLimits caps the robot's absolute kinematic speeds, used by the
// velocity-command post-processing stage (spec §4.7).
type SpeedLimits struct {
	MaxVx  float64 `json:"max_vx"`
	MaxVy  float64 `json:"max_vy"`
	MaxW   float64 `json:"max_w"`
}

// Default returns a Config with every documented default applied, leaving
// the three required fields empty/zero so Validate catches missing configs.
func Default() Config {
	return Config{
		DistToTargetForSendingEvent:             0,
		AlarmSeemsNotApproachingTargetTimeout:   30,
		SpeedfilterTau:                          0,
		SecureDistanceStart:                     0.05,
		SecureDistanceEnd:                       0.20,
		UseDelaysModel:                          false,
		MaxDistancePredictedActualPath:          0.15,
		MinNormalizedFreeSpaceForPTGContinuation: 0.2,
		EnableObstacleFiltering:                 true,
		EvaluateClearance:                       false,
		MaxDistForTimebasedPathPrediction:       2.0,
		MaxDistanceToAllowSkipWaypoint:          -1,
		MinTimestepsConfirmSkipWaypoints:        1,
	}
}

// Validate checks the required fields and cross-field invariants documented
// in spec §6. Every failed check is accumulated into the returned error
// (config-missing errors per §7 for absent required fields), rather than
// stopping at the first problem found.
func (c *Config) Validate(path string) error {
	var err error
	if c.HolonomicMethod == "" {
		err = multierr.Append(err, NewFieldRequiredError(path, "holonomic_method"))
	}
	if c.MotionDeciderMethod == "" {
		err = multierr.Append(err, NewFieldRequiredError(path, "motion_decider_method"))
	}
	if c.RefDistance <= 0 {
		err = multierr.Append(err, NewFieldRequiredError(path, "ref_distance"))
	}
	if c.SecureDistanceEnd <= c.SecureDistanceStart {
		err = multierr.Append(err, errors.Errorf("%s: secure_distance_end (%v) must be greater than secure_distance_start (%v)",
			path, c.SecureDistanceEnd, c.SecureDistanceStart))
	}
	return err
}
