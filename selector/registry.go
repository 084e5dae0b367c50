package selector

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fossabot/mrpt/config"
)

// Constructor builds an Optimizer from its configured attribute bag.
type Constructor func(attrs config.AttributeMap) (Optimizer, error)

var registry = map[string]Constructor{}

// Register adds a named optimizer constructor, panicking on a duplicate
// name.
func Register(name string, ctor Constructor) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("selector: optimizer %q already registered", name))
	}
	registry[name] = ctor
}

// New constructs a registered optimizer by name, as required by the
// navigator's "motion_decider_method" config key (spec §6).
func New(name string, attrs config.AttributeMap) (Optimizer, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("selector: no optimizer registered under name %q", name)
	}
	return ctor(attrs)
}

type weightedSumAttrs struct {
	Weights       map[string]float64 `json:"weights"`
	MinColfree    float64            `json:"min_colfree"`
	MinClearance  float64            `json:"min_clearance"`
	MinHysteresis float64            `json:"min_hysteresis"`
	MaxETA        float64            `json:"max_eta"`
}

func init() {
	Register("weighted_sum", func(attrs config.AttributeMap) (Optimizer, error) {
		var a weightedSumAttrs
		if _, err := config.TransformAttributeMapToStruct(&a, attrs); err != nil {
			return nil, err
		}
		return NewWeightedSum(a.Weights, a.MinColfree, a.MinClearance, a.MinHysteresis, a.MaxETA), nil
	})
}
