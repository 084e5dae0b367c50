package holonomic

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fossabot/mrpt/config"
)

// Constructor builds a holonomic Method from its configured attribute bag.
type Constructor func(attrs config.AttributeMap) (Method, error)

var registry = map[string]Constructor{}

// Register adds a named holonomic method constructor, panicking on a
// duplicate name.
func Register(name string, ctor Constructor) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("holonomic: method %q already registered", name))
	}
	registry[name] = ctor
}

// New constructs a registered holonomic method by name, as required by the
// navigator's "holonomic_method" config key (spec §6).
func New(name string, attrs config.AttributeMap) (Method, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("holonomic: no method registered under name %q", name)
	}
	return ctor(attrs)
}

type gapSearchAttrs struct {
	FreeThreshold float64 `json:"free_threshold"`
}

type vffAttrs struct {
	RepulsiveGain  float64 `json:"repulsive_gain"`
	AttractiveGain float64 `json:"attractive_gain"`
}

func init() {
	Register("gap_search", func(attrs config.AttributeMap) (Method, error) {
		var a gapSearchAttrs
		if _, err := config.TransformAttributeMapToStruct(&a, attrs); err != nil {
			return nil, err
		}
		return NewGapSearch(a.FreeThreshold), nil
	})
	Register("vff", func(attrs config.AttributeMap) (Method, error) {
		var a vffAttrs
		if _, err := config.TransformAttributeMapToStruct(&a, attrs); err != nil {
			return nil, err
		}
		return NewVFF(a.RepulsiveGain, a.AttractiveGain), nil
	})
}
