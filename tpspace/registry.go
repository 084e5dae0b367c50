package tpspace

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fossabot/mrpt/config"
)

// Constructor builds a PTG from its per-PTG attribute bag and the navigator's
// configured reference distance.
type Constructor func(attrs config.AttributeMap, refDistance float64) (PTG, error)

var registry = map[string]Constructor{}

// Register adds a named PTG family constructor to the registry. It panics on
// a duplicate name, the same behavior as
// go.viam.com/rdk/registry.RegisterComponent.
func Register(name string, ctor Constructor) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("tpspace: PTG family %q already registered", name))
	}
	registry[name] = ctor
}

// New constructs a registered PTG family by name.
func New(name string, attrs config.AttributeMap, refDistance float64) (PTG, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("tpspace: no PTG family registered under name %q", name)
	}
	return ctor(attrs, refDistance)
}

func init() {
	Register("straight", func(attrs config.AttributeMap, refDistance float64) (PTG, error) {
		numPaths := attrCountOr(attrs, "num_paths", 31)
		return NewStraightPTG(numPaths, refDistance), nil
	})
	Register("circular_arc", func(attrs config.AttributeMap, refDistance float64) (PTG, error) {
		numPaths := attrCountOr(attrs, "num_paths", 31)
		return NewCircularArcPTG(numPaths, refDistance), nil
	})
}

func attrCountOr(attrs config.AttributeMap, key string, def uint) uint {
	if attrs == nil {
		return def
	}
	if v, ok := attrs[key]; ok {
		switch n := v.(type) {
		case int:
			return uint(n)
		case float64:
			return uint(n)
		}
	}
	return def
}
