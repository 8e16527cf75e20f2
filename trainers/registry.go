package trainers

import (
	"fmt"
	"sort"

	"github.com/aeolab/windfarm-rl-train/types"
)

// Constructor builds a fresh trainer instance
type Constructor func() (types.Trainer, error)

// Registry maps trainer names to constructors. An entry point registers the
// implementations it ships and requests them by name; asking for a name that
// was never registered is an error the caller can report and skip.
type Registry struct {
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

func (r *Registry) Register(name string, c Constructor) {
	r.constructors[name] = c
}

// New constructs the named trainer
func (r *Registry) New(name string) (types.Trainer, error) {
	c, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("trainer %q is not available (have: %v)", name, r.Available())
	}
	return c()
}

// Available lists the registered trainer names, sorted
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
