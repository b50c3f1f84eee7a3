package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/dyntree/internal/model"
)

type Registry struct {
	models map[string]func() Builder
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() Builder),
	}

	r.models["pendulum"] = func() Builder { return NewPendulum() }
	r.models["double_pendulum"] = func() Builder { return NewDoublePendulum() }
	r.models["cartpole"] = func() Builder { return NewCartPole() }
	r.models["planar_arm"] = func() Builder { return NewPlanarArm() }
	r.models["drone"] = func() Builder { return NewDrone() }
	r.models["humanoid_arm"] = func() Builder { return NewHumanoidArm() }

	return r
}

// Register adds or replaces a model constructor.
func (r *Registry) Register(name string, fn func() Builder) {
	r.models[name] = fn
}

// Builder returns the default parameters of a model, ready to be tweaked
// before Build.
func (r *Registry) Builder(name string) (Builder, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetModel(name string) (*model.Model, error) {
	b, err := r.Builder(name)
	if err != nil {
		return nil, err
	}
	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return m, nil
}

// ListModels returns the registered names in sorted order.
func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
