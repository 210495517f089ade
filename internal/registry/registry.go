package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/gptgrid/internal/step"
)

// Factory returns a new step populated with its gpt defaults.
type Factory func() step.Step

// Module is implemented by packages that contribute operators.
type Module interface {
	Register(r *Registry)
}

// Registry holds the operator constructors for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds an operator name to its constructor. Registering the same
// name twice is a programming error and panics.
func (r *Registry) Register(name string, f Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("operator with name '%s' already registered", name))
	}
	slog.Debug("Registering operator.", "name", name)
	r.factories[name] = f
}

// Use registers every operator a module provides.
func (r *Registry) Use(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// New returns a fresh step for the named operator.
func (r *Registry) New(name string) (step.Step, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown operator '%s' (known: %v)", name, r.Names())
	}
	return f(), nil
}

// Names lists the registered operator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
