package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
)

// Registry manages the available machines by name.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]machines.Definition
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		machines: make(map[string]machines.Definition),
	}
}

// NewDefault creates a registry holding the built-in catalog.
func NewDefault() *Registry {
	r := NewRegistry()
	for _, def := range machines.All() {
		// built-ins are validated by their own tests
		_ = r.Register(def)
	}
	return r
}

// Register adds a machine after validating its table against its alphabet.
// If a machine with the same name exists, it is overwritten.
func (r *Registry) Register(def machines.Definition) error {
	if def.Name == "" {
		return fmt.Errorf("register machine: name is required")
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("register machine %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines[def.Name] = def
	return nil
}

// Get looks up a machine by name.
// Returns domain.ErrMachineNotFound if the name is not registered.
func (r *Registry) Get(name string) (machines.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.machines[name]
	if !ok {
		return machines.Definition{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return def, nil
}

// List returns every registered machine sorted by name.
func (r *Registry) List() []machines.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]machines.Definition, 0, len(r.machines))
	for _, def := range r.machines {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
