package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/madhouse/pkg/config"
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/scenario"
	"pgregory.net/rapid"
)

// RunFunc runs a model under t. The profile may be nil.
type RunFunc func(t rapid.TB, profile *config.Profile, opts ...scenario.Option)

// Model is a named, runnable state-machine model.
type Model struct {
	Name        string
	Description string
	Run         RunFunc
}

// NewModel adapts a scenario declaration to a Model.
//
// newContext must return a pointer so the profile context can be decoded
// into it before the scenario is built.
func NewModel[S domain.State, C domain.TestContext[C]](
	name, description string,
	newContext func() C,
	newState func() S,
	sources ...scenario.Source[S, C],
) Model {
	return Model{
		Name:        name,
		Description: description,
		Run: func(t rapid.TB, profile *config.Profile, opts ...scenario.Option) {
			t.Helper()
			ctx := newContext()
			if profile != nil {
				if err := profile.DecodeContext(ctx); err != nil {
					t.Fatalf("model %s: %v", name, err)
					return
				}
			}
			sc, err := scenario.New(ctx, newState, sources...)
			if err != nil {
				t.Fatalf("model %s: %v", name, err)
				return
			}
			sc.Run(t, opts...)
		},
	}
}

// Registry manages the available models.
type Registry struct {
	mu     sync.RWMutex
	models map[string]Model
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]Model),
	}
}

// Register adds models to the registry.
// If a model with the same name exists, it is overwritten.
func (r *Registry) Register(models ...Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range models {
		r.models[m.Name] = m
	}
}

// Get looks up a model by name.
func (r *Registry) Get(name string) (Model, error) {
	r.mu.RLock()
	m, ok := r.models[name]
	r.mu.RUnlock()

	if !ok {
		return Model{}, fmt.Errorf("model not found: %s", name)
	}
	return m, nil
}

// List returns the registered models sorted by name.
func (r *Registry) List() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Model, 0, len(r.models))
	for _, m := range r.models {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
