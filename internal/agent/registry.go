package agent

import (
	"fmt"

	"chatserver/internal/ai"
	"chatserver/internal/domain"
)

// AdapterFactory builds a backend adapter for a model.
type AdapterFactory func(model string) ai.Adapter

// Registry maps adapter types to their factories. Adapters are explicit
// capability values injected at startup, not ambient state.
type Registry struct {
	factories map[domain.AdapterType]AdapterFactory
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[domain.AdapterType]AdapterFactory)}
}

// Register adds a factory for an adapter type
func (r *Registry) Register(t domain.AdapterType, factory AdapterFactory) {
	r.factories[t] = factory
}

// Adapter builds the backend adapter for an agent's configuration.
func (r *Registry) Adapter(t domain.AdapterType, model string) (ai.Adapter, error) {
	factory, ok := r.factories[t]
	if !ok {
		return nil, fmt.Errorf("adapter %s is not configured", t)
	}
	return factory(model), nil
}
