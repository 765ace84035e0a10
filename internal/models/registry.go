package models

import (
	"sort"
)

// Registry is an immutable set of known schema names.
type Registry struct {
	models map[string]Model
	byID   map[ModelID]string
}

// Default is the registry generated from the Kubernetes API schema.
var Default = NewRegistry(generatedModels)

// NewRegistry builds a Registry from a schema name to model mapping. The map is
// copied, later changes to it are not observed.
func NewRegistry(models map[string]Model) *Registry {
	r := &Registry{
		models: make(map[string]Model, len(models)),
		byID:   make(map[ModelID]string, len(models)),
	}
	for name, model := range models {
		r.models[name] = model
		r.byID[model.ID] = name
	}
	return r
}

// Lookup returns the model registered for a schema name.
func (r *Registry) Lookup(name string) (Model, bool) {
	model, ok := r.models[name]
	return model, ok
}

// ByID returns the schema name and model registered under an identifier.
func (r *Registry) ByID(id ModelID) (string, Model, bool) {
	name, ok := r.byID[id]
	if !ok {
		return "", Model{}, false
	}
	return name, r.models[name], true
}

// Len returns the number of registered schema names.
func (r *Registry) Len() int {
	return len(r.models)
}

// Names returns all registered schema names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
