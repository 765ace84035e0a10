package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// RootNamespace prefixes every derived model identifier.
	RootNamespace = "Models"

	// DiscardPrefix is stripped from schema names before deriving an
	// identifier. All upstream Kubernetes schema names start with it.
	DiscardPrefix = "io.k8s"

	segmentSeparator = "."
)

// Resolver maps schema names to model identifiers.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a Resolver backed by registry, or by Default when
// registry is nil.
func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = Default
	}
	return &Resolver{registry: registry}
}

// Registry returns the registry consulted in Safe mode.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve returns the model identifier for a schema name. In Safe mode the
// boolean is false when the name is not registered; that is the normal
// outcome for unknown or unsupported schemas, not a failure. In Unsafe mode
// the identifier is always derived and the boolean is always true.
func (r *Resolver) Resolve(name string, mode Mode) (ModelID, bool) {
	if mode == Unsafe {
		return DeriveID(name), true
	}

	model, ok := r.registry.Lookup(name)
	if !ok {
		return "", false
	}
	return model.ID, true
}

// DeriveID computes the model identifier for a schema name: DiscardPrefix is
// dropped, every remaining segment is title-cased and the segments are joined
// under RootNamespace.
//
//	DeriveID("io.k8s.api.apps.v1.Deployment") // "Models.Api.Apps.V1.Deployment"
func DeriveID(name string) ModelID {
	rest := name
	if rest == DiscardPrefix {
		rest = ""
	} else {
		rest = strings.TrimPrefix(rest, DiscardPrefix+segmentSeparator)
	}

	components := []string{RootNamespace}
	if rest != "" {
		// A Caser keeps state between calls, so each derivation gets its own.
		caser := cases.Title(language.Und, cases.NoLower)
		for _, segment := range strings.Split(rest, segmentSeparator) {
			components = append(components, caser.String(segment))
		}
	}

	return ModelID(strings.Join(components, segmentSeparator))
}
