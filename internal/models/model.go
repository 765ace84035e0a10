package models

import "k8s.io/apimachinery/pkg/runtime/schema"

// ModelID identifies a client-side model type, e.g. "Models.Api.Core.V1.Pod".
type ModelID string

// String implements fmt.Stringer.
func (id ModelID) String() string {
	return string(id)
}

// Model is one registry entry.
type Model struct {
	// ID is the derived model identifier.
	ID ModelID

	// GroupVersionKind is set for top-level API kinds and empty for nested
	// types such as PodSpec, which have no kind of their own.
	GroupVersionKind schema.GroupVersionKind
}

// Mode selects how strictly Resolve treats unknown schema names.
type Mode int

const (
	// Safe only returns identifiers present in the registry.
	Safe Mode = iota

	// Unsafe derives an identifier for any name without checking the registry.
	Unsafe
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}
