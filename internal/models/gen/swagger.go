package gen

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

// gvkExtension is the vendor extension Kubernetes uses to tag top-level kinds.
const gvkExtension = "x-kubernetes-group-version-kind"

// ErrNotSwagger is returned for documents without a swagger version.
var ErrNotSwagger = errors.New("document is not a swagger 2.0 document")

type groupVersionKind struct {
	Group   string `json:"group"`
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

// LoadModels parses a swagger document, JSON or YAML, and returns a registry
// entry for every definition it declares.
func LoadModels(raw []byte) (map[string]models.Model, error) {
	data, err := toJSON(raw)
	if err != nil {
		return nil, err
	}

	var doc openapi2.T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding swagger document: %w", err)
	}
	if doc.Swagger == "" {
		return nil, ErrNotSwagger
	}

	result := make(map[string]models.Model, len(doc.Definitions))
	for name, ref := range doc.Definitions {
		model := models.Model{ID: models.DeriveID(name)}

		if ref != nil && ref.Value != nil {
			gvk, err := firstGroupVersionKind(ref.Value.Extensions[gvkExtension])
			if err != nil {
				return nil, fmt.Errorf("definition %s: %w", name, err)
			}
			model.GroupVersionKind = gvk
		}

		result[name] = model
	}

	return result, nil
}

// toJSON converts YAML input to JSON so schema extensions are decoded by the
// same code path for both encodings.
func toJSON(raw []byte) ([]byte, error) {
	if json.Valid(raw) {
		return raw, nil
	}

	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decoding swagger document: %w", err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("converting swagger document to json: %w", err)
	}
	return data, nil
}

// firstGroupVersionKind decodes the value of the group-version-kind
// extension. Types served by several groups (meta/v1 WatchEvent, DeleteOptions)
// list every group; the first entry is the canonical one.
func firstGroupVersionKind(ext any) (schema.GroupVersionKind, error) {
	if ext == nil {
		return schema.GroupVersionKind{}, nil
	}

	// The extension arrives either as raw JSON or as an already decoded
	// value depending on the decoder, re-encoding handles both.
	data, err := json.Marshal(ext)
	if err != nil {
		return schema.GroupVersionKind{}, fmt.Errorf("encoding %s: %w", gvkExtension, err)
	}

	var gvks []groupVersionKind
	if err := json.Unmarshal(data, &gvks); err != nil {
		return schema.GroupVersionKind{}, fmt.Errorf("decoding %s: %w", gvkExtension, err)
	}
	if len(gvks) == 0 {
		return schema.GroupVersionKind{}, nil
	}

	return schema.GroupVersionKind{
		Group:   gvks[0].Group,
		Version: gvks[0].Version,
		Kind:    gvks[0].Kind,
	}, nil
}
