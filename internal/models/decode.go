package models

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
)

// Decoder turns a response body into a typed value for a schema name.
type Decoder interface {
	Decode(data []byte, schemaName string) (any, error)
}

// SchemeDecoder decodes registered models into their typed client-go
// representation. Schema names without a registered top-level kind decode to
// *unstructured.Unstructured when the payload carries a kind, and to a plain
// JSON value otherwise.
type SchemeDecoder struct {
	registry *Registry
	scheme   *runtime.Scheme
}

// NewSchemeDecoder returns a SchemeDecoder. A nil registry selects Default and
// a nil scheme selects the client-go scheme.
func NewSchemeDecoder(registry *Registry, scheme *runtime.Scheme) *SchemeDecoder {
	if registry == nil {
		registry = Default
	}
	if scheme == nil {
		scheme = clientgoscheme.Scheme
	}
	return &SchemeDecoder{registry: registry, scheme: scheme}
}

// Decode implements Decoder. An empty body decodes to nil.
func (d *SchemeDecoder) Decode(data []byte, schemaName string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if schemaName == "" {
		return decodeGeneric(data)
	}

	model, ok := d.registry.Lookup(schemaName)
	if ok && !model.GroupVersionKind.Empty() {
		obj, err := d.scheme.New(model.GroupVersionKind)
		switch {
		case err == nil:
			if err := utiljson.Unmarshal(data, obj); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", model.ID, err)
			}
			if obj.GetObjectKind().GroupVersionKind().Empty() {
				obj.GetObjectKind().SetGroupVersionKind(model.GroupVersionKind)
			}
			return obj, nil
		case !runtime.IsNotRegisteredError(err):
			return nil, fmt.Errorf("creating %s: %w", model.ID, err)
		}
	}

	return decodeUnstructured(data)
}

// decodeUnstructured decodes data into an Unstructured object when it looks
// like a Kubernetes object and into a generic value otherwise.
func decodeUnstructured(data []byte) (any, error) {
	value, err := decodeGeneric(data)
	if err != nil {
		return nil, err
	}
	if object, ok := value.(map[string]interface{}); ok {
		if _, hasKind := object["kind"]; hasKind {
			return &unstructured.Unstructured{Object: object}, nil
		}
	}
	return value, nil
}

func decodeGeneric(data []byte) (any, error) {
	var value interface{}
	if err := utiljson.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return value, nil
}
