package k8s

import (
	"errors"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

// statusSchema is the schema of the object carried by ERROR watch events.
const statusSchema = "io.k8s.apimachinery.pkg.apis.meta.v1.Status"

// WatchEvent is a decoded watch stream record.
type WatchEvent struct {
	Type   watch.EventType `json:"type"`
	Object any             `json:"object"`
}

// DecodeWatchEvent decodes one stream line of the form
// {"type": "...", "object": {...}}. The object is decoded with schemaName,
// except for ERROR events whose object is always a Status.
func DecodeWatchEvent(line, schemaName string, decoder models.Decoder) (*WatchEvent, error) {
	if strings.TrimSpace(line) == "" {
		return nil, &DecodeError{Schema: schemaName, Err: errors.New("empty watch event")}
	}

	var raw metav1.WatchEvent
	if err := utiljson.Unmarshal([]byte(line), &raw); err != nil {
		return nil, &DecodeError{Schema: schemaName, Err: fmt.Errorf("parsing watch event: %w", err)}
	}
	if raw.Type == "" {
		return nil, &DecodeError{Schema: schemaName, Err: errors.New("watch event has no type")}
	}

	eventType := watch.EventType(raw.Type)
	schema := schemaName
	if eventType == watch.Error {
		schema = statusSchema
	}

	object, err := decoder.Decode(raw.Object.Raw, schema)
	if err != nil {
		return nil, &DecodeError{Schema: schema, Err: err}
	}

	return &WatchEvent{Type: eventType, Object: object}, nil
}
