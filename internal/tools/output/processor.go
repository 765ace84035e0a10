package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	utiljson "k8s.io/apimachinery/pkg/util/json"
)

// ErrResponseTooLarge is returned when a response exceeds the size limit and
// cannot be trimmed.
var ErrResponseTooLarge = errors.New("response too large")

// Processor applies output transformations based on configuration.
type Processor struct {
	config *Config
}

// NewProcessor creates a new output processor. A nil config selects DefaultConfig.
func NewProcessor(config *Config) *Processor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Processor{config: config.Validate()}
}

// Config returns the validated configuration.
func (p *Processor) Config() *Config {
	return p.config
}

// Result is a processed response.
type Result struct {
	// Object is the JSON-compatible response: maps, slices and scalars
	Object any

	// Warnings lists the truncations applied
	Warnings []Warning

	// SecretsMasked reports whether any Secret data was redacted
	SecretsMasked bool
}

// Process converts obj, a typed model or any JSON-encodable value, into its
// generic JSON form and applies the configured transformations. obj itself is
// never modified.
func (p *Processor) Process(obj any) (*Result, error) {
	generic, err := toGeneric(obj)
	if err != nil {
		return nil, err
	}

	result := &Result{Object: generic}
	m, ok := generic.(map[string]any)
	if !ok {
		return result, p.checkSize(result)
	}

	kind, _ := m["kind"].(string)
	items, isList := m["items"].([]any)
	if !isList {
		result.SecretsMasked = p.processObject(m, kind)
		return result, p.checkSize(result)
	}

	itemKind := strings.TrimSuffix(kind, "List")
	for _, item := range items {
		if im, ok := item.(map[string]any); ok {
			// Items of typed lists carry no kind; fall back to the list's.
			k, _ := im["kind"].(string)
			if k == "" {
				k = itemKind
			}
			if p.processObject(im, k) {
				result.SecretsMasked = true
			}
		}
	}

	truncated, warning := TruncateItems(items, p.config.MaxItems)
	m["items"] = truncated
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}

	return result, p.fitList(result, m, len(items))
}

// processObject masks and slims one object. It reports whether Secret data
// was masked.
func (p *Processor) processObject(obj map[string]any, kind string) bool {
	masked := false
	if p.config.MaskSecrets && IsSecretKind(kind) {
		MaskSecrets(obj, kind)
		masked = true
	}
	if p.config.SlimOutput {
		SlimResource(obj, p.config.ExcludedFields)
	}
	return masked
}

// fitList halves the items of a list until the response fits the size limit.
func (p *Processor) fitList(result *Result, list map[string]any, total int) error {
	for {
		size, err := encodedSize(result.Object)
		if err != nil {
			return err
		}
		if size <= p.config.MaxResponseBytes {
			return nil
		}

		items, _ := list["items"].([]any)
		if len(items) <= 1 {
			return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrResponseTooLarge, size, p.config.MaxResponseBytes)
		}

		items = items[:len(items)/2]
		list["items"] = items
		result.Warnings = append(result.Warnings, Warning{
			Shown: len(items),
			Total: total,
			Message: fmt.Sprintf("Output trimmed to %d of %d items to stay under %d bytes. "+
				"Use limit and continue to page through the results.", len(items), total, p.config.MaxResponseBytes),
		})
	}
}

func (p *Processor) checkSize(result *Result) error {
	size, err := encodedSize(result.Object)
	if err != nil {
		return err
	}
	if size > p.config.MaxResponseBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrResponseTooLarge, size, p.config.MaxResponseBytes)
	}
	return nil
}

// toGeneric round-trips obj through JSON so typed models, Unstructured
// objects and plain values share one representation.
func toGeneric(obj any) (any, error) {
	if obj == nil {
		return nil, nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	var generic any
	if err := utiljson.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return generic, nil
}

func encodedSize(obj any) (int, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return 0, fmt.Errorf("encoding response: %w", err)
	}
	return len(data), nil
}
