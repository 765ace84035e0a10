package output

// Default limits for output processing.
const (
	// DefaultMaxItems is the default maximum number of list items returned.
	DefaultMaxItems = 100

	// DefaultMaxResponseBytes is the default limit on the encoded response size (512KB).
	DefaultMaxResponseBytes = 512 * 1024

	// AbsoluteMaxItems caps MaxItems regardless of configuration.
	AbsoluteMaxItems = 1000

	// AbsoluteMaxResponseBytes caps MaxResponseBytes regardless of configuration (2MB).
	AbsoluteMaxResponseBytes = 2 * 1024 * 1024
)

// Config holds configuration for output processing.
type Config struct {
	// MaxItems limits the items of list responses.
	// Default: 100, Absolute max: 1000
	MaxItems int `json:"maxItems" yaml:"maxItems"`

	// MaxResponseBytes limits the encoded size of a response.
	// Default: 512KB, Absolute max: 2MB
	MaxResponseBytes int `json:"maxResponseBytes" yaml:"maxResponseBytes"`

	// SlimOutput enables removal of ExcludedFields.
	SlimOutput bool `json:"slimOutput" yaml:"slimOutput"`

	// MaskSecrets replaces Secret data with RedactedValue.
	MaskSecrets bool `json:"maskSecrets" yaml:"maskSecrets"`

	// ExcludedFields lists dotted paths removed in slim mode. A "[*]" suffix
	// on a segment applies the rest of the path to every array element.
	ExcludedFields []string `json:"excludedFields,omitempty" yaml:"excludedFields,omitempty"`
}

// DefaultConfig returns a Config with all transformations enabled.
func DefaultConfig() *Config {
	return &Config{
		MaxItems:         DefaultMaxItems,
		MaxResponseBytes: DefaultMaxResponseBytes,
		SlimOutput:       true,
		MaskSecrets:      true,
		ExcludedFields:   DefaultExcludedFields(),
	}
}

// DefaultExcludedFields returns the fields removed in slim mode by default.
func DefaultExcludedFields() []string {
	return []string{
		"metadata.managedFields",
		"metadata.annotations.kubectl.kubernetes.io/last-applied-configuration",
		"metadata.selfLink",
		"status.conditions[*].lastProbeTime",
		"status.conditions[*].lastHeartbeatTime",
	}
}

// Validate returns a copy of c with out-of-range limits replaced by defaults
// or capped at the absolute maximums.
func (c *Config) Validate() *Config {
	validated := *c

	if validated.MaxItems <= 0 {
		validated.MaxItems = DefaultMaxItems
	}
	if validated.MaxResponseBytes <= 0 {
		validated.MaxResponseBytes = DefaultMaxResponseBytes
	}
	validated.MaxItems = min(validated.MaxItems, AbsoluteMaxItems)
	validated.MaxResponseBytes = min(validated.MaxResponseBytes, AbsoluteMaxResponseBytes)

	if validated.SlimOutput && len(validated.ExcludedFields) == 0 {
		validated.ExcludedFields = DefaultExcludedFields()
	}
	validated.ExcludedFields = append([]string(nil), validated.ExcludedFields...)

	return &validated
}

// Warning describes a change made to a response that the caller should know
// about.
type Warning struct {
	// Shown is the number of items returned
	Shown int `json:"shown"`

	// Total is the number of items before truncation
	Total int `json:"total"`

	// Message is a human-readable explanation
	Message string `json:"message"`
}
