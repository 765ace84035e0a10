package output

import "strings"

// RedactedValue is the placeholder used for masked secret data.
const RedactedValue = "***REDACTED***"

// lastAppliedAnnotation holds the full manifest, including Secret data, of
// objects managed with kubectl apply.
const lastAppliedAnnotation = "kubectl.kubernetes.io/last-applied-configuration"

// sensitiveAnnotations are masked on Secrets in addition to their data.
var sensitiveAnnotations = map[string]bool{
	lastAppliedAnnotation:                true,
	"kubernetes.io/service-account.uid":  true,
	"kubernetes.io/service-account.name": true,
}

// IsSecretKind reports whether kind names a Secret.
func IsSecretKind(kind string) bool {
	return strings.EqualFold(kind, "Secret")
}

// MaskSecrets redacts the data of obj in place when it is a Secret. Items of a
// list have no kind of their own, so callers pass the kind explicitly.
func MaskSecrets(obj map[string]any, kind string) {
	if obj == nil || !IsSecretKind(kind) {
		return
	}

	for _, field := range []string{"data", "stringData"} {
		data, ok := obj[field].(map[string]any)
		if !ok {
			continue
		}
		for key := range data {
			data[key] = RedactedValue
		}
	}

	metadata, ok := obj["metadata"].(map[string]any)
	if !ok {
		return
	}
	annotations, ok := metadata["annotations"].(map[string]any)
	if !ok {
		return
	}
	for key := range annotations {
		if sensitiveAnnotations[key] {
			annotations[key] = RedactedValue
		}
	}
}
