package k8s

import "time"

const (
	// Default timeouts
	DefaultRequestTimeout    = 30 * time.Second
	DefaultStreamIdleTimeout = time.Hour

	// MIME types
	ContentTypeJSON           = "application/json"
	ContentTypeMergePatch     = "application/merge-patch+json"
	ContentTypeStrategicMerge = "application/strategic-merge-patch+json"
	ContentTypeJSONPatch      = "application/json-patch+json"
	ContentTypeApplyPatch     = "application/apply-patch+yaml"
)
