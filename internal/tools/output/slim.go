package output

import "strings"

// SlimResource removes each of fields from obj in place.
//
// Paths are dotted. Annotation and label keys contain dots themselves, so once
// a segment names "annotations" or "labels" the rest of the path is taken as
// one key. A "[*]" suffix applies the rest of the path to every element of an
// array:
//
//	"metadata.managedFields"
//	"metadata.annotations.kubectl.kubernetes.io/last-applied-configuration"
//	"status.conditions[*].lastProbeTime"
func SlimResource(obj map[string]any, fields []string) {
	for _, field := range fields {
		if field != "" {
			removeField(obj, splitPath(field))
		}
	}
}

func splitPath(path string) []string {
	parts := strings.Split(path, ".")
	for i, part := range parts[:len(parts)-1] {
		if part == "annotations" || part == "labels" {
			return append(parts[:i+1], strings.Join(parts[i+1:], "."))
		}
	}
	return parts
}

func removeField(obj map[string]any, parts []string) {
	if obj == nil || len(parts) == 0 {
		return
	}

	head, rest := parts[0], parts[1:]

	if name, ok := strings.CutSuffix(head, "[*]"); ok {
		elements, _ := obj[name].([]any)
		if len(rest) == 0 {
			return
		}
		for _, element := range elements {
			if m, ok := element.(map[string]any); ok {
				removeField(m, rest)
			}
		}
		return
	}

	if len(rest) == 0 {
		delete(obj, head)
		return
	}

	next, _ := obj[head].(map[string]any)
	removeField(next, rest)
	if next != nil && len(next) == 0 && head == "annotations" {
		delete(obj, head)
	}
}
