package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

// Header marks rendered files as generated.
const Header = "// Code generated by kube-dispatch gen-registry. DO NOT EDIT."

var registryTemplate = template.Must(template.New("registry").Parse(`{{ .Header }}

package {{ .Package }}

{{ if .NeedsSchema }}import "k8s.io/apimachinery/pkg/runtime/schema"{{ end }}

var generatedModels = map[string]Model{
{{- range .Entries }}
	{{ printf "%q" .Name }}: {
		ID: {{ printf "%q" .Model.ID }},
		{{- if not .Model.GroupVersionKind.Empty }}
		GroupVersionKind: schema.GroupVersionKind{Group: {{ printf "%q" .Model.GroupVersionKind.Group }}, Version: {{ printf "%q" .Model.GroupVersionKind.Version }}, Kind: {{ printf "%q" .Model.GroupVersionKind.Kind }}},
		{{- end }}
	},
{{- end }}
}
`))

type entry struct {
	Name  string
	Model models.Model
}

// Render returns the gofmt-ed Go source declaring generatedModels in package
// pkg, with entries sorted by schema name.
func Render(pkg string, registry map[string]models.Model) ([]byte, error) {
	entries := make([]entry, 0, len(registry))
	needsSchema := false
	for name, model := range registry {
		entries = append(entries, entry{Name: name, Model: model})
		if !model.GroupVersionKind.Empty() {
			needsSchema = true
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf bytes.Buffer
	err := registryTemplate.Execute(&buf, struct {
		Header      string
		Package     string
		NeedsSchema bool
		Entries     []entry
	}{
		Header:      Header,
		Package:     pkg,
		NeedsSchema: needsSchema,
		Entries:     entries,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering registry: %w", err)
	}

	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting registry: %w", err)
	}
	return source, nil
}
