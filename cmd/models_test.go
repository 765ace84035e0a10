package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunModels(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		kindsOnly bool
		want      []string
		notWant   []string
	}{
		{
			name: "all entries",
			want: []string{
				"io.k8s.api.apps.v1.Deployment", "apps/v1", "Deployment",
				"io.k8s.api.apps.v1.DeploymentSpec",
				"io.k8s.api.core.v1.Pod",
			},
		},
		{
			name:    "filter",
			filter:  "apps.v1",
			want:    []string{"io.k8s.api.apps.v1.Deployment", "io.k8s.api.apps.v1.DeploymentSpec"},
			notWant: []string{"io.k8s.api.core.v1.Pod"},
		},
		{
			name:      "kinds only",
			kindsOnly: true,
			want:      []string{"io.k8s.api.apps.v1.Deployment", "io.k8s.api.core.v1.Pod"},
			notWant:   []string{"DeploymentSpec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runModels(&out, testRegistry(), tt.filter, tt.kindsOnly))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.NotEmpty(t, lines)
			assert.True(t, strings.HasPrefix(lines[0], "SCHEMA"), "header first, got %q", lines[0])

			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out.String(), notWant)
			}
		})
	}
}

func TestRunModelsSortedByName(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runModels(&out, testRegistry(), "", false))

	text := out.String()
	assert.Less(t, strings.Index(text, "io.k8s.api.apps.v1.Deployment "), strings.Index(text, "io.k8s.api.core.v1.Pod"))
}

func TestRunModelByID(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runModelByID(&out, testRegistry(), "Models.Api.Core.V1.Pod"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "io.k8s.api.core.v1.Pod")
	assert.Contains(t, lines[1], "Pod")

	err := runModelByID(&out, testRegistry(), "Models.Api.Core.V1.Missing")
	assert.ErrorContains(t, err, "Models.Api.Core.V1.Missing")
}
