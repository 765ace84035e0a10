package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

const swaggerJSON = `{
  "swagger": "2.0",
  "info": {"title": "Kubernetes", "version": "v1.34.0"},
  "paths": {},
  "definitions": {
    "io.k8s.api.core.v1.Pod": {
      "type": "object",
      "x-kubernetes-group-version-kind": [{"group": "", "kind": "Pod", "version": "v1"}]
    },
    "io.k8s.api.core.v1.PodSpec": {
      "type": "object"
    },
    "io.k8s.apimachinery.pkg.apis.meta.v1.WatchEvent": {
      "type": "object",
      "x-kubernetes-group-version-kind": [
        {"group": "", "kind": "WatchEvent", "version": "v1"},
        {"group": "apps", "kind": "WatchEvent", "version": "v1"}
      ]
    }
  }
}`

const swaggerYAML = `swagger: "2.0"
info:
  title: Kubernetes
  version: v1.34.0
paths: {}
definitions:
  io.k8s.api.apps.v1.Deployment:
    type: object
    x-kubernetes-group-version-kind:
      - group: apps
        kind: Deployment
        version: v1
`

func TestLoadModels(t *testing.T) {
	t.Run("json document", func(t *testing.T) {
		loaded, err := LoadModels([]byte(swaggerJSON))
		require.NoError(t, err)
		require.Len(t, loaded, 3)

		assert.Equal(t, models.Model{
			ID:               "Models.Api.Core.V1.Pod",
			GroupVersionKind: schema.GroupVersionKind{Version: "v1", Kind: "Pod"},
		}, loaded["io.k8s.api.core.v1.Pod"])

		assert.Equal(t, models.Model{ID: "Models.Api.Core.V1.PodSpec"}, loaded["io.k8s.api.core.v1.PodSpec"])

		watch := loaded["io.k8s.apimachinery.pkg.apis.meta.v1.WatchEvent"]
		assert.Equal(t, "", watch.GroupVersionKind.Group, "first group wins")
		assert.Equal(t, "WatchEvent", watch.GroupVersionKind.Kind)
	})

	t.Run("yaml document", func(t *testing.T) {
		loaded, err := LoadModels([]byte(swaggerYAML))
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		assert.Equal(t, schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"},
			loaded["io.k8s.api.apps.v1.Deployment"].GroupVersionKind)
	})

	t.Run("not a swagger document", func(t *testing.T) {
		_, err := LoadModels([]byte(`{"openapi": "3.0.0"}`))
		assert.ErrorIs(t, err, ErrNotSwagger)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := LoadModels([]byte("{ this is: [not valid"))
		assert.Error(t, err)
	})
}
