// Package gen builds the static model registry from a Kubernetes swagger 2.0
// document. It reads every definition name together with its
// x-kubernetes-group-version-kind extension and renders the Go source of the
// registry consumed by package models.
package gen
