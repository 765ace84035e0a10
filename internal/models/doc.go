// Package models maps Kubernetes schema names onto client-side model
// identifiers and decodes API payloads into those models.
//
// A schema name is the fully-qualified, dot-separated identifier a type carries
// in the Kubernetes OpenAPI document, such as "io.k8s.api.core.v1.Pod". The
// package holds a static Registry of known names, generated from a swagger
// document by the gen-registry command, and a Resolver with two modes:
//
//   - Safe (the default) only returns identifiers present in the registry. A
//     miss is a normal outcome meaning the schema is unknown to this client.
//   - Unsafe always derives an identifier from the name itself, without
//     consulting the registry. It is meant for speculative or partially
//     generated code paths.
//
// Both modes use the same textual transform, so a registered name resolves to
// the same identifier either way:
//
//	r := models.NewResolver(nil)
//	id, ok := r.Resolve("io.k8s.api.core.v1.Pod", models.Safe)
//	// id == "Models.Api.Core.V1.Pod", ok == true
//
// SchemeDecoder turns response bodies into typed values using the client-go
// scheme for registered models and falls back to unstructured objects for
// everything else.
package models
