// Package k8s implements the request/response core used to talk to a
// Kubernetes API server.
//
// A Request describes one API call declaratively: method, path, ordered
// query parameters, optional body and content type, and the schema name the
// response decodes into. A Server describes the endpoint and its credential.
// The Dispatcher turns both into an HTTP exchange:
//
//   - headers are built from the request and the server's Auth variant
//   - TLS options come from client-go's rest.TLSConfigFor
//   - synchronous calls decode the body through a models.Decoder
//   - streaming calls (watches) run on their own goroutine, frame the body
//     into lines with a linebuffer.Buffer and push them onto a channel
//
// Example usage:
//
//	dispatcher := k8s.NewDispatcher(k8s.WithDefaultServer(server))
//
//	result, err := dispatcher.Run(ctx, k8s.Request{
//		Method:         k8s.MethodGet,
//		Path:           "/api/v1/namespaces/default/pods/web-0",
//		ResponseSchema: "io.k8s.api.core.v1.Pod",
//	})
//	if apierrors.IsNotFound(err) {
//		// handle missing pod
//	}
//
//	lines := make(chan k8s.Line)
//	result, err = dispatcher.Run(ctx, k8s.Request{
//		Method: k8s.MethodGet,
//		Path:   "/api/v1/pods",
//		Query:  []k8s.QueryParam{{Name: "watch", Value: "true"}},
//	}, k8s.StreamTo(lines))
//	for line := range lines {
//		event, err := k8s.DecodeWatchEvent(line.Text, "io.k8s.api.core.v1.Pod", decoder)
//		...
//	}
//
// No retries are performed; every failure is returned to the caller as one
// of the error types in errors.go.
package k8s
