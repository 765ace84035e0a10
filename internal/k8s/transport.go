package k8s

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"k8s.io/client-go/rest"
)

// applyHeaders sets the headers every call carries: JSON acceptance, the
// content type when the request has one, and the bearer token for TokenAuth.
func applyHeaders(httpReq *http.Request, req Request, auth Auth) error {
	httpReq.Header.Set("Accept", ContentTypeJSON)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	switch a := auth.(type) {
	case nil, NoAuth, CertificateAuth:
	case TokenAuth:
		(&oauth2.Token{AccessToken: a.Token}).SetAuthHeader(httpReq)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedAuth, auth)
	}
	return nil
}

// tlsConfigFor builds the TLS options for a server. A nil config with a nil
// error means the transport defaults apply.
func tlsConfigFor(server Server) (*tls.Config, error) {
	cfg := &rest.Config{Host: server.URL}

	// client-go refuses a CA together with the insecure flag.
	cfg.Insecure = server.InsecureSkipTLSVerify
	if !server.InsecureSkipTLSVerify {
		cfg.CAData = server.CACert
	}

	switch a := server.Auth.(type) {
	case nil, NoAuth, TokenAuth:
	case CertificateAuth:
		// client-go silently ignores a certificate without its key.
		if len(a.Certificate) == 0 || len(a.Key) == 0 {
			return nil, errors.New("certificate auth requires both a certificate and a key")
		}
		cfg.CertData = a.Certificate
		cfg.KeyData = a.Key
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAuth, server.Auth)
	}

	tlsConfig, err := rest.TLSConfigFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("building TLS config: %w", err)
	}
	return tlsConfig, nil
}

// newTransport returns a transport owned by a single call. Nothing is pooled
// across calls; the caller closes idle connections when the call ends.
func newTransport(tlsConfig *tls.Config) *http.Transport {
	base, _ := http.DefaultTransport.(*http.Transport)
	var t *http.Transport
	if base == nil {
		t = &http.Transport{}
	} else {
		t = base.Clone()
	}

	t.DialContext = (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = 10 * time.Second
	t.ExpectContinueTimeout = 1 * time.Second
	t.MaxIdleConnsPerHost = 1
	t.ForceAttemptHTTP2 = true
	if tlsConfig != nil {
		t.TLSClientConfig = tlsConfig
	}
	return t
}
