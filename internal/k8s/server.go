package k8s

import (
	"fmt"
	"net/url"
)

// Auth is the credential presented to the API server. It is a closed set:
// NoAuth, TokenAuth and CertificateAuth. A nil Auth behaves like NoAuth.
type Auth interface {
	isAuth()
}

// NoAuth sends no credential.
type NoAuth struct{}

// TokenAuth sends a bearer token in the Authorization header.
type TokenAuth struct {
	Token string
}

// CertificateAuth presents a TLS client certificate. Both fields are PEM.
type CertificateAuth struct {
	Certificate []byte
	Key         []byte
}

func (NoAuth) isAuth()          {}
func (TokenAuth) isAuth()       {}
func (CertificateAuth) isAuth() {}

// Server describes an API server endpoint and how to authenticate with it.
type Server struct {
	// URL is the base endpoint, for example "https://10.0.0.1:6443".
	URL string

	Auth Auth

	// InsecureSkipTLSVerify disables verification of the server certificate.
	InsecureSkipTLSVerify bool

	// CACert is a PEM bundle of trusted roots. Ignored when
	// InsecureSkipTLSVerify is set.
	CACert []byte
}

// Validate checks that the server URL is an absolute http(s) URL.
func (s Server) Validate() error {
	if s.URL == "" {
		return &ConfigurationError{Reason: "server URL is empty", Err: ErrInvalidServerURL}
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return &ConfigurationError{Reason: "parsing server URL", Err: fmt.Errorf("%w: %v", ErrInvalidServerURL, err)}
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return &ConfigurationError{
			Reason: fmt.Sprintf("server URL %q must be an absolute http or https URL", s.URL),
			Err:    ErrInvalidServerURL,
		}
	}
	return nil
}

// AuthKind returns a short name for the auth variant, for logs.
func (s Server) AuthKind() string {
	switch s.Auth.(type) {
	case nil, NoAuth:
		return "none"
	case TokenAuth:
		return "token"
	case CertificateAuth:
		return "certificate"
	default:
		return "unsupported"
	}
}
