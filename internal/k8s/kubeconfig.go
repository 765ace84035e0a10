package k8s

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ServerFromKubeconfig builds a Server from a kubeconfig file. An empty path
// uses the standard loading rules ($KUBECONFIG, then ~/.kube/config); an
// empty context selects the current context.
func ServerFromKubeconfig(path, context string) (Server, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		rules.ExplicitPath = path
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: context}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return Server{}, &ConfigurationError{Reason: "loading kubeconfig", Err: err}
	}

	return ServerFromRESTConfig(config)
}

// ServerFromInCluster builds a Server from the pod's service account.
func ServerFromInCluster() (Server, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		return Server{}, &ConfigurationError{Reason: "loading in-cluster config", Err: err}
	}

	return ServerFromRESTConfig(config)
}

// ServerFromRESTConfig converts a client-go rest.Config. Files referenced by
// the config are read eagerly. Credentials other than bearer tokens and
// client certificates are rejected.
func ServerFromRESTConfig(config *rest.Config) (Server, error) {
	if config == nil {
		return Server{}, &ConfigurationError{Reason: "rest config is nil", Err: ErrNoServer}
	}

	switch {
	case config.ExecProvider != nil:
		return Server{}, &ConfigurationError{Reason: "exec credential plugins are not supported", Err: ErrUnsupportedAuth}
	case config.AuthProvider != nil:
		return Server{}, &ConfigurationError{Reason: fmt.Sprintf("auth provider %q is not supported", config.AuthProvider.Name), Err: ErrUnsupportedAuth}
	case config.Username != "" || config.Password != "":
		return Server{}, &ConfigurationError{Reason: "basic auth is not supported", Err: ErrUnsupportedAuth}
	}

	host := config.Host
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}

	server := Server{
		URL:                   host,
		InsecureSkipTLSVerify: config.Insecure,
		Auth:                  NoAuth{},
	}

	var err error
	if !config.Insecure {
		if server.CACert, err = dataOrFile(config.CAData, config.CAFile); err != nil {
			return Server{}, &ConfigurationError{Reason: "reading CA certificate", Err: err}
		}
	}

	token := config.BearerToken
	if token == "" && config.BearerTokenFile != "" {
		raw, err := os.ReadFile(config.BearerTokenFile)
		if err != nil {
			return Server{}, &ConfigurationError{Reason: "reading bearer token", Err: err}
		}
		token = string(bytes.TrimSpace(raw))
	}

	certificate, err := dataOrFile(config.CertData, config.CertFile)
	if err != nil {
		return Server{}, &ConfigurationError{Reason: "reading client certificate", Err: err}
	}
	key, err := dataOrFile(config.KeyData, config.KeyFile)
	if err != nil {
		return Server{}, &ConfigurationError{Reason: "reading client key", Err: err}
	}

	switch {
	case token != "":
		server.Auth = TokenAuth{Token: token}
	case len(certificate) > 0 || len(key) > 0:
		server.Auth = CertificateAuth{Certificate: certificate, Key: key}
	}

	if err := server.Validate(); err != nil {
		return Server{}, err
	}
	return server, nil
}

func dataOrFile(data []byte, path string) ([]byte, error) {
	if len(data) > 0 || path == "" {
		return data, nil
	}
	return os.ReadFile(path)
}
