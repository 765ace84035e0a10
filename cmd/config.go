package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/logging"
)

// envPrefix prefixes every environment variable, e.g. KUBE_DISPATCH_LOG_LEVEL.
const envPrefix = "KUBE_DISPATCH"

// Configuration keys. Flags, environment variables and the config file share
// these names.
const (
	keyConfig            = "config"
	keyLogFormat         = "log-format"
	keyLogLevel          = "log-level"
	keyServer            = "server"
	keyToken             = "token"
	keyTokenFile         = "token-file"
	keyClientCert        = "client-cert"
	keyClientKey         = "client-key"
	keyCACert            = "ca-cert"
	keyInsecure          = "insecure-skip-tls-verify"
	keyKubeconfig        = "kubeconfig"
	keyContext           = "context"
	keyInCluster         = "in-cluster"
	keyRequestTimeout    = "request-timeout"
	keyStreamIdleTimeout = "stream-idle-timeout"
)

// ConnectionConfig describes how to reach the default API server.
type ConnectionConfig struct {
	// Explicit server settings; file fields hold paths
	Server     string
	Token      string
	TokenFile  string
	ClientCert string
	ClientKey  string
	CACert     string
	Insecure   bool

	// Kubeconfig settings, used when Server is empty
	Kubeconfig string
	Context    string

	// InCluster selects the pod service account, used when Server is empty
	InCluster bool

	RequestTimeout    time.Duration
	StreamIdleTimeout time.Duration
}

func addConnectionFlags(flags *pflag.FlagSet) {
	flags.String(keyServer, "", "API server URL; overrides kubeconfig and in-cluster settings")
	flags.String(keyToken, "", "Bearer token for --server")
	flags.String(keyTokenFile, "", "File holding the bearer token for --server")
	flags.String(keyClientCert, "", "Client certificate file (PEM) for --server")
	flags.String(keyClientKey, "", "Client key file (PEM) for --server")
	flags.String(keyCACert, "", "CA certificate file (PEM) trusted for --server")
	flags.Bool(keyInsecure, false, "Skip TLS certificate verification (insecure)")
	flags.String(keyKubeconfig, "", "Path to the kubeconfig file (default: $KUBECONFIG or ~/.kube/config)")
	flags.String(keyContext, "", "Kubeconfig context (default: current context)")
	flags.Bool(keyInCluster, false, "Use the in-cluster service account")
	flags.Duration(keyRequestTimeout, k8s.DefaultRequestTimeout, "Timeout for non-streaming requests (0 disables)")
	flags.Duration(keyStreamIdleTimeout, k8s.DefaultStreamIdleTimeout, "Close streams that stay silent this long (0 disables)")
}

// newViper merges flags, KUBE_DISPATCH_* environment variables and the
// optional config file, in that order of precedence.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return v, nil
}

// loadConnectionConfig reads the connection settings from v.
func loadConnectionConfig(v *viper.Viper) ConnectionConfig {
	return ConnectionConfig{
		Server:            v.GetString(keyServer),
		Token:             v.GetString(keyToken),
		TokenFile:         v.GetString(keyTokenFile),
		ClientCert:        v.GetString(keyClientCert),
		ClientKey:         v.GetString(keyClientKey),
		CACert:            v.GetString(keyCACert),
		Insecure:          v.GetBool(keyInsecure),
		Kubeconfig:        v.GetString(keyKubeconfig),
		Context:           v.GetString(keyContext),
		InCluster:         v.GetBool(keyInCluster),
		RequestTimeout:    v.GetDuration(keyRequestTimeout),
		StreamIdleTimeout: v.GetDuration(keyStreamIdleTimeout),
	}
}

// DefaultServer builds the dispatcher's default server: an explicit --server
// first, then the in-cluster service account when requested, then the
// kubeconfig. A nil server with a nil error means none is configured; calls
// must then name their own server.
func (c ConnectionConfig) DefaultServer() (*k8s.Server, error) {
	switch {
	case c.Server != "":
		return c.explicitServer()
	case c.InCluster:
		server, err := k8s.ServerFromInCluster()
		if err != nil {
			return nil, err
		}
		return &server, nil
	default:
		server, err := k8s.ServerFromKubeconfig(c.Kubeconfig, c.Context)
		if err != nil {
			// A missing default kubeconfig is not an error unless one was asked for.
			if c.Kubeconfig != "" || c.Context != "" {
				return nil, err
			}
			slog.Debug("No kubeconfig available, running without a default server", logging.Err(err))
			return nil, nil
		}
		return &server, nil
	}
}

func (c ConnectionConfig) explicitServer() (*k8s.Server, error) {
	server := k8s.Server{
		URL:                   c.Server,
		InsecureSkipTLSVerify: c.Insecure,
		Auth:                  k8s.NoAuth{},
	}

	if c.CACert != "" && !c.Insecure {
		ca, err := os.ReadFile(c.CACert)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", keyCACert, err)
		}
		server.CACert = ca
	}

	hasToken := c.Token != "" || c.TokenFile != ""
	if hasToken && (c.ClientCert != "" || c.ClientKey != "") {
		return nil, fmt.Errorf("--%s/--%s and --%s/--%s are mutually exclusive",
			keyToken, keyTokenFile, keyClientCert, keyClientKey)
	}

	token := c.Token
	if token == "" && c.TokenFile != "" {
		raw, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", keyTokenFile, err)
		}
		token = string(bytes.TrimSpace(raw))
	}

	switch {
	case token != "":
		server.Auth = k8s.TokenAuth{Token: token}
	case c.ClientCert != "" || c.ClientKey != "":
		if c.ClientCert == "" || c.ClientKey == "" {
			return nil, fmt.Errorf("--%s and --%s must be set together", keyClientCert, keyClientKey)
		}
		cert, err := os.ReadFile(c.ClientCert)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", keyClientCert, err)
		}
		key, err := os.ReadFile(c.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", keyClientKey, err)
		}
		server.Auth = k8s.CertificateAuth{Certificate: cert, Key: key}
	}

	if err := server.Validate(); err != nil {
		return nil, err
	}
	return &server, nil
}

// NewDispatcher builds a dispatcher from the connection settings.
func (c ConnectionConfig) NewDispatcher(logger *slog.Logger, metrics *instrumentation.Metrics) (*k8s.Dispatcher, error) {
	opts := []k8s.Option{
		k8s.WithLogger(logger),
		k8s.WithMetrics(metrics),
		k8s.WithRequestTimeout(c.RequestTimeout),
		k8s.WithStreamIdleTimeout(c.StreamIdleTimeout),
	}

	server, err := c.DefaultServer()
	if err != nil {
		return nil, err
	}
	if server != nil {
		logger.Debug("Using default server",
			logging.Host(server.URL),
			slog.String("auth", server.AuthKind()))
		opts = append(opts, k8s.WithDefaultServer(*server))
	}

	return k8s.NewDispatcher(opts...), nil
}

// dispatcherFromConfig builds a dispatcher from the application config.
func dispatcherFromConfig(metrics *instrumentation.Metrics) (*k8s.Dispatcher, error) {
	return loadConnectionConfig(appConfig).NewDispatcher(slog.Default(), metrics)
}

// errNoDefaultServer is returned by commands that need a server when none is configured.
var errNoDefaultServer = errors.New("no API server configured: use --server, --kubeconfig or --in-cluster")
