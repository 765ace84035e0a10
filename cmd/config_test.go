package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/logging"
)

// newTestFlags returns the persistent flag set of the root command, unparsed.
func newTestFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(keyConfig, "", "")
	flags.String(keyLogFormat, "text", "")
	flags.String(keyLogLevel, "info", "")
	addConnectionFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolateKubeconfig points the kubeconfig loading rules at an empty directory.
func isolateKubeconfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KUBECONFIG", filepath.Join(dir, "missing"))
	t.Setenv("HOME", dir)
	t.Setenv("KUBERNETES_SERVICE_HOST", "")
	t.Setenv("KUBERNETES_SERVICE_PORT", "")
}

func TestNewViperPrecedence(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", "server: https://from-file.example.com\nlog-level: warn\ntoken: file-token\n")

	t.Setenv("KUBE_DISPATCH_TOKEN", "env-token")
	t.Setenv("KUBE_DISPATCH_REQUEST_TIMEOUT", "5s")

	v, err := newViper(newTestFlags(t, "--config", configFile, "--log-level", "debug"))
	require.NoError(t, err)

	assert.Equal(t, "debug", v.GetString(keyLogLevel), "flag beats config file")
	assert.Equal(t, "env-token", v.GetString(keyToken), "environment beats config file")
	assert.Equal(t, "https://from-file.example.com", v.GetString(keyServer), "config file beats default")
	assert.Equal(t, 5*time.Second, v.GetDuration(keyRequestTimeout))
	assert.Equal(t, k8s.DefaultStreamIdleTimeout, v.GetDuration(keyStreamIdleTimeout))
	assert.Equal(t, configFile, v.ConfigFileUsed())
}

func TestNewViperMissingConfigFile(t *testing.T) {
	_, err := newViper(newTestFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConnectionConfigDefaultServer(t *testing.T) {
	dir := t.TempDir()
	tokenFile := writeFile(t, dir, "token", "  file-token\n")
	caFile := writeFile(t, dir, "ca.crt", "ca-pem")
	certFile := writeFile(t, dir, "client.crt", "cert-pem")
	keyFile := writeFile(t, dir, "client.key", "key-pem")

	tests := []struct {
		name    string
		config  ConnectionConfig
		want    *k8s.Server
		wantErr string
	}{
		{
			name:   "explicit server without credentials",
			config: ConnectionConfig{Server: "https://10.0.0.1:6443"},
			want:   &k8s.Server{URL: "https://10.0.0.1:6443", Auth: k8s.NoAuth{}},
		},
		{
			name:   "token flag wins over token file",
			config: ConnectionConfig{Server: "https://api.example.com", Token: "flag-token", TokenFile: tokenFile},
			want:   &k8s.Server{URL: "https://api.example.com", Auth: k8s.TokenAuth{Token: "flag-token"}},
		},
		{
			name:   "token file is trimmed",
			config: ConnectionConfig{Server: "https://api.example.com", TokenFile: tokenFile, CACert: caFile},
			want: &k8s.Server{
				URL:    "https://api.example.com",
				Auth:   k8s.TokenAuth{Token: "file-token"},
				CACert: []byte("ca-pem"),
			},
		},
		{
			name:   "client certificate",
			config: ConnectionConfig{Server: "https://api.example.com", ClientCert: certFile, ClientKey: keyFile},
			want: &k8s.Server{
				URL:  "https://api.example.com",
				Auth: k8s.CertificateAuth{Certificate: []byte("cert-pem"), Key: []byte("key-pem")},
			},
		},
		{
			name:   "insecure ignores the CA",
			config: ConnectionConfig{Server: "https://api.example.com", CACert: caFile, Insecure: true},
			want:   &k8s.Server{URL: "https://api.example.com", Auth: k8s.NoAuth{}, InsecureSkipTLSVerify: true},
		},
		{
			name:    "certificate without key",
			config:  ConnectionConfig{Server: "https://api.example.com", ClientCert: certFile},
			wantErr: "must be set together",
		},
		{
			name:    "token and client certificate",
			config:  ConnectionConfig{Server: "https://api.example.com", Token: "abc", ClientCert: certFile, ClientKey: keyFile},
			wantErr: "mutually exclusive",
		},
		{
			name:    "token file and client key",
			config:  ConnectionConfig{Server: "https://api.example.com", TokenFile: filepath.Join(dir, "missing"), ClientKey: keyFile},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing token file",
			config:  ConnectionConfig{Server: "https://api.example.com", TokenFile: filepath.Join(dir, "missing")},
			wantErr: "reading --token-file",
		},
		{
			name:    "invalid server URL",
			config:  ConnectionConfig{Server: "ftp://api.example.com"},
			wantErr: "absolute http or https URL",
		},
		{
			name:    "explicit kubeconfig that does not exist",
			config:  ConnectionConfig{Kubeconfig: filepath.Join(dir, "missing-kubeconfig")},
			wantErr: "loading kubeconfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.DefaultServer()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectionConfigDefaultServerWithoutKubeconfig(t *testing.T) {
	isolateKubeconfig(t)

	server, err := ConnectionConfig{}.DefaultServer()
	require.NoError(t, err)
	assert.Nil(t, server)

	dispatcher, err := ConnectionConfig{}.NewDispatcher(logging.Discard(), nil)
	require.NoError(t, err)
	_, ok := dispatcher.DefaultServer()
	assert.False(t, ok)
}

func TestConnectionConfigInvalidServerIsConfigurationError(t *testing.T) {
	_, err := ConnectionConfig{Server: "not a url"}.DefaultServer()

	var configErr *k8s.ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.ErrorIs(t, err, k8s.ErrInvalidServerURL)
}

func TestConnectionConfigNewDispatcher(t *testing.T) {
	dispatcher, err := ConnectionConfig{
		Server: "https://api.example.com",
		Token:  "abc",
	}.NewDispatcher(logging.Discard(), nil)
	require.NoError(t, err)

	server, ok := dispatcher.DefaultServer()
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com", server.URL)
	assert.Equal(t, k8s.TokenAuth{Token: "abc"}, server.Auth)
}

func TestWatchConfigFileUpdatesLogLevel(t *testing.T) {
	t.Cleanup(func() { logging.SetLevel("info") })

	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yaml", "log-level: info\n")

	v, err := newViper(newTestFlags(t, "--config", configFile))
	require.NoError(t, err)
	logging.SetLevel(v.GetString(keyLogLevel))

	watchConfigFile(v)
	require.NoError(t, os.WriteFile(configFile, []byte("log-level: debug\n"), 0o600))

	assert.Eventually(t, func() bool {
		return logging.Level() == slog.LevelDebug
	}, 5*time.Second, 20*time.Millisecond)
}
