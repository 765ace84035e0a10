package k8s

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://10.0.0.1:6443"},
		{name: "http", url: "http://127.0.0.1:8001"},
		{name: "empty", url: "", wantErr: true},
		{name: "missing scheme", url: "api.example.com:6443", wantErr: true},
		{name: "unsupported scheme", url: "ftp://api.example.com", wantErr: true},
		{name: "unparseable", url: "https://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Server{URL: tt.url}.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var configErr *ConfigurationError
			assert.True(t, errors.As(err, &configErr))
			assert.ErrorIs(t, err, ErrInvalidServerURL)
		})
	}
}

func TestServerAuthKind(t *testing.T) {
	tests := []struct {
		auth Auth
		want string
	}{
		{auth: nil, want: "none"},
		{auth: NoAuth{}, want: "none"},
		{auth: TokenAuth{Token: testToken}, want: "token"},
		{auth: CertificateAuth{}, want: "certificate"},
		{auth: &TokenAuth{Token: testToken}, want: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Server{Auth: tt.auth}.AuthKind())
		})
	}
}
