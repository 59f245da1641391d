package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Equal(t, types.IdentifierEmail, cfg.App.Identifier)
	assert.Equal(t, types.MemoryBackend, cfg.Session.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{name: "identifier", env: map[string]string{"APP_IDENTIFIER": "phone"}, want: types.ErrInvalidIdentifierKind},
		{name: "backend", env: map[string]string{"SESSION_BACKEND": "redis"}, want: types.ErrInvalidSessionBackend},
		{name: "log level", env: map[string]string{"APP_LOG_LEVEL": "TRACE"}, want: types.ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig("")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
