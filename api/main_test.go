package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBootstrap(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"INVENTORY_AUTH_JWT_SECRET": ""},
			wantErr: "failed to load config: auth.jwt_secret is required",
		},
		{
			name: "unknown log level",
			env: map[string]string{
				"INVENTORY_AUTH_JWT_SECRET": "test-secret",
				"INVENTORY_LOG_LEVEL":       "bogus",
			},
			wantErr: `failed to init logger: invalid log level "bogus"`,
		},
		{
			name: "valid",
			env: map[string]string{
				"INVENTORY_AUTH_JWT_SECRET": "test-secret",
				"INVENTORY_LOG_LEVEL":       "warn",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("INVENTORY_STORE_DRIVER", "memory")
			t.Setenv("INVENTORY_LOG_LEVEL", "info")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			t.Cleanup(zap.ReplaceGlobals(zap.NewNop()))

			cfg, err := bootstrap()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "memory", cfg.Store.Driver)
			assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
		})
	}
}
