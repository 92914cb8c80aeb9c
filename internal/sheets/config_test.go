package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	oauth := func() Config {
		c := DefaultConfig()
		c.ClientID = "test-client"
		c.ClientSecret = "test-secret"
		c.RefreshToken = "test-token"
		return c
	}

	tests := []struct {
		mutate  func(*Config)
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name:   "valid oauth config",
			mutate: func(*Config) {},
		},
		{
			name: "valid service account config",
			mutate: func(c *Config) {
				c.ClientID, c.ClientSecret, c.RefreshToken = "", "", ""
				c.ServiceAccountPath = "/path/to/key.json"
			},
		},
		{
			name:    "missing auth",
			mutate:  func(c *Config) { c.RefreshToken = "" },
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name:    "multiple auth methods",
			mutate:  func(c *Config) { c.ServiceAccountPath = "/path/to/key.json" },
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name:    "no spreadsheet target",
			mutate:  func(c *Config) { c.SpreadsheetName = "" },
			wantErr: true,
			errMsg:  "spreadsheet id or name is required",
		},
		{
			name:   "id without name",
			mutate: func(c *Config) { c.SpreadsheetName = ""; c.SpreadsheetID = "abc" },
		},
		{
			name:    "empty sheet title",
			mutate:  func(c *Config) { c.SheetTitle = "" },
			wantErr: true,
			errMsg:  "sheet title cannot be empty",
		},
		{
			name:    "invalid batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name:   "zero retries is valid",
			mutate: func(c *Config) { c.RetryAttempts = 0; c.RetryDelay = 0 },
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.RetryDelay = -1 * time.Second },
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := oauth()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Auth(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, AuthNone, cfg.Auth())
	assert.ErrorIs(t, cfg.Validate(), ErrNoAuth)

	cfg.ClientID, cfg.ClientSecret = "id", "secret"
	assert.Equal(t, AuthNone, cfg.Auth(), "oauth2 needs a refresh token")

	cfg.RefreshToken = "refresh"
	assert.Equal(t, AuthOAuth2, cfg.Auth())
	assert.Equal(t, "oauth2", cfg.Auth().String())

	cfg = DefaultConfig()
	cfg.ServiceAccountPath = "/keys/sa.json"
	assert.Equal(t, AuthServiceAccount, cfg.Auth())
	assert.Equal(t, "service account", cfg.Auth().String())
}
