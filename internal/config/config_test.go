package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "CORS_ALLOWED_ORIGINS", "LOG_FORMAT", "LOG_LEVEL", "BCRYPT_COST", "SESSION_COOKIE_NAME", "SESSION_COOKIE_SECURE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.HTTPAddress())
	assert.Equal(t, "sqlite://a.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "session_id", cfg.SessionCookieName)
	assert.False(t, cfg.SessionCookieSecure)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/users")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.True(t, cfg.SessionCookieSecure)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "cost too low", key: "BCRYPT_COST", val: "2"},
		{name: "cost too high", key: "BCRYPT_COST", val: "40"},
		{name: "cost not a number", key: "BCRYPT_COST", val: "ten"},
		{name: "unknown scheme", key: "DATABASE_URL", val: "mysql://root@localhost/users"},
		{name: "secure not a bool", key: "SESSION_COOKIE_SECURE", val: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestConfig_Store(t *testing.T) {
	tests := []struct {
		url      string
		backend  Backend
		location string
		wantErr  bool
	}{
		{url: "postgres://u:p@h/db", backend: BackendPostgres, location: "postgres://u:p@h/db"},
		{url: "postgresql://u:p@h/db", backend: BackendPostgres, location: "postgresql://u:p@h/db"},
		{url: "sqlite://a.db", backend: BackendSQLite, location: "a.db"},
		{url: "sqlite:///var/lib/users.db", backend: BackendSQLite, location: "/var/lib/users.db"},
		{url: "file:users?mode=memory&cache=shared", backend: BackendSQLite, location: "file:users?mode=memory&cache=shared"},
		{url: "sqlite://", wantErr: true},
		{url: "mysql://root:secret@h/db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			backend, location, err := Config{DatabaseURL: tt.url}.Store()
			if tt.wantErr {
				require.Error(t, err)
				assert.NotContains(t, err.Error(), "secret")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.backend, backend)
			assert.Equal(t, tt.location, location)
		})
	}
}
