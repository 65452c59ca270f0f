package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-4096/alx-backend-user-data/internal/config"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.NotNil(t, cmd.RunE, "root command serves by default")
}

func TestMigrateCmd_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	t.Setenv("DATABASE_URL", "sqlite://"+path)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Migrations completed successfully")

	// The schema is in place.
	store, backend, err := openStore(context.Background(), config.Config{DatabaseURL: "sqlite://" + path})
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, config.BackendSQLite, backend)
	_, err = store.FindUserBy(context.Background(), storage.ByEmail("a@x.com"))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMigrateCmd_BadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://root@localhost/users")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate"})
	require.Error(t, cmd.Execute())
}

func TestOpenStore_UnsupportedScheme(t *testing.T) {
	_, _, err := openStore(context.Background(), config.Config{DatabaseURL: "redis://localhost"})
	require.Error(t, err)
}
