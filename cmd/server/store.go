package main

import (
	"context"
	"fmt"

	"github.com/samber/oops"

	"github.com/sakhi-4096/alx-backend-user-data/internal/config"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage/postgres"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage/sqlite"
)

// openStore opens the backend named by the DATABASE_URL scheme. Both
// backends apply pending migrations on open.
func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, config.Backend, error) {
	backend, location, err := cfg.Store()
	if err != nil {
		return nil, "", oops.Code("CONFIG_INVALID").Wrap(err)
	}

	var store storage.UserStore
	switch backend {
	case config.BackendPostgres:
		store, err = postgres.NewUserStore(ctx, location)
	case config.BackendSQLite:
		store, err = sqlite.Open(ctx, location)
	default:
		err = fmt.Errorf("unsupported backend %q", backend)
	}
	if err != nil {
		return nil, backend, oops.Code("DB_CONNECT_FAILED").
			With("operation", "open store").
			With("backend", backend).
			Wrap(err)
	}
	return store, backend, nil
}
