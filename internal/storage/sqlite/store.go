// Package sqlite provides a SQLite-backed user store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/samber/oops"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sakhi-4096/alx-backend-user-data/internal/models"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage/sqlite/migrations"
)

var _ storage.UserStore = (*Store)(nil)

const selectColumns = `id, email, hashed_password, session_id, reset_token`

const pragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// Store persists users in SQLite.
type Store struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open opens the database at path and applies embedded migrations. A path
// that already carries a query string is used as a DSN verbatim.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if !strings.Contains(path, "?") {
		dsn = path + "?" + pragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddUser inserts a new user row.
func (s *Store) AddUser(ctx context.Context, email string, hashedPassword []byte) (models.User, error) {
	const query = `INSERT INTO users (email, hashed_password) VALUES (?, ?) RETURNING ` + selectColumns

	created, err := scanUser(s.db.QueryRowContext(ctx, query, email, hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, oops.Code("USER_CONFLICT").
				With("column", storage.FieldEmail).
				Wrap(storage.ErrConflict)
		}
		return models.User{}, oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}
	return created, nil
}

// FindUserBy fetches the first user matching all filters.
func (s *Store) FindUserBy(ctx context.Context, filters ...storage.Filter) (models.User, error) {
	if err := storage.ValidateFilters(filters); err != nil {
		return models.User{}, err
	}

	where, args := storage.WhereClause(filters, placeholder)
	query := `SELECT ` + selectColumns + ` FROM users WHERE ` + where + ` ORDER BY id LIMIT 1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, oops.Code("USER_NOT_FOUND").
			With("fields", storage.FilterFields(filters)).
			Wrap(storage.ErrNotFound)
	}
	if err != nil {
		return models.User{}, oops.Code("USER_FIND_FAILED").
			With("operation", "find user").
			With("fields", storage.FilterFields(filters)).
			Wrap(err)
	}
	return user, nil
}

// UpdateUser applies the updates to the user with the given id.
func (s *Store) UpdateUser(ctx context.Context, id int64, updates ...storage.Update) error {
	if err := storage.ValidateUpdates(updates); err != nil {
		return err
	}

	set, args := storage.SetClause(updates, 0, placeholder)
	query := `UPDATE users SET ` + set + ` WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("USER_CONFLICT").
				With("id", id).
				Wrap(storage.ErrConflict)
		}
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", id).
			Wrap(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "rows affected").
			With("id", id).
			Wrap(err)
	}
	if n == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(storage.ErrNotFound)
	}
	return nil
}

func placeholder(int) string { return "?" }

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.SessionID, &user.ResetToken); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
