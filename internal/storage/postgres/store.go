package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/sakhi-4096/alx-backend-user-data/internal/models"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage/postgres/migrations"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

const selectColumns = `id, email, hashed_password, session_id, reset_token`

// pgxIface is the subset of *pgxpool.Pool used by Store.
type pgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool pgxIface
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewUserStore connects to the database, waits for it to accept connections
// and applies pending migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := newStore(pool)
	if err := s.waitReady(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := RunMigrations(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func newStore(pool pgxIface) *Store {
	return &Store{pool: pool}
}

// waitReady pings the pool with exponential backoff so a freshly started
// database container has time to come up.
func (s *Store) waitReady(ctx context.Context) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded goose migrations over a short-lived
// database/sql handle.
func RunMigrations(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// AddUser inserts a new user row.
func (s *Store) AddUser(ctx context.Context, email string, hashedPassword []byte) (models.User, error) {
	const query = `
		INSERT INTO users (email, hashed_password)
		VALUES ($1, $2)
		RETURNING ` + selectColumns
	row := s.pool.QueryRow(ctx, query, email, hashedPassword)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, oops.Code("USER_CONFLICT").
				With("constraint", pgErr.ConstraintName).
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

	user, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
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

	set, args := storage.SetClause(updates, 1, placeholder)
	query := `UPDATE users SET ` + set + ` WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("USER_CONFLICT").
				With("id", id).
				Wrap(storage.ErrConflict)
		}
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(storage.ErrNotFound)
	}
	return nil
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.SessionID, &user.ResetToken); err != nil {
		return models.User{}, err
	}
	return user, nil
}
