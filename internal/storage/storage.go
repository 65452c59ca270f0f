package storage

import (
	"context"
	"errors"

	"github.com/sakhi-4096/alx-backend-user-data/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates the write violated a store constraint, such as the
// unique email index.
var ErrConflict = errors.New("record conflicts with an existing record")

// ErrInvalidFilter indicates a lookup named a field the User record does not
// have, or carried a value of the wrong type. It is a programming error and is
// reported before any query runs.
var ErrInvalidFilter = errors.New("invalid filter")

// ErrInvalidField indicates an update named an unknown or immutable field, or
// carried a value of the wrong type. No change is applied.
var ErrInvalidField = errors.New("invalid field")

// UserStore captures persistence operations over the users table.
//
// Implementations must be safe for concurrent use.
type UserStore interface {
	// AddUser inserts a new user and returns it with its assigned id.
	AddUser(ctx context.Context, email string, hashedPassword []byte) (models.User, error)
	// FindUserBy returns the first user (lowest id) matching every filter.
	FindUserBy(ctx context.Context, filters ...Filter) (models.User, error)
	// UpdateUser applies all updates to the user with the given id in one write.
	UpdateUser(ctx context.Context, id int64, updates ...Update) error
	// Close releases the underlying connection resources.
	Close() error
}
