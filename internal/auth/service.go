package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/sakhi-4096/alx-backend-user-data/internal/models"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
)

// Service implements registration, login checks, sessions and password
// resets on top of a UserStore. It keeps no state between calls.
type Service struct {
	store  storage.UserStore
	hasher Hasher
	tokens TokenGenerator
	logger *slog.Logger
}

// NewService wires a Service. A nil logger discards output.
func NewService(store storage.UserStore, hasher Hasher, tokens TokenGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "auth"),
	}
}

// Register creates a user with a hashed password. It fails with
// ErrAlreadyExists when the email is taken, including when a concurrent
// registration wins the unique index.
func (s *Service) Register(ctx context.Context, email, password string) (models.User, error) {
	const op = "register"

	_, err := s.store.FindUserBy(ctx, storage.ByEmail(email))
	switch {
	case err == nil:
		recordOutcome(op, outcomeRejected)
		return models.User{}, ErrAlreadyExists
	case !errors.Is(err, storage.ErrNotFound):
		recordOutcome(op, outcomeError)
		return models.User{}, oops.Code("REGISTER_FAILED").With("operation", "lookup email").Wrap(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		recordOutcome(op, outcomeError)
		return models.User{}, err
	}

	user, err := s.store.AddUser(ctx, email, hash)
	if errors.Is(err, storage.ErrConflict) {
		recordOutcome(op, outcomeRejected)
		return models.User{}, ErrAlreadyExists
	}
	if err != nil {
		recordOutcome(op, outcomeError)
		return models.User{}, oops.Code("REGISTER_FAILED").With("operation", "add user").Wrap(err)
	}

	recordOutcome(op, outcomeOK)
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// ValidLogin reports whether password matches the stored hash for email.
// Unknown emails and store failures yield false.
func (s *Service) ValidLogin(ctx context.Context, email, password string) bool {
	const op = "valid_login"

	user, err := s.store.FindUserBy(ctx, storage.ByEmail(email))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			recordOutcome(op, outcomeError)
			s.logger.ErrorContext(ctx, "login lookup failed", "error", err)
			return false
		}
		recordOutcome(op, outcomeRejected)
		return false
	}

	if !s.hasher.Verify(user.HashedPassword, password) {
		recordOutcome(op, outcomeRejected)
		return false
	}
	recordOutcome(op, outcomeOK)
	return true
}

// CreateSession stores a new session id for the user with email and returns
// it, replacing any previous session. It returns "" when no user has email.
func (s *Service) CreateSession(ctx context.Context, email string) (string, error) {
	const op = "create_session"

	user, err := s.store.FindUserBy(ctx, storage.ByEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		recordOutcome(op, outcomeRejected)
		return "", nil
	}
	if err != nil {
		recordOutcome(op, outcomeError)
		return "", oops.Code("SESSION_CREATE_FAILED").With("operation", "lookup email").Wrap(err)
	}

	sessionID := s.tokens.NewToken()
	if err := s.store.UpdateUser(ctx, user.ID, storage.SetSessionID(sessionID)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			recordOutcome(op, outcomeRejected)
			return "", nil
		}
		recordOutcome(op, outcomeError)
		return "", oops.Code("SESSION_CREATE_FAILED").
			With("operation", "store session").
			With("user_id", user.ID).
			Wrap(err)
	}

	recordOutcome(op, outcomeOK)
	s.logger.InfoContext(ctx, "session created", "user_id", user.ID)
	return sessionID, nil
}

// GetUserBySession returns the user holding sessionID, or nil if none does.
func (s *Service) GetUserBySession(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	user, err := s.store.FindUserBy(ctx, storage.BySessionID(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		recordOutcome("get_user_by_session", outcomeError)
		return nil, oops.Code("SESSION_LOOKUP_FAILED").Wrap(err)
	}
	return &user, nil
}

// DestroySession clears the session of the user with id. Unknown ids, the
// zero id and users without a session are left alone.
func (s *Service) DestroySession(ctx context.Context, userID int64) error {
	const op = "destroy_session"

	if userID == 0 {
		return nil
	}

	err := s.store.UpdateUser(ctx, userID, storage.ClearSessionID())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		recordOutcome(op, outcomeError)
		return oops.Code("SESSION_DESTROY_FAILED").With("user_id", userID).Wrap(err)
	}

	recordOutcome(op, outcomeOK)
	s.logger.InfoContext(ctx, "session destroyed", "user_id", userID)
	return nil
}

// RequestPasswordReset stores a new reset token for the user with email and
// returns it, replacing any pending token. It fails with ErrNoSuchUser when
// no user has email.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	const op = "request_password_reset"

	user, err := s.store.FindUserBy(ctx, storage.ByEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		recordOutcome(op, outcomeRejected)
		return "", ErrNoSuchUser
	}
	if err != nil {
		recordOutcome(op, outcomeError)
		return "", oops.Code("RESET_REQUEST_FAILED").With("operation", "lookup email").Wrap(err)
	}

	token := s.tokens.NewToken()
	if err := s.store.UpdateUser(ctx, user.ID, storage.SetResetToken(token)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			recordOutcome(op, outcomeRejected)
			return "", ErrNoSuchUser
		}
		recordOutcome(op, outcomeError)
		return "", oops.Code("RESET_REQUEST_FAILED").
			With("operation", "store reset token").
			With("user_id", user.ID).
			Wrap(err)
	}

	recordOutcome(op, outcomeOK)
	s.logger.InfoContext(ctx, "password reset requested", "user_id", user.ID)
	return token, nil
}

// ConfirmPasswordReset sets a new password for the holder of resetToken and
// consumes the token in the same write. It fails with ErrInvalidToken when no
// user holds the token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, resetToken, newPassword string) error {
	const op = "confirm_password_reset"

	if resetToken == "" {
		recordOutcome(op, outcomeRejected)
		return ErrInvalidToken
	}

	user, err := s.store.FindUserBy(ctx, storage.ByResetToken(resetToken))
	if errors.Is(err, storage.ErrNotFound) {
		recordOutcome(op, outcomeRejected)
		return ErrInvalidToken
	}
	if err != nil {
		recordOutcome(op, outcomeError)
		return oops.Code("RESET_CONFIRM_FAILED").With("operation", "lookup token").Wrap(err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		recordOutcome(op, outcomeError)
		return err
	}

	err = s.store.UpdateUser(ctx, user.ID, storage.SetHashedPassword(hash), storage.ClearResetToken())
	if errors.Is(err, storage.ErrNotFound) {
		recordOutcome(op, outcomeRejected)
		return ErrInvalidToken
	}
	if err != nil {
		recordOutcome(op, outcomeError)
		return oops.Code("RESET_CONFIRM_FAILED").
			With("operation", "store password").
			With("user_id", user.ID).
			Wrap(err)
	}

	recordOutcome(op, outcomeOK)
	s.logger.InfoContext(ctx, "password reset confirmed", "user_id", user.ID)
	return nil
}
