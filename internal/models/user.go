package models

// User captures the single persisted identity record.
type User struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	HashedPassword []byte  `json:"-"`
	SessionID      *string `json:"-"`
	ResetToken     *string `json:"-"`
}

// HasSession reports whether the user currently holds an active session.
func (u User) HasSession() bool {
	return u.SessionID != nil
}

// HasPendingReset reports whether a password reset token is outstanding.
func (u User) HasPendingReset() bool {
	return u.ResetToken != nil
}
