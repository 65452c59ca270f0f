package auth

import "github.com/google/uuid"

// TokenGenerator produces opaque session and reset tokens.
type TokenGenerator interface {
	NewToken() string
}

// UUIDTokens issues random version 4 UUIDs.
type UUIDTokens struct{}

// NewToken returns a fresh UUID string.
func (UUIDTokens) NewToken() string {
	return uuid.NewString()
}

// TokenFunc adapts a plain function to TokenGenerator.
type TokenFunc func() string

// NewToken calls f.
func (f TokenFunc) NewToken() string { return f() }
