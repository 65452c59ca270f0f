package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAlreadyExists indicates the email is already registered.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNoSuchUser indicates no user has the given email.
	ErrNoSuchUser = errors.New("no such user")
	// ErrInvalidToken indicates no user holds the given reset token.
	ErrInvalidToken = errors.New("invalid reset token")
	// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72 byte input.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)
