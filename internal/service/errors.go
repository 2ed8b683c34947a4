package service

import "errors"

var (
	// ErrDuplicateEmail reports a registration against an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("service: email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrInvalidToken reports a token with a bad signature or shape.
	ErrInvalidToken = errors.New("service: invalid token")

	// ErrExpiredToken reports a token past its expiry instant.
	ErrExpiredToken = errors.New("service: token expired")

	// ErrUserNotFound reports a valid token whose subject no longer
	// resolves to a stored user, or a direct lookup miss.
	ErrUserNotFound = errors.New("service: user not found")

	// ErrDestinationNotFound reports a destination lookup or delete miss.
	ErrDestinationNotFound = errors.New("service: destination not found")
)
