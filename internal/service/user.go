package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/store"
	"github.com/waypoint-labs/waypoint/pkg/cryptox"
	"github.com/waypoint-labs/waypoint/pkg/idx"
)

// UserService orchestrates registration and authentication over the
// credential store. It never caches user records across calls; every
// operation re-reads the store.
type UserService struct {
	Store store.Store
}

// Register hashes the password and stores a new user record. The email
// uniqueness check and the insert run in one transaction so concurrent
// registrations for the same email cannot both commit; the UNIQUE index on
// users.email backstops the check.
func (s *UserService) Register(ctx context.Context, name, email, password string, role domain.Role) (string, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userID := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		return tx.Users().CreateUser(ctx, domain.User{
			ID:           userID,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}

	incUsersRegistered()
	return userID, nil
}

// Authenticate looks up the user by email and verifies the password.
// Unknown email and wrong password both yield ErrInvalidCredentials so the
// caller cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			incLoginsFailed()
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			incLoginsFailed()
			return domain.User{}, ErrInvalidCredentials
		}
		// A hash that cannot even be parsed is a stored-data fault, not a
		// credential problem.
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}

	incLoginsSucceeded()
	return user, nil
}

// Profile returns the user record with credential material stripped.
func (s *UserService) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrUserNotFound
		}
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}

// ListAll returns every user's profile. Intended for admin consumption
// only; the role gate lives at the transport layer.
func (s *UserService) ListAll(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}
