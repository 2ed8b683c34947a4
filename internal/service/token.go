package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/store"
	"github.com/waypoint-labs/waypoint/pkg/jwtx"
)

// TokenService issues and verifies the signed, time-bounded credentials
// asserting a user id and role. Tokens are stateless: nothing is stored
// server-side and the validity window is the only lifecycle control.
type TokenService struct {
	Signer *jwtx.HS256
	Store  store.Store
	Issuer string
	TTL    time.Duration
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultTokenTTL
}

// Issue mints a token binding the user's id and current role, expiring at
// now + TTL.
func (s *TokenService) Issue(user domain.User) (string, error) {
	claims := jwtx.NewClaims(user.ID, string(user.Role), s.Issuer, s.ttl(), time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", err
	}

	incTokensIssued()
	return token, nil
}

// Verify checks the token's signature and expiry and resolves the subject
// back to a live user record. The role is taken from the token payload, not
// re-fetched: a role change after issuance is not reflected until the token
// expires and is reissued.
func (s *TokenService) Verify(ctx context.Context, raw string) (domain.Identity, error) {
	claims, err := s.Signer.Verify(raw)
	if err != nil {
		incTokensRejected()
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Identity{}, ErrExpiredToken
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if _, err := s.Store.Users().GetUserByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			incTokensRejected()
			return domain.Identity{}, ErrUserNotFound
		}
		return domain.Identity{}, err
	}

	incTokensVerified()
	return domain.Identity{
		UserID: claims.Subject,
		Role:   domain.Role(claims.Role),
	}, nil
}
