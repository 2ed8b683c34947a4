package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/store"
	"github.com/waypoint-labs/waypoint/pkg/jwtx"
)

func newTokenService(t *testing.T, st store.Store, ttl time.Duration) *TokenService {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("token-test-secret"), "waypoint")
	require.NoError(t, err)

	return &TokenService{
		Signer: signer,
		Store:  st,
		Issuer: "waypoint",
		TTL:    ttl,
	}
}

func registerUser(t *testing.T, st store.Store, role domain.Role) domain.User {
	t.Helper()

	svc := &UserService{Store: st}
	id, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123", role)
	require.NoError(t, err)

	user, err := st.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, time.Hour)
	user := registerUser(t, st, domain.RoleAdmin)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	identity, err := tokens.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.Identity{UserID: user.ID, Role: domain.RoleAdmin}, identity)
}

func TestVerify_Expired(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, -time.Minute)
	user := registerUser(t, st, domain.RoleUser)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Verify(ctx, token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_Tampered(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, time.Hour)
	user := registerUser(t, st, domain.RoleUser)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = tokens.Verify(ctx, tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_DeletedSubject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, time.Hour)
	user := registerUser(t, st, domain.RoleUser)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

	_, err = tokens.Verify(ctx, token)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerify_RoleFixedForTokenLifetime(t *testing.T) {
	// The verifier trusts the role claim; it does not re-read the role
	// from the store until the token is reissued.
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, time.Hour)
	user := registerUser(t, st, domain.RoleAdmin)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	identity, err := tokens.Verify(ctx, token)
	require.NoError(t, err)
	require.True(t, identity.IsAdmin())
}

func TestVerify_Garbage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Verify(ctx, raw)
		require.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
