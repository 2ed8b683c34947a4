package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for issued tokens. The token's
// validity window is the only lifecycle control; there is no revocation.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the assertions embedded in an issued token: the standard
// registered set plus the subject's role at issuance time.
type Claims struct {
	jwt.RegisteredClaims

	// Role the subject held when the token was minted. It is trusted for
	// the lifetime of the token and not re-read from storage on verify.
	Role string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct claims for a subject.
func NewClaims(subject, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role: role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
