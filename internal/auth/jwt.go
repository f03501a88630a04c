// Package auth implements the token service and password hashing used
// by the authentication workflow. Tokens are self-contained HS256 JWTs;
// no server-side session state is kept.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/library-catalog/internal/model"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong issuer or audience, expired, or malformed. The
// reasons are deliberately not distinguished to callers.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal embedded in a verified token.
type Identity struct {
	ID       uint64
	Username string
	Email    string
}

// Claims is the JWT payload issued for a user. The subject holds the
// numeric user id as a decimal string; username and email ride along so
// consumers can display the identity without a database lookup.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed identity tokens. Secret,
// issuer, audience and lifetime are fixed at construction from config.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenManager(secret, issuer, audience string, ttlDays int) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Issue signs a token for the given user. Each token carries a unique
// jti so individual tokens stay distinguishable in downstream logs.
func (tm *TokenManager) Issue(u *model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses raw, checks signature, issuer, audience and expiry, and
// returns the embedded identity. All failures collapse to ErrInvalidToken.
func (tm *TokenManager) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: id, Username: claims.Username, Email: claims.Email}, nil
}
