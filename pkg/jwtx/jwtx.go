// Package jwtx issues and verifies the service's HS256 access tokens.
// The tracker runs as a single node with a shared secret, so symmetric
// signing is enough; there is no key rotation or JWKS surface here.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is how long an access token stays valid.
const DefaultAccessTokenTTL = 12 * time.Hour

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrExpiredToken = errors.New("jwtx: token expired")
)

// Claims are the access-token claims. Role rides alongside the
// registered claims so the API layer can gate admin endpoints without a
// store lookup.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

// Signer mints access tokens.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign returns a signed HS256 token for the given subject and role.
func (s *Signer) Sign(subject, role string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verifier checks token signatures and standard claims.
type Verifier struct {
	Secret []byte
	Issuer string
}

// Verify parses and validates a raw token string, returning its claims.
func (v *Verifier) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return v.Secret, nil
		},
		jwt.WithIssuer(v.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
