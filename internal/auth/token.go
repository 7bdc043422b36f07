// Package auth issues session tokens and hashes dashboard passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"canteen/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for tokens that are malformed, expired or badly signed.
var ErrInvalidSession = errors.New("invalid or expired session token")

// Claims carries the authenticated user and their role.
type Claims struct {
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns the caller described by the claims.
func (c *Claims) Actor() model.Actor {
	return model.Actor{Username: c.Username, Role: c.Role}
}

// TokenService signs and validates HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService issuing tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for username with role and returns it with its expiry.
func (s *TokenService) Issue(username string, role model.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses a token and returns its claims.
func (s *TokenService) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	if claims.Username == "" || !claims.Role.Valid() {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
