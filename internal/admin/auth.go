// Package admin authenticates storefront administrators. Credentials are
// injected at startup (email plus a bcrypt password hash); successful logins
// are exchanged for short-lived JWTs.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"
)

// Claims represents the JWT claims for an admin session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RoleAdmin is the only role the storefront issues.
const RoleAdmin = "admin"

// Authenticator verifies admin credentials and manages session tokens.
type Authenticator struct {
	email        string
	passwordHash []byte
	secret       []byte
	tokenExpiry  time.Duration
}

// NewAuthenticator creates an authenticator for a single admin account. The
// password hash must be a bcrypt hash.
func NewAuthenticator(email, passwordHash, secret string, tokenExpiry time.Duration) *Authenticator {
	return &Authenticator{
		email:        email,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		tokenExpiry:  tokenExpiry,
	}
}

// Login checks the credentials and returns a signed session token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		return "", apperrors.Unauthorized("invalid email or password")
	}

	now := time.Now().UTC()
	claims := &Claims{
		Email: a.email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   a.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenExpiry)),
			Issuer:    "storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Validate parses and validates a session token, returning its claims.
func (a *Authenticator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized("invalid session token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, apperrors.Unauthorized("invalid session token")
	}

	return claims, nil
}

// HashPassword produces a bcrypt hash for configuration bootstrapping.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
