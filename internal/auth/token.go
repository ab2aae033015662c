package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingToken means the request carried no bearer credential.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrMalformedToken means the token is not a well-formed signed assertion.
	ErrMalformedToken = errors.New("malformed token")
	// ErrBadSignature means the token was not signed with our secret.
	ErrBadSignature = errors.New("bad token signature")
	// ErrExpiredToken means the token's expiry is in the past.
	ErrExpiredToken = errors.New("token expired")
)

// Principal is the identity proven by a valid token for one request.
type Principal struct {
	UserID    int64
	ExpiresAt time.Time
}

type claims struct {
	User int64 `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 JWTs carrying a user id.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the manager that reads the current time from now.
func (t *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *t
	clone.now = now
	return &clone
}

// Generate issues a signed token for userID that expires after the configured TTL.
func (t *TokenManager) Generate(userID int64) (string, error) {
	return t.Encode(userID, t.now().Add(t.ttl))
}

// Encode issues a signed token for userID with an explicit expiry.
func (t *TokenManager) Encode(userID int64, expiresAt time.Time) (string, error) {
	c := claims{
		User: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(t.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of token and returns its principal.
// Errors are one of ErrMalformedToken, ErrBadSignature or ErrExpiredToken.
func (t *TokenManager) Parse(token string) (Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Principal{}, classify(err)
	}
	if c.User <= 0 {
		return Principal{}, fmt.Errorf("%w: missing user claim", ErrMalformedToken)
	}
	return Principal{UserID: c.User, ExpiresAt: c.ExpiresAt.Time}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
