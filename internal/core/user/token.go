package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"weathertracker.app/pkg/errors"
)

// Claims represents the JWT claims for a user
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id carried in the subject claim
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return uint(id), nil
}

// TokenIssuer signs and validates HS256 user tokens
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	issuer string
	clock  clockwork.Clock
}

func NewTokenIssuer(secret string, expiry time.Duration, issuer string, clock clockwork.Clock) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.NewConfigurationError("jwt secret is required", nil)
	}
	if expiry <= 0 {
		return nil, errors.NewConfigurationError("jwt expiry must be positive", nil)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, issuer: issuer, clock: clock}, nil
}

// Generate issues a token for the user
func (ti *TokenIssuer) Generate(userID uint, email string) (string, time.Time, error) {
	now := ti.clock.Now()
	expiresAt := now.Add(ti.expiry)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    ti.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses the token and returns its claims
func (ti *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithTimeFunc(ti.clock.Now),
	)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewUnauthorizedError("invalid or expired token")
	}
	return claims, nil
}
