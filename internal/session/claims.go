package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("session: jwt secret is not configured")
	ErrInvalidToken = errors.New("session: invalid token")
)

// Claims are the access token fields issued by the main site.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// VerifiedUserID is user_id, or a numeric sub when user_id is absent.
func (c *Claims) VerifiedUserID() int64 {
	if c.UserID > 0 {
		return c.UserID
	}
	if id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64); err == nil && id > 0 {
		return id
	}
	return 0
}

// Verify checks the HS256 signature and expiry of token and returns its claims.
// Unlike Expired, opaque tokens are rejected.
func Verify(token, secret string, now time.Time) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.VerifiedUserID() == 0 {
		return nil, fmt.Errorf("%w: no user id claim", ErrInvalidToken)
	}
	return claims, nil
}
