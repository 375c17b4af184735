package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a bearer token without checking its
// signature; only the server can verify it.
func InspectToken(token string) (*Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Identity returns the best available user identifier.
func (c *Claims) Identity() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.UserID != "":
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
