package jwtmw

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// ContextRole is the gin context key holding the authenticated user's role.
	ContextRole = "role"

	bearerPrefix = "Bearer "
)

var (
	// ErrMissingCredentials is returned when the request carries no bearer token.
	ErrMissingCredentials = errors.New("missing bearer token")

	// ErrInvalidCredentials is returned when the bearer token fails verification.
	ErrInvalidCredentials = errors.New("invalid bearer token")
)

// Verifier validates a token string and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Authenticate extracts the bearer token from r and verifies it.
// It has no side effects; AuthRequired composes it into a gin middleware.
func Authenticate(r *http.Request, v Verifier) (Claims, error) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return Claims{}, ErrMissingCredentials
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
	if tokenStr == "" {
		return Claims{}, ErrMissingCredentials
	}

	claims, err := v.Verify(tokenStr)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return claims, nil
}

// AuthRequired returns a gin middleware that rejects requests without a valid
// bearer token and exposes the token's claims to downstream handlers.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := Authenticate(c.Request, v)
		if err != nil {
			slog.Warn("authentication failed", "error", err, "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			msg := "invalid token"
			if errors.Is(err, ErrMissingCredentials) {
				msg = "missing bearer token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(msg))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(c *gin.Context) (Claims, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return Claims{}, false
	}
	return Claims{UserID: userID, Role: c.GetString(ContextRole)}, true
}
