// Package jwtmw issues and verifies signed bearer tokens and guards gin routes with them.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is well formed but its signature,
	// algorithm or claims do not check out.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken is returned when a token is not a structurally valid JWT.
	ErrMalformedToken = errors.New("malformed token")
)

// Claims is the identity asserted by a token.
type Claims struct {
	UserID string
	Role   string
}

// tokenClaims is the wire form of Claims.
type tokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
// Tokens carry no expiry.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer bound to secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue returns a signed token for the given claims.
func (i *Issuer) Issue(c Claims) (string, error) {
	if c.UserID == "" {
		return "", errors.New("cannot issue token without user id")
	}
	claims := tokenClaims{
		UserID: c.UserID,
		Role:   c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and returns its claims.
func (i *Issuer) Verify(tokenStr string) (Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: claims.UserID, Role: claims.Role}, nil
}
