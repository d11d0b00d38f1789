// Package token issues and verifies the signed identity tokens used as
// bearer credentials. Tokens are HS256 JWTs whose payload carries the
// authenticated user's id under the "user" claim. They carry no expiry.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify when the signature does not check
// out or the payload is malformed.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies identity tokens with a process-wide secret.
// The secret is injected at construction; there is no package-level key.
type Service struct {
	secret []byte
}

// New creates a token service with the given signing secret.
func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces a signed token encoding {"user": {"id": userID}}.
func (s *Service) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user": map[string]any{"id": userID},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and extracts the user id from the payload.
// Any signature, algorithm, or payload-shape failure yields ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return "", ErrInvalidToken
	}

	user, ok := claims["user"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: missing user claim", ErrInvalidToken)
	}
	id, ok := user["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return id, nil
}
