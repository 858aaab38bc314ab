// Package auth resolves bearer tokens into stable user identities.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	UserID string
	Email  string
}

// Verifier validates an opaque token against an identity provider.
// Implementations return model.ErrUnauthorized for tokens the provider
// rejects and model.ErrExternalService when the provider is unreachable.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// ExtractBearer extracts the token from an Authorization header.
func ExtractBearer(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}

	return parts[1], nil
}
