// Package oauth exchanges authorization codes for token grants with the
// voice platform's OAuth provider.
package oauth

import "context"

// Tokens is a grant returned by the provider.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// TokenExchanger swaps an authorization code for tokens. Implementations
// return model.ErrExternalService when the provider rejects the exchange or
// is unreachable.
type TokenExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*Tokens, error)
}
