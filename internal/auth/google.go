package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
)

// tokenInfo is the subset of Google's tokeninfo response we consume.
type tokenInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Aud   string `json:"aud"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
type GoogleVerifier struct {
	client *resty.Client
	url    string
	log    zerolog.Logger
}

// NewGoogleVerifier creates a verifier against the given tokeninfo URL.
func NewGoogleVerifier(url string, timeout time.Duration, log zerolog.Logger) *GoogleVerifier {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &GoogleVerifier{client: c, url: url, log: log}
}

// Verify resolves the ID token to an identity. A token the provider rejects
// yields ErrUnauthorized; a provider outage yields ErrExternalService.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", model.ErrUnauthorized)
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", token).
		Get(v.url)
	if err != nil {
		return nil, fmt.Errorf("%w: token verification request: %v", model.ErrExternalService, err)
	}
	if resp.StatusCode() != http.StatusOK {
		v.log.Debug().Int("status", resp.StatusCode()).Msg("token rejected by identity provider")
		return nil, fmt.Errorf("%w: identity provider returned status %d", model.ErrUnauthorized, resp.StatusCode())
	}

	var info tokenInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("%w: decode tokeninfo response: %v", model.ErrExternalService, err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", model.ErrUnauthorized)
	}

	userID := info.Sub
	if userID == "" {
		userID = info.Email
	}
	return &Identity{UserID: userID, Email: info.Email}, nil
}

// HealthPing probes the identity provider endpoint. Any HTTP response,
// including an error status for the empty probe token, proves reachability.
func (v *GoogleVerifier) HealthPing(ctx context.Context) error {
	_, err := v.client.R().SetContext(ctx).Get(v.url)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	return nil
}
