package oauth

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

// AmazonExchanger exchanges codes against Login with Amazon's token endpoint.
type AmazonExchanger struct {
	client       *resty.Client
	url          string
	clientID     string
	clientSecret string
	log          zerolog.Logger
}

// NewAmazonExchanger creates an exchanger for the given token endpoint and
// client credentials.
func NewAmazonExchanger(url, clientID, clientSecret string, timeout time.Duration, log zerolog.Logger) *AmazonExchanger {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &AmazonExchanger{
		client:       c,
		url:          url,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
	}
}

// Exchange performs the authorization_code grant.
func (e *AmazonExchanger) Exchange(ctx context.Context, code, redirectURI string) (*Tokens, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", model.ErrValidation)
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     e.clientID,
			"client_secret": e.clientSecret,
			"redirect_uri":  redirectURI,
		}).
		Post(e.url)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange request: %v", model.ErrExternalService, err)
	}
	if resp.StatusCode() != http.StatusOK {
		e.log.Warn().
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Msg("token exchange rejected")
		return nil, fmt.Errorf("%w: token endpoint returned status %d: %s", model.ErrExternalService, resp.StatusCode(), resp.String())
	}

	var tokens Tokens
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", model.ErrExternalService, err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", model.ErrExternalService)
	}

	return &tokens, nil
}
