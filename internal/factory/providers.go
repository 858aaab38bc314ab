package factory

import (
	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/auth"
	"github.com/elefit/tracker-backend/internal/config"
	"github.com/elefit/tracker-backend/internal/oauth"
)

// NewVerifier returns the identity verifier. Tests get a static verifier so
// no network calls escape the process.
func NewVerifier(cfg *config.Config, log zerolog.Logger) auth.Verifier {
	if cfg.IsTesting() {
		return auth.NewStaticVerifier(map[string]auth.Identity{
			"test-token": {UserID: "test-user", Email: "test@example.com"},
		})
	}
	return auth.NewGoogleVerifier(cfg.GoogleTokenInfoURL, OutboundTimeout(cfg), log)
}

// NewExchanger returns the OAuth code exchanger for account linking.
func NewExchanger(cfg *config.Config, log zerolog.Logger) oauth.TokenExchanger {
	return oauth.NewAmazonExchanger(
		cfg.AmazonTokenURL,
		cfg.AlexaClientID,
		cfg.AlexaClientSecret,
		OutboundTimeout(cfg),
		log,
	)
}
