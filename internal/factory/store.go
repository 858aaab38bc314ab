// Package factory constructs driver-specific dependencies from config.
package factory

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/config"
	storepkg "github.com/elefit/tracker-backend/internal/store"
	"github.com/elefit/tracker-backend/internal/store/memstore"
	storepg "github.com/elefit/tracker-backend/internal/store/postgres"
	storelite "github.com/elefit/tracker-backend/internal/store/sqlite"
)

// NewStore returns the store adapter selected by cfg.DBDriver: postgres for
// the cloud target, sqlite for local, memory for tests.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("ELEFIT_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.EnsureSchema(db); err != nil {
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		st, err := storelite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, nil

	case "memory":
		log.Warn().Msg("using in-memory store; data will not survive restarts")
		return memstore.New(), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// OutboundTimeout returns the timeout applied to every provider call.
func OutboundTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.OutboundTimeoutSeconds) * time.Second
}
