package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// PlaceholderID is the stand-in record identifier returned when a voice
// request outlives a store outage. The caller hears success; the record is
// not durable.
const PlaceholderID = "temp_id"

// LogResult reports how an event was persisted.
type LogResult struct {
	// RecordID is the assigned identifier, or PlaceholderID when Degraded.
	RecordID string
	// Degraded is true when the store was down and the failure was absorbed
	// for the voice channel.
	Degraded bool
	// ProfileSynced is true when the aggregate document also took the write.
	ProfileSynced bool
}

// LogService validates and persists fitness events, then mirrors them into
// the user's profile document.
type LogService struct {
	store store.Store
	sync  *ProfileSync
	log   zerolog.Logger
}

func NewLogService(s store.Store, sync *ProfileSync, log zerolog.Logger) *LogService {
	return &LogService{store: s, sync: sync, log: log}
}

// Log appends the event for the given user. A store outage is absorbed for
// events arriving through the voice channel: the voice platform retries
// failed webhooks and would re-prompt the user, so the caller gets success
// with a placeholder identifier instead. Every other channel sees the error.
func (s *LogService) Log(ctx context.Context, userID string, e *model.LogEvent) (*LogResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", model.ErrValidation)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.store.Logs().Append(ctx, userID, e)
	if err != nil {
		if errors.Is(err, model.ErrStoreUnavailable) && e.Source == model.SourceAlexa {
			s.log.Warn().Err(err).
				Str("user_id", userID).
				Str("kind", string(e.Kind)).
				Msg("store unavailable, absorbing failure for voice channel")
			return &LogResult{RecordID: PlaceholderID, Degraded: true}, nil
		}
		return nil, err
	}

	synced := s.sync.Sync(ctx, rec)
	return &LogResult{RecordID: rec.ID, ProfileSynced: synced}, nil
}

// ListLogs returns every record of the given kind, newest first.
func (s *LogService) ListLogs(ctx context.Context, kind model.LogKind) ([]*model.LogRecord, error) {
	if kind != model.KindWorkout && kind != model.KindMeal {
		return nil, fmt.Errorf("%w: unknown log kind %q", model.ErrValidation, kind)
	}
	return s.store.Logs().ListAll(ctx, kind)
}
