package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// ProfileSync mirrors appended records into the per-user aggregate document.
// The mirror is best effort: the append store stays the source of truth, and
// a failed sync only costs the profile a stale copy until the next write.
type ProfileSync struct {
	store store.Store
	log   zerolog.Logger
}

func NewProfileSync(s store.Store, log zerolog.Logger) *ProfileSync {
	return &ProfileSync{store: s, log: log}
}

// Sync folds the record into its user's profile document and reports whether
// the mirror succeeded. The read-modify-write cycle is not atomic; concurrent
// syncs for one user can lose an update, which the next sync repairs only for
// its own record.
func (s *ProfileSync) Sync(ctx context.Context, rec *model.LogRecord) bool {
	p, err := s.store.Profiles().Get(ctx, rec.UserID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.log.Warn().Err(err).Str("user_id", rec.UserID).Msg("profile read failed, skipping sync")
			return false
		}
		p = &model.Profile{UserID: rec.UserID}
	}

	switch rec.Kind {
	case model.KindWorkout:
		p.WorkoutLogs = append(p.WorkoutLogs, *rec)
	case model.KindMeal:
		p.MealLogs = append(p.MealLogs, *rec)
	default:
		s.log.Warn().Str("kind", string(rec.Kind)).Msg("unknown record kind, skipping sync")
		return false
	}

	if err := s.store.Profiles().Put(ctx, p); err != nil {
		s.log.Warn().Err(err).Str("user_id", rec.UserID).Msg("profile write failed")
		return false
	}
	return true
}
