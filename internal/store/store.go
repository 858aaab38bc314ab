package store

import (
	"context"

	"github.com/elefit/tracker-backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite,
// memstore). Adapters report an unreachable backing medium by returning an
// error wrapping model.ErrStoreUnavailable; absent documents and records are
// model.ErrNotFound.
type Store interface {
	Logs() Logs
	Profiles() Profiles
	Links() Links
}

// Logs is the append-only record store keyed by kind. Append assigns the
// record identifier and insertion order exactly once; records are immutable
// afterwards. Identifier assignment must stay unique under concurrent
// appends.
type Logs interface {
	Append(ctx context.Context, userID string, e *model.LogEvent) (*model.LogRecord, error)
	ListAll(ctx context.Context, kind model.LogKind) ([]*model.LogRecord, error)
}

// Profiles holds one aggregate document per user. Put writes the whole
// document back; callers own the read-modify-write cycle and its lost-update
// hazard (see services.ProfileSync).
type Profiles interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Put(ctx context.Context, p *model.Profile) error
}

// Links holds one account-link document per user.
type Links interface {
	Get(ctx context.Context, userID string) (*model.LinkState, error)
	Put(ctx context.Context, ls *model.LinkState) error
}
