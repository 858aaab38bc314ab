// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Schema contains the DDL for all three collections. seq is the append
// order; ts duplicates the event timestamp for ordering without unpacking
// the JSON document.
const Schema = `
CREATE TABLE IF NOT EXISTS log_records (
    id UUID PRIMARY KEY,
    seq BIGSERIAL,
    kind TEXT NOT NULL,
    user_id TEXT NOT NULL,
    ts TEXT NOT NULL,
    event JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS log_records_kind_ts ON log_records (kind, ts DESC, seq DESC);

CREATE TABLE IF NOT EXISTS profiles (
    user_id TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS account_links (
    user_id TEXT PRIMARY KEY,
    linked BOOLEAN NOT NULL DEFAULT FALSE,
    access_token TEXT,
    refresh_token TEXT,
    linked_at TIMESTAMPTZ,
    unlinked_at TIMESTAMPTZ
);
`

// EnsureSchema creates the tables when they do not exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Logs() store.Logs         { return &logs{db: s.db} }
func (s *pgStore) Profiles() store.Profiles { return &profiles{db: s.db} }
func (s *pgStore) Links() store.Links       { return &links{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}

// --- Logs ---

type logs struct{ db *sql.DB }

func (l *logs) Append(ctx context.Context, userID string, e *model.LogEvent) (*model.LogRecord, error) {
	doc, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	rec := &model.LogRecord{ID: uuid.New().String(), UserID: userID, LogEvent: *e}
	row := l.db.QueryRowContext(ctx, `
        INSERT INTO log_records (id, kind, user_id, ts, event)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING seq
    `, rec.ID, string(e.Kind), userID, e.Timestamp, doc)
	if err := row.Scan(&rec.Seq); err != nil {
		return nil, unavailable(err)
	}
	return rec, nil
}

func (l *logs) ListAll(ctx context.Context, kind model.LogKind) ([]*model.LogRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, seq, user_id, event
        FROM log_records WHERE kind=$1
        ORDER BY ts DESC, seq DESC
    `, string(kind))
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.LogRecord
	for rows.Next() {
		var rec model.LogRecord
		var doc []byte
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.UserID, &doc); err != nil {
			return nil, unavailable(err)
		}
		if err := json.Unmarshal(doc, &rec.LogEvent); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var doc []byte
	row := p.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE user_id=$1`, userID)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, unavailable(err)
	}
	out := &model.Profile{UserID: userID}
	if err := json.Unmarshal(doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *profiles) Put(ctx context.Context, prof *model.Profile) error {
	doc, err := json.Marshal(prof)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
        INSERT INTO profiles (user_id, doc, updated_at) VALUES ($1,$2,$3)
        ON CONFLICT (user_id) DO UPDATE SET doc=EXCLUDED.doc, updated_at=EXCLUDED.updated_at
    `, prof.UserID, doc, time.Now().UTC())
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// --- Links ---

type links struct{ db *sql.DB }

func (l *links) Get(ctx context.Context, userID string) (*model.LinkState, error) {
	out := &model.LinkState{UserID: userID}
	var access, refresh sql.NullString
	var linkedAt, unlinkedAt sql.NullTime
	row := l.db.QueryRowContext(ctx, `
        SELECT linked, access_token, refresh_token, linked_at, unlinked_at
        FROM account_links WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.Linked, &access, &refresh, &linkedAt, &unlinkedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, unavailable(err)
	}
	out.AccessToken = access.String
	out.RefreshToken = refresh.String
	if linkedAt.Valid {
		t := linkedAt.Time
		out.LinkedAt = &t
	}
	if unlinkedAt.Valid {
		t := unlinkedAt.Time
		out.UnlinkedAt = &t
	}
	return out, nil
}

func (l *links) Put(ctx context.Context, ls *model.LinkState) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO account_links (user_id, linked, access_token, refresh_token, linked_at, unlinked_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (user_id) DO UPDATE SET
            linked=EXCLUDED.linked,
            access_token=EXCLUDED.access_token,
            refresh_token=EXCLUDED.refresh_token,
            linked_at=EXCLUDED.linked_at,
            unlinked_at=EXCLUDED.unlinked_at
    `, ls.UserID, ls.Linked, nullStr(ls.AccessToken), nullStr(ls.RefreshToken), ls.LinkedAt, ls.UnlinkedAt)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
