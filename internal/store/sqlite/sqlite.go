// Package sqlite implements store.Store on a local SQLite file via the
// modernc driver. It backs the "local" build target.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Schema mirrors the postgres layout; seq doubles as the rowid.
const Schema = `
CREATE TABLE IF NOT EXISTS log_records (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    user_id TEXT NOT NULL,
    ts TEXT NOT NULL,
    event TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS log_records_kind_ts ON log_records (kind, ts DESC, seq DESC);

CREATE TABLE IF NOT EXISTS profiles (
    user_id TEXT PRIMARY KEY,
    doc TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS account_links (
    user_id TEXT PRIMARY KEY,
    linked INTEGER NOT NULL DEFAULT 0,
    access_token TEXT,
    refresh_token TEXT,
    linked_at TIMESTAMP,
    unlinked_at TIMESTAMP
);
`

// EnsureSchema creates the tables when they do not exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}

// New opens a SQLite store at path and ensures the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB allows wiring with an existing connection (used by factory and tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Logs() store.Logs         { return &logs{db: s.db} }
func (s *sqliteStore) Profiles() store.Profiles { return &profiles{db: s.db} }
func (s *sqliteStore) Links() store.Links       { return &links{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
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
        INSERT INTO log_records (id, kind, user_id, ts, event, created_at)
        VALUES (?,?,?,?,?,?)
        RETURNING seq
    `, rec.ID, string(e.Kind), userID, e.Timestamp, string(doc), time.Now().UTC())
	if err := row.Scan(&rec.Seq); err != nil {
		return nil, unavailable(err)
	}
	return rec, nil
}

func (l *logs) ListAll(ctx context.Context, kind model.LogKind) ([]*model.LogRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, seq, user_id, event
        FROM log_records WHERE kind=?
        ORDER BY ts DESC, seq DESC
    `, string(kind))
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.LogRecord
	for rows.Next() {
		var rec model.LogRecord
		var doc string
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.UserID, &doc); err != nil {
			return nil, unavailable(err)
		}
		if err := json.Unmarshal([]byte(doc), &rec.LogEvent); err != nil {
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
	var doc string
	row := p.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE user_id=?`, userID)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, unavailable(err)
	}
	out := &model.Profile{UserID: userID}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
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
        INSERT INTO profiles (user_id, doc, updated_at) VALUES (?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET doc=excluded.doc, updated_at=excluded.updated_at
    `, prof.UserID, string(doc), time.Now().UTC())
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
        FROM account_links WHERE user_id=?
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
        VALUES (?,?,?,?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET
            linked=excluded.linked,
            access_token=excluded.access_token,
            refresh_token=excluded.refresh_token,
            linked_at=excluded.linked_at,
            unlinked_at=excluded.unlinked_at
    `, ls.UserID, ls.Linked, nullStr(ls.AccessToken), nullStr(ls.RefreshToken), ls.LinkedAt, ls.UnlinkedAt)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
