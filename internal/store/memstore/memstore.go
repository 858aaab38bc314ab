// Package memstore provides an in-memory store.Store backing the "memory"
// DB driver, used by tests. All data is lost on process exit.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		logs:     &logs{records: map[model.LogKind][]*model.LogRecord{}},
		profiles: &profiles{docs: map[string]*model.Profile{}},
		links:    &links{docs: map[string]*model.LinkState{}},
	}
}

type memStore struct {
	logs     *logs
	profiles *profiles
	links    *links
}

func (s *memStore) Logs() store.Logs         { return s.logs }
func (s *memStore) Profiles() store.Profiles { return s.profiles }
func (s *memStore) Links() store.Links       { return s.links }

// HealthPing implements health.HealthPinger; the in-memory store is always
// reachable.
func (s *memStore) HealthPing(ctx context.Context) error { return nil }

// --- Logs ---

type logs struct {
	mu      sync.Mutex
	nextSeq int64
	records map[model.LogKind][]*model.LogRecord
}

func (l *logs) Append(ctx context.Context, userID string, e *model.LogEvent) (*model.LogRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSeq++
	rec := &model.LogRecord{
		ID:       uuid.New().String(),
		Seq:      l.nextSeq,
		UserID:   userID,
		LogEvent: *e,
	}
	rec.FoodItems = copyItems(e.FoodItems)
	l.records[e.Kind] = append(l.records[e.Kind], rec)
	return copyRecord(rec), nil
}

func (l *logs) ListAll(ctx context.Context, kind model.LogKind) ([]*model.LogRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*model.LogRecord, 0, len(l.records[kind]))
	for _, rec := range l.records[kind] {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].Seq > out[j].Seq
	})
	return out, nil
}

func copyRecord(rec *model.LogRecord) *model.LogRecord {
	cp := *rec
	cp.FoodItems = copyItems(rec.FoodItems)
	return &cp
}

func copyItems(items []string) []string {
	if items == nil {
		return nil
	}
	return append([]string(nil), items...)
}

// --- Profiles ---

type profiles struct {
	mu   sync.Mutex
	docs map[string]*model.Profile
}

func (p *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc, ok := p.docs[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return copyProfile(doc), nil
}

func (p *profiles) Put(ctx context.Context, doc *model.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.docs[doc.UserID] = copyProfile(doc)
	return nil
}

func copyProfile(doc *model.Profile) *model.Profile {
	cp := &model.Profile{
		UserID:      doc.UserID,
		WorkoutLogs: append([]model.LogRecord(nil), doc.WorkoutLogs...),
		MealLogs:    append([]model.LogRecord(nil), doc.MealLogs...),
	}
	return cp
}

// --- Links ---

type links struct {
	mu   sync.Mutex
	docs map[string]*model.LinkState
}

func (l *links) Get(ctx context.Context, userID string) (*model.LinkState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, ok := l.docs[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (l *links) Put(ctx context.Context, ls *model.LinkState) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cp := *ls
	l.docs[ls.UserID] = &cp
	return nil
}
