package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/elefit/tracker-backend/internal/store"
	"github.com/elefit/tracker-backend/internal/store/storetest"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		t.Helper()
		path := filepath.Join(t.TempDir(), "tracker.db")
		s, err := New(path)
		if err != nil {
			t.Fatalf("sqlite open: %v", err)
		}
		return s
	})
}
