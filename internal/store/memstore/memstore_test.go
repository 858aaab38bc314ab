package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
	"github.com/elefit/tracker-backend/internal/store/storetest"
)

func TestMemStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestMemStore_ConcurrentAppendsAssignUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev := &model.LogEvent{
				Kind:         model.KindWorkout,
				WorkoutType:  "cardio",
				ActivityName: "cardio",
				DurationMin:  30,
				Timestamp:    "2024-05-01",
				Source:       model.SourceTest,
			}
			rec, err := s.Logs().Append(ctx, model.AnonymousUserID, ev)
			if err != nil {
				t.Errorf("Append: %v", err)
				return
			}
			ids <- rec.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate record id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d unique ids, want %d", len(seen), n)
	}
}

func TestMemStore_AppendDetachesFoodItems(t *testing.T) {
	s := New()
	ctx := context.Background()

	items := []string{"eggs", "toast"}
	ev := &model.LogEvent{
		Kind:      model.KindMeal,
		MealType:  "breakfast",
		FoodItems: items,
		Timestamp: "2024-05-01",
		Source:    model.SourceTest,
	}
	rec, err := s.Logs().Append(ctx, model.AnonymousUserID, ev)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	items[0] = "mutated"
	rec.FoodItems[1] = "also mutated"

	got, err := s.Logs().ListAll(ctx, model.KindMeal)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].FoodItems[0] != "eggs" || got[0].FoodItems[1] != "toast" {
		t.Fatalf("stored foodItems = %v, want [eggs toast]", got[0].FoodItems)
	}
}
