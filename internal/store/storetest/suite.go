// Package storetest holds a compliance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated store and
// return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()

	// Append assigns distinct identifiers to equivalent events.
	ev := &model.LogEvent{
		Kind:         model.KindWorkout,
		WorkoutType:  "running",
		ActivityName: "running",
		DurationMin:  30,
		Timestamp:    "2024-05-01",
		Source:       model.SourceTest,
	}
	r1, err := s.Logs().Append(ctx, userID, ev)
	if err != nil {
		t.Fatalf("Append r1: %v", err)
	}
	r2, err := s.Logs().Append(ctx, userID, ev)
	if err != nil {
		t.Fatalf("Append r2: %v", err)
	}
	if r1.ID == "" || r2.ID == "" || r1.ID == r2.ID {
		t.Fatalf("Append: ids not distinct: %q %q", r1.ID, r2.ID)
	}
	if r2.Seq <= r1.Seq {
		t.Fatalf("Append: seq not increasing: %d then %d", r1.Seq, r2.Seq)
	}

	// Older timestamp sorts after newer ones; equal timestamps break ties by
	// insertion order descending.
	old := *ev
	old.Timestamp = "2024-04-01"
	if _, err := s.Logs().Append(ctx, userID, &old); err != nil {
		t.Fatalf("Append old: %v", err)
	}

	workouts, err := s.Logs().ListAll(ctx, model.KindWorkout)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("ListAll: n=%d want 3", len(workouts))
	}
	if workouts[0].ID != r2.ID || workouts[1].ID != r1.ID {
		t.Fatalf("ListAll: order = %q,%q want %q,%q", workouts[0].ID, workouts[1].ID, r2.ID, r1.ID)
	}
	if workouts[2].Timestamp != "2024-04-01" {
		t.Fatalf("ListAll: oldest last, got ts %q", workouts[2].Timestamp)
	}

	// Kinds are separate collections.
	meals, err := s.Logs().ListAll(ctx, model.KindMeal)
	if err != nil {
		t.Fatalf("ListAll meals: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("ListAll meals: n=%d want 0", len(meals))
	}
	mealEv := &model.LogEvent{
		Kind:      model.KindMeal,
		MealType:  "lunch",
		FoodItems: []string{"sandwich", "apple"},
		Timestamp: "2024-05-01",
		Source:    model.SourceTest,
	}
	mr, err := s.Logs().Append(ctx, userID, mealEv)
	if err != nil {
		t.Fatalf("Append meal: %v", err)
	}
	meals, err = s.Logs().ListAll(ctx, model.KindMeal)
	if err != nil || len(meals) != 1 {
		t.Fatalf("ListAll meals after append: n=%d err=%v", len(meals), err)
	}
	if got := meals[0].FoodItems; len(got) != 2 || got[0] != "sandwich" {
		t.Fatalf("ListAll meals: foodItems = %v", got)
	}

	// Profiles: absent document is ErrNotFound; Put then Get round-trips.
	if _, err := s.Profiles().Get(ctx, userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Profiles.Get absent: err=%v want ErrNotFound", err)
	}
	prof := &model.Profile{
		UserID:      userID,
		WorkoutLogs: []model.LogRecord{*r1},
		MealLogs:    []model.LogRecord{*mr},
	}
	if err := s.Profiles().Put(ctx, prof); err != nil {
		t.Fatalf("Profiles.Put: %v", err)
	}
	got, err := s.Profiles().Get(ctx, userID)
	if err != nil {
		t.Fatalf("Profiles.Get: %v", err)
	}
	if len(got.WorkoutLogs) != 1 || got.WorkoutLogs[0].ID != r1.ID {
		t.Fatalf("Profiles.Get: workoutLogs = %+v", got.WorkoutLogs)
	}
	if len(got.MealLogs) != 1 || got.MealLogs[0].MealType != "lunch" {
		t.Fatalf("Profiles.Get: mealLogs = %+v", got.MealLogs)
	}

	// Links: absent is ErrNotFound; Put replaces the whole document.
	if _, err := s.Links().Get(ctx, userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Links.Get absent: err=%v want ErrNotFound", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	ls := &model.LinkState{
		UserID:       userID,
		Linked:       true,
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		LinkedAt:     &now,
	}
	if err := s.Links().Put(ctx, ls); err != nil {
		t.Fatalf("Links.Put: %v", err)
	}
	lg, err := s.Links().Get(ctx, userID)
	if err != nil || !lg.Linked || lg.AccessToken != "at-1" {
		t.Fatalf("Links.Get: %+v err=%v", lg, err)
	}

	// Unlink-shaped overwrite clears tokens and keeps the document.
	ls.Linked = false
	ls.AccessToken = ""
	ls.RefreshToken = ""
	ls.UnlinkedAt = &now
	if err := s.Links().Put(ctx, ls); err != nil {
		t.Fatalf("Links.Put unlink: %v", err)
	}
	lg, err = s.Links().Get(ctx, userID)
	if err != nil {
		t.Fatalf("Links.Get after unlink: %v", err)
	}
	if lg.Linked || lg.AccessToken != "" || lg.RefreshToken != "" || lg.UnlinkedAt == nil {
		t.Fatalf("Links.Get after unlink: %+v", lg)
	}
}
