package model

import (
	"errors"
	"testing"
)

func TestValidateWorkout(t *testing.T) {
	valid := LogEvent{
		Kind:         KindWorkout,
		WorkoutType:  "cardio",
		ActivityName: "running",
		DurationMin:  30,
		Timestamp:    "2025-03-14",
		Source:       SourceWeb,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid workout rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*LogEvent)
	}{
		{"missing workoutType", func(e *LogEvent) { e.WorkoutType = "" }},
		{"missing activityName", func(e *LogEvent) { e.ActivityName = "" }},
		{"negative duration", func(e *LogEvent) { e.DurationMin = -1 }},
		{"missing timestamp", func(e *LogEvent) { e.Timestamp = "" }},
		{"missing source", func(e *LogEvent) { e.Source = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			if err := e.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestValidateMeal(t *testing.T) {
	valid := LogEvent{
		Kind:      KindMeal,
		MealType:  "snack",
		FoodItems: []string{},
		Timestamp: "2025-03-14",
		Source:    SourceAlexa,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid meal rejected: %v", err)
	}

	t.Run("empty food list is allowed", func(t *testing.T) {
		e := valid
		e.FoodItems = []string{}
		if err := e.Validate(); err != nil {
			t.Errorf("empty list rejected: %v", err)
		}
	})

	t.Run("nil food list is not", func(t *testing.T) {
		e := valid
		e.FoodItems = nil
		if err := e.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("missing mealType", func(t *testing.T) {
		e := valid
		e.MealType = ""
		if err := e.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestValidateUnknownKind(t *testing.T) {
	e := LogEvent{Kind: LogKind("nap"), Timestamp: "2025-03-14", Source: SourceWeb}
	if err := e.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
