package model

import "fmt"

// Validate checks that every required field for the event's kind is present.
// Voice-derived events satisfy these rules because the normalizer fills the
// defaults (activity name from workout type) before the event reaches the
// persistence layer; direct API submissions must carry the fields themselves.
func (e *LogEvent) Validate() error {
	if e.Timestamp == "" {
		return fmt.Errorf("%w: missing required field: timestamp", ErrValidation)
	}
	if e.Source == "" {
		return fmt.Errorf("%w: missing required field: source", ErrValidation)
	}
	switch e.Kind {
	case KindWorkout:
		if e.WorkoutType == "" {
			return fmt.Errorf("%w: missing required field: workoutType", ErrValidation)
		}
		if e.ActivityName == "" {
			return fmt.Errorf("%w: missing required field: activityName", ErrValidation)
		}
		if e.DurationMin < 0 {
			return fmt.Errorf("%w: duration must be >= 0", ErrValidation)
		}
	case KindMeal:
		if e.MealType == "" {
			return fmt.Errorf("%w: missing required field: mealType", ErrValidation)
		}
		if e.FoodItems == nil {
			return fmt.Errorf("%w: missing required field: foodItems", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown log kind %q", ErrValidation, e.Kind)
	}
	return nil
}
