package voice

import "testing"

func TestResolveSlot(t *testing.T) {
	cases := []struct {
		name    string
		slots   Slots
		aliases []string
		def     string
		want    string
	}{
		{
			name:    "second alias matches",
			slots:   Slots{"workoutType": {Name: "workoutType", Value: "running"}},
			aliases: []string{"WorkoutType", "workoutType"},
			def:     "cardio",
			want:    "running",
		},
		{
			name:    "first alias wins over later ones",
			slots:   Slots{"WorkoutType": {Value: "Yoga"}, "workoutType": {Value: "running"}},
			aliases: []string{"WorkoutType", "workoutType"},
			def:     "cardio",
			want:    "Yoga",
		},
		{
			name:    "empty bag returns default",
			slots:   Slots{},
			aliases: []string{"WorkoutType", "workoutType"},
			def:     "cardio",
			want:    "cardio",
		},
		{
			name:    "present but empty value is skipped",
			slots:   Slots{"Duration": {Name: "Duration", Value: ""}},
			aliases: []string{"Duration", "duration"},
			def:     "",
			want:    "",
		},
		{
			name:    "case of returned value is preserved",
			slots:   Slots{"MealType": {Value: "BreakFast"}},
			aliases: []string{"MealType"},
			def:     "snack",
			want:    "BreakFast",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveSlot(tc.slots, tc.aliases, tc.def); got != tc.want {
				t.Fatalf("ResolveSlot = %q, want %q", got, tc.want)
			}
		})
	}
}
