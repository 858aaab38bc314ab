package model

import "time"

// LogKind discriminates the two record families in the append store.
type LogKind string

const (
	KindWorkout LogKind = "workout"
	KindMeal    LogKind = "meal"
)

// Origin channel identifiers carried on every event.
const (
	SourceAlexa = "alexa"
	SourceWeb   = "web"
	SourceTest  = "test"
)

// AnonymousUserID is the shared identity for events arriving through the
// unauthenticated voice webhook. That flow carries no user identity at all,
// so every anonymous voice event lands in this single profile document. The
// authenticated webhook derives the identity from the verified email instead.
const AnonymousUserID = "alexa_user"

// LogEvent is the canonical fitness record submitted for persistence.
// Kind-specific fields are populated for one kind and zero for the other.
type LogEvent struct {
	Kind         LogKind  `json:"type"`
	WorkoutType  string   `json:"workoutType,omitempty"`
	ActivityName string   `json:"activityName,omitempty"`
	DurationMin  int      `json:"duration,omitempty"`
	Distance     *float64 `json:"distance,omitempty"`
	Sets         *int     `json:"sets,omitempty"`
	Reps         *int     `json:"reps,omitempty"`
	MealType     string   `json:"mealType,omitempty"`
	FoodItems    []string `json:"foodItems,omitempty"`
	Timestamp    string   `json:"timestamp"`
	Source       string   `json:"source"`
}

// LogRecord is a LogEvent after the append store has assigned its identifier
// and insertion order. Records are never mutated after creation.
type LogRecord struct {
	ID     string `json:"id"`
	Seq    int64  `json:"-"`
	UserID string `json:"-"`
	LogEvent
}

// Profile is the per-user aggregate document: a denormalized copy of every
// log the user has recorded, one ordered slice per kind.
type Profile struct {
	UserID      string      `json:"-"`
	WorkoutLogs []LogRecord `json:"workoutLogs"`
	MealLogs    []LogRecord `json:"mealLogs"`
}

// LinkState records whether a user's Alexa account is linked and the provider
// token pair obtained at link time. The document survives unlink; only the
// flag flips and the tokens are cleared.
type LinkState struct {
	UserID       string     `json:"-"`
	Linked       bool       `json:"linked"`
	AccessToken  string     `json:"accessToken,omitempty"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	LinkedAt     *time.Time `json:"linkedAt,omitempty"`
	UnlinkedAt   *time.Time `json:"unlinkedAt,omitempty"`
}
