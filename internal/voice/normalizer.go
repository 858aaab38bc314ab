package voice

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
)

// Defaults applied when slots are missing or malformed. A spoken conversation
// cannot surface a field error, so the normalizer never rejects a request.
const (
	DefaultWorkoutType = "cardio"
	DefaultMealType    = "snack"
	DefaultDurationMin = 30
)

// OutcomeKind tags the result of normalizing an envelope.
type OutcomeKind string

const (
	OutcomeWelcome      OutcomeKind = "welcome"
	OutcomeGoodbye      OutcomeKind = "goodbye"
	OutcomeHelp         OutcomeKind = "help"
	OutcomeUnrecognized OutcomeKind = "unrecognized"
	OutcomeUnhandled    OutcomeKind = "unhandled"
	OutcomeLog          OutcomeKind = "log"
)

// Outcome is either a control response or a canonical LogEvent ready for
// persistence. Event is set only when Kind is OutcomeLog.
type Outcome struct {
	Kind  OutcomeKind
	Event *model.LogEvent
}

// Normalizer turns envelopes into outcomes. It is a pure transformation;
// persistence happens downstream.
type Normalizer struct {
	now func() time.Time
	log zerolog.Logger
}

func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{now: time.Now, log: log}
}

// Normalize maps the envelope to an outcome. Malformed or missing slot data
// degrades to defaults; this method never fails.
func (n *Normalizer) Normalize(env *Envelope) Outcome {
	switch env.Request.Type {
	case TypeLaunch:
		return Outcome{Kind: OutcomeWelcome}
	case TypeSessionEnded:
		return Outcome{Kind: OutcomeGoodbye}
	case TypeIntent:
		return n.normalizeIntent(env)
	default:
		n.log.Debug().Str("request_type", string(env.Request.Type)).Msg("unhandled request type")
		return Outcome{Kind: OutcomeUnhandled}
	}
}

func (n *Normalizer) normalizeIntent(env *Envelope) Outcome {
	slots := env.IntentSlots()

	switch env.IntentName() {
	case IntentLogWorkout:
		return Outcome{Kind: OutcomeLog, Event: n.workoutEvent(slots)}
	case IntentLogMeal:
		return Outcome{Kind: OutcomeLog, Event: n.mealEvent(slots)}
	case IntentHelp:
		return Outcome{Kind: OutcomeHelp}
	case IntentStop, IntentCancel:
		return Outcome{Kind: OutcomeGoodbye}
	default:
		n.log.Debug().Str("intent", env.IntentName()).Msg("unrecognized intent")
		return Outcome{Kind: OutcomeUnrecognized}
	}
}

func (n *Normalizer) workoutEvent(slots Slots) *model.LogEvent {
	workoutType := strings.ToLower(ResolveSlot(slots, []string{"WorkoutType", "workoutType"}, DefaultWorkoutType))

	duration := DefaultDurationMin
	if raw := ResolveSlot(slots, []string{"Duration", "duration"}, ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			duration = v
		} else {
			n.log.Debug().Str("duration", raw).Msg("invalid duration slot, using default")
		}
	}

	return &model.LogEvent{
		Kind:        model.KindWorkout,
		WorkoutType: workoutType,
		// The voice flow has no slot for the activity name.
		ActivityName: workoutType,
		DurationMin:  duration,
		Timestamp:    n.now().Format("2006-01-02"),
		Source:       model.SourceAlexa,
	}
}

func (n *Normalizer) mealEvent(slots Slots) *model.LogEvent {
	mealType := strings.ToLower(ResolveSlot(slots, []string{"MealType", "mealType"}, DefaultMealType))

	foodItems := []string{}
	if item := ResolveSlot(slots, []string{"FoodItem", "foodItems"}, ""); item != "" {
		foodItems = append(foodItems, item)
	}

	return &model.LogEvent{
		Kind:      model.KindMeal,
		MealType:  mealType,
		FoodItems: foodItems,
		Timestamp: n.now().Format("2006-01-02"),
		Source:    model.SourceAlexa,
	}
}
