package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/elefit/tracker-backend/internal/api/respond"
	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/services"
)

// LogHandler is the direct REST transport over LogService. The direct surface
// carries no identity; records land in the shared anonymous profile, the same
// document the unauthenticated voice webhook writes to.
type LogHandler struct {
	svc *services.LogService
}

func NewLogHandler(svc *services.LogService) *LogHandler { return &LogHandler{svc: svc} }

// workoutRequest uses pointers so a missing field is distinguishable from a
// zero value; the surface reports the first absent field by name.
type workoutRequest struct {
	WorkoutType  *string  `json:"workoutType"`
	ActivityName *string  `json:"activityName"`
	Duration     *int     `json:"duration"`
	Distance     *float64 `json:"distance"`
	Sets         *int     `json:"sets"`
	Reps         *int     `json:"reps"`
	Timestamp    *string  `json:"timestamp"`
	Source       *string  `json:"source"`
}

func (r *workoutRequest) missingField() string {
	switch {
	case r.WorkoutType == nil:
		return "workoutType"
	case r.ActivityName == nil:
		return "activityName"
	case r.Duration == nil:
		return "duration"
	case r.Timestamp == nil:
		return "timestamp"
	case r.Source == nil:
		return "source"
	}
	return ""
}

func (r *workoutRequest) toEvent() *model.LogEvent {
	return &model.LogEvent{
		Kind:         model.KindWorkout,
		WorkoutType:  *r.WorkoutType,
		ActivityName: *r.ActivityName,
		DurationMin:  *r.Duration,
		Distance:     r.Distance,
		Sets:         r.Sets,
		Reps:         r.Reps,
		Timestamp:    *r.Timestamp,
		Source:       *r.Source,
	}
}

type mealRequest struct {
	MealType  *string   `json:"mealType"`
	FoodItems *[]string `json:"foodItems"`
	Timestamp *string   `json:"timestamp"`
	Source    *string   `json:"source"`
}

func (r *mealRequest) missingField() string {
	switch {
	case r.MealType == nil:
		return "mealType"
	case r.FoodItems == nil:
		return "foodItems"
	case r.Timestamp == nil:
		return "timestamp"
	case r.Source == nil:
		return "source"
	}
	return ""
}

func (r *mealRequest) toEvent() *model.LogEvent {
	return &model.LogEvent{
		Kind:      model.KindMeal,
		MealType:  *r.MealType,
		FoodItems: *r.FoodItems,
		Timestamp: *r.Timestamp,
		Source:    *r.Source,
	}
}

// LogWorkout POST /api/log-workout
func (h *LogHandler) LogWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if f := req.missingField(); f != "" {
		respond.WriteBadRequest(w, "missing required field: "+f)
		return
	}

	res, err := h.svc.Log(r.Context(), model.AnonymousUserID, req.toEvent())
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Workout logged successfully",
		"workout_id": res.RecordID,
	})
}

// LogMeal POST /api/log-meal
func (h *LogHandler) LogMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if f := req.missingField(); f != "" {
		respond.WriteBadRequest(w, "missing required field: "+f)
		return
	}

	res, err := h.svc.Log(r.Context(), model.AnonymousUserID, req.toEvent())
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Meal logged successfully",
		"meal_id": res.RecordID,
	})
}

// ListWorkouts GET /api/workout-logs
func (h *LogHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindWorkout)
}

// ListMeals GET /api/meal-logs
func (h *LogHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindMeal)
}

func (h *LogHandler) list(w http.ResponseWriter, r *http.Request, kind model.LogKind) {
	recs, err := h.svc.ListLogs(r.Context(), kind)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	if recs == nil {
		recs = []*model.LogRecord{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"logs":    recs,
	})
}
