package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/elefit/tracker-backend/internal/api/respond"
	"github.com/elefit/tracker-backend/internal/auth"
	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/services"
	"github.com/elefit/tracker-backend/internal/voice"
)

// VoiceHandler is the webhook transport for the voice platform. Whatever goes
// wrong, the platform always receives HTTP 200 with a well-formed envelope;
// failures surface as spoken apologies.
type VoiceHandler struct {
	normalizer *voice.Normalizer
	svc        *services.LogService
	verifier   auth.Verifier
	log        zerolog.Logger
}

func NewVoiceHandler(n *voice.Normalizer, svc *services.LogService, v auth.Verifier, log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{normalizer: n, svc: svc, verifier: v, log: log}
}

// HandleWebhook POST /api/alexa/log
//
// The unauthenticated webhook accepts two payload shapes: a platform request
// envelope, and a direct {logType, ...} body that dispatches to the same
// logic as the direct REST surface. Voice events land under the shared
// anonymous identity.
func (h *VoiceHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.WriteBadRequest(w, "failed to read request body")
		return
	}

	var env voice.Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.IsVoiceRequest() {
		h.respondVoice(w, r, &env, model.AnonymousUserID)
		return
	}

	h.dispatchDirect(w, r, body)
}

// HandleAuthWebhook POST /alexa/auth/log
//
// The authenticated webhook requires the account-linking access token on the
// envelope. A missing or unverifiable token turns into a link-account prompt
// card; the platform never sees an HTTP error.
func (h *VoiceHandler) HandleAuthWebhook(w http.ResponseWriter, r *http.Request) {
	var env voice.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil || !env.IsVoiceRequest() {
		respond.WriteJSON(w, http.StatusOK, voice.RenderError())
		return
	}

	token := env.AccessToken()
	if token == "" {
		respond.WriteJSON(w, http.StatusOK, voice.RenderLinkPrompt())
		return
	}

	id, err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			h.log.Debug().Err(err).Msg("voice token rejected, prompting for link")
			respond.WriteJSON(w, http.StatusOK, voice.RenderLinkPrompt())
			return
		}
		h.log.Error().Err(err).Msg("voice token verification failed")
		respond.WriteJSON(w, http.StatusOK, voice.RenderError())
		return
	}

	h.respondVoice(w, r, &env, id.Email)
}

func (h *VoiceHandler) respondVoice(w http.ResponseWriter, r *http.Request, env *voice.Envelope, userID string) {
	out := h.normalizer.Normalize(env)
	if out.Kind != voice.OutcomeLog {
		respond.WriteJSON(w, http.StatusOK, voice.RenderControl(out.Kind))
		return
	}

	if _, err := h.svc.Log(r.Context(), userID, out.Event); err != nil {
		h.log.Error().Err(err).
			Str("user_id", userID).
			Str("kind", string(out.Event.Kind)).
			Msg("voice log failed")
		respond.WriteJSON(w, http.StatusOK, voice.RenderLogError(out.Event.Kind))
		return
	}
	respond.WriteJSON(w, http.StatusOK, voice.RenderLogged(out.Event))
}

// directRequest is the non-envelope payload the webhook accepts from callers
// that cannot speak the platform protocol. It is the union of the workout and
// meal bodies plus the dispatch tag.
type directRequest struct {
	LogType      string    `json:"logType"`
	WorkoutType  *string   `json:"workoutType"`
	ActivityName *string   `json:"activityName"`
	Duration     *int      `json:"duration"`
	Distance     *float64  `json:"distance"`
	Sets         *int      `json:"sets"`
	Reps         *int      `json:"reps"`
	MealType     *string   `json:"mealType"`
	FoodItems    *[]string `json:"foodItems"`
	Timestamp    *string   `json:"timestamp"`
	Source       *string   `json:"source"`
}

func (h *VoiceHandler) dispatchDirect(w http.ResponseWriter, r *http.Request, body []byte) {
	var req directRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}

	var (
		event *model.LogEvent
		idKey string
	)
	switch req.LogType {
	case "workout":
		wr := workoutRequest{
			WorkoutType:  req.WorkoutType,
			ActivityName: req.ActivityName,
			Duration:     req.Duration,
			Distance:     req.Distance,
			Sets:         req.Sets,
			Reps:         req.Reps,
			Timestamp:    req.Timestamp,
			Source:       req.Source,
		}
		if f := wr.missingField(); f != "" {
			respond.WriteBadRequest(w, "missing required field: "+f)
			return
		}
		event, idKey = wr.toEvent(), "workout_id"
	case "meal":
		mr := mealRequest{
			MealType:  req.MealType,
			FoodItems: req.FoodItems,
			Timestamp: req.Timestamp,
			Source:    req.Source,
		}
		if f := mr.missingField(); f != "" {
			respond.WriteBadRequest(w, "missing required field: "+f)
			return
		}
		event, idKey = mr.toEvent(), "meal_id"
	default:
		respond.WriteBadRequest(w, "invalid log type")
		return
	}

	res, err := h.svc.Log(r.Context(), model.AnonymousUserID, event)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Log recorded successfully",
		idKey:     res.RecordID,
	})
}

// DebugPayloads GET /api/debug/alexa
//
// Returns ready-to-send sample envelopes for exercising the webhook by hand.
func (h *VoiceHandler) DebugPayloads(w http.ResponseWriter, r *http.Request) {
	samples := map[string]interface{}{
		"launch": voice.Envelope{
			Version: "1.0",
			Request: voice.Request{Type: voice.TypeLaunch},
		},
		"log_workout": voice.Envelope{
			Version: "1.0",
			Request: voice.Request{
				Type: voice.TypeIntent,
				Intent: &voice.Intent{
					Name: voice.IntentLogWorkout,
					Slots: voice.Slots{
						"WorkoutType": {Name: "WorkoutType", Value: "running"},
						"Duration":    {Name: "Duration", Value: "30"},
					},
				},
			},
		},
		"log_meal": voice.Envelope{
			Version: "1.0",
			Request: voice.Request{
				Type: voice.TypeIntent,
				Intent: &voice.Intent{
					Name: voice.IntentLogMeal,
					Slots: voice.Slots{
						"MealType": {Name: "MealType", Value: "breakfast"},
						"FoodItem": {Name: "FoodItem", Value: "oatmeal"},
					},
				},
			},
		},
	}
	respond.WriteJSON(w, http.StatusOK, samples)
}
