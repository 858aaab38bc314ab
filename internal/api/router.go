package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/api/recovery"
	"github.com/elefit/tracker-backend/internal/auth"
	"github.com/elefit/tracker-backend/internal/services"
	"github.com/elefit/tracker-backend/internal/voice"
)

// Deps carries the wired services the router exposes over HTTP.
type Deps struct {
	Logs     *services.LogService
	Linking  *services.LinkingService
	Verifier auth.Verifier
	Logger   zerolog.Logger
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler()
	logHandler := NewLogHandler(d.Logs)
	voiceHandler := NewVoiceHandler(voice.NewNormalizer(d.Logger), d.Logs, d.Verifier, d.Logger)
	linkingHandler := NewLinkingHandler(d.Linking, d.Verifier)

	// Service banner and health
	router.HandleFunc("/", healthHandler.Index).Methods("GET")
	router.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")

	// Direct REST surface
	router.HandleFunc("/api/log-workout", logHandler.LogWorkout).Methods("POST")
	router.HandleFunc("/api/log-meal", logHandler.LogMeal).Methods("POST")
	router.HandleFunc("/api/workout-logs", logHandler.ListWorkouts).Methods("GET")
	router.HandleFunc("/api/meal-logs", logHandler.ListMeals).Methods("GET")

	// Voice webhooks
	router.HandleFunc("/api/alexa/log", voiceHandler.HandleWebhook).Methods("POST")
	router.HandleFunc("/alexa/auth/log", voiceHandler.HandleAuthWebhook).Methods("POST")
	router.HandleFunc("/api/debug/alexa", voiceHandler.DebugPayloads).Methods("GET")

	// Account linking
	router.HandleFunc("/api/alexa/link-account", linkingHandler.LinkAccount).Methods("POST")
	router.HandleFunc("/api/alexa/check-link-status", linkingHandler.CheckLinkStatus).Methods("GET")
	router.HandleFunc("/api/alexa/unlink-account", linkingHandler.UnlinkAccount).Methods("POST")

	return router
}
