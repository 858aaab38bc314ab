package api

import (
	"net/http"
	"time"

	respond "github.com/elefit/tracker-backend/internal/api/respond"
)

// HealthHandler handles the liveness and index endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// serviceIsHealthy is injected by run.go from the background health
// aggregator; until bound, the service reports unhealthy.
var serviceIsHealthy func() bool = func() bool { return false }

func BindServiceHealth(f func() bool) { serviceIsHealthy = f }

// CheckHealth GET /health
// Always returns 200; the body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if serviceIsHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Index GET /
// Service banner with the routable surface, for quick by-hand checks.
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "online",
		"message": "EleFit Tracker API is running properly",
		"endpoints": []string{
			"/api/log-workout",
			"/api/log-meal",
			"/api/workout-logs",
			"/api/meal-logs",
			"/api/alexa/log",
			"/alexa/auth/log",
			"/api/alexa/link-account",
			"/api/alexa/check-link-status",
			"/api/alexa/unlink-account",
		},
	})
}
