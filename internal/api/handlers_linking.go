package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/elefit/tracker-backend/internal/api/respond"
	"github.com/elefit/tracker-backend/internal/auth"
	"github.com/elefit/tracker-backend/internal/services"
)

// LinkingHandler is the REST transport for account linking. Every operation
// requires a verified identity; none accept a caller-supplied user string.
type LinkingHandler struct {
	svc      *services.LinkingService
	verifier auth.Verifier
}

func NewLinkingHandler(svc *services.LinkingService, v auth.Verifier) *LinkingHandler {
	return &LinkingHandler{svc: svc, verifier: v}
}

func (h *LinkingHandler) identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	token, err := auth.ExtractBearer(r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return nil, false
	}
	id, err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		respond.WriteFromError(w, err)
		return nil, false
	}
	return id, true
}

// LinkAccount POST /api/alexa/link-account
func (h *LinkingHandler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if req.Code == "" || req.RedirectURI == "" {
		respond.WriteBadRequest(w, "missing code or redirect_uri")
		return
	}

	if _, err := h.svc.Link(r.Context(), id.Email, req.Code, req.RedirectURI); err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, respond.StatusResponse{
		Success: true,
		Message: "Account linked successfully",
	})
}

// CheckLinkStatus GET /api/alexa/check-link-status
func (h *LinkingHandler) CheckLinkStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	linked, err := h.svc.Status(r.Context(), id.Email)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"isLinked": linked,
	})
}

// UnlinkAccount POST /api/alexa/unlink-account
func (h *LinkingHandler) UnlinkAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.svc.Unlink(r.Context(), id.Email); err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, respond.StatusResponse{
		Success: true,
		Message: "Account unlinked successfully",
	})
}
