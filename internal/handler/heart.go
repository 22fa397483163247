package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/service"
)

// HeartHandler exposes the like ledger over HTTP, with separate routes for
// authenticated users (identity from the session) and guests (identity from a
// client-supplied fingerprint).
type HeartHandler struct {
	hearts *service.HeartService
	logger *slog.Logger
}

// NewHeartHandler creates a HeartHandler.
func NewHeartHandler(hearts *service.HeartService, logger *slog.Logger) *HeartHandler {
	return &HeartHandler{hearts: hearts, logger: logger}
}

// heartResponse carries the fresh live count after every mutation so the UI
// never needs a follow-up fetch.
type heartResponse struct {
	HeartsCount int `json:"heartsCount"`
}

// HandleAdd hearts a project as the authenticated user.
//
// HTTP: POST /api/projects/{id}/heart (behind RequireAuth)
// 409 with "already hearted" when this user already hearted it.
func (h *HeartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	count, err := h.hearts.AddUserHeart(r.Context(), projectID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, heartResponse{HeartsCount: count})
}

// HandleRemove removes the authenticated user's heart. Idempotent: removing a
// heart that isn't there still answers 200 with the current count.
//
// HTTP: DELETE /api/projects/{id}/heart (behind RequireAuth)
func (h *HeartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	count, err := h.hearts.RemoveUserHeart(r.Context(), projectID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, heartResponse{HeartsCount: count})
}

type guestHeartRequest struct {
	GuestID string `json:"guestId"`
}

// HandleGuestAdd hearts a project as an anonymous guest.
//
// HTTP: POST /api/projects/{id}/guest-heart
// BODY: {"guestId": "<client fingerprint>"}
func (h *HeartHandler) HandleGuestAdd(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req guestHeartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	count, err := h.hearts.AddGuestHeart(r.Context(), projectID, req.GuestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, heartResponse{HeartsCount: count})
}

// HandleGuestRemove removes a guest's heart and returns the fresh count
// whether or not a row existed.
//
// HTTP: DELETE /api/projects/{id}/guest-heart
func (h *HeartHandler) HandleGuestRemove(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req guestHeartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	count, err := h.hearts.RemoveGuestHeart(r.Context(), projectID, req.GuestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, heartResponse{HeartsCount: count})
}

// HandleGuestStatus reports whether a guest already hearted a project; the UI
// calls it on page load to render the heart state.
//
// HTTP: GET /api/projects/{id}/guest-heart/status?guestId=...
func (h *HeartHandler) HandleGuestStatus(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	guestID := r.URL.Query().Get("guestId")

	hearted, err := h.hearts.GuestHeartStatus(r.Context(), projectID, guestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hearted": hearted})
}
