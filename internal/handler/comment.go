package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/service"
)

// CommentHandler exposes project comment threads.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// HandleList returns a project's thread, oldest first.
//
// HTTP: GET /api/projects/{id}/comments
// Only approved projects have readable threads; anything else is a 404.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	comments, err := h.comments.List(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// HandleCreate appends a comment as the authenticated user.
//
// HTTP: POST /api/projects/{id}/comments (behind RequireAuth)
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	comment, err := h.comments.Create(r.Context(), projectID, user, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
