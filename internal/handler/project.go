package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
	"github.com/sakif/showcase/internal/service"
)

// ProjectHandler manages project CRUD and moderation endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// HandleList lists projects.
//
// HTTP: GET /api/projects?status=&userId=&orderBy=&order=&limit=&offset=
//
// orderBy: created_at (default) | hearts_count | title; order: asc | desc
// (default desc). The service decides how much of the status filter the
// caller is allowed to see.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.ProjectFilter{
		Status: model.Status(q.Get("status")),
		UserID: q.Get("userId"),
	}

	switch q.Get("orderBy") {
	case "hearts_count":
		filter.OrderBy = repository.OrderHeartsCount
	case "title":
		filter.OrderBy = repository.OrderTitle
	default:
		filter.OrderBy = repository.OrderCreatedAt
	}
	filter.Ascending = q.Get("order") == "asc"

	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	viewer, _ := auth.UserFromContext(r.Context())
	projects, err := h.projects.List(r.Context(), filter, viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// HandleGet fetches a single project.
//
// HTTP: GET /api/projects/{id}
//
// Public callers only ever see approved projects — a pending or suspended one
// answers exactly like a missing ID. The owner and admins see every state.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	viewer, _ := auth.UserFromContext(r.Context())
	project, err := h.projects.Get(r.Context(), id, viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
	GitHubURL   string `json:"githubUrl"`
	IconURL     string `json:"iconUrl"`
}

// HandleCreate submits a new project.
//
// HTTP: POST /api/projects (behind RequireAuth)
//
// Validation failures come back as 400 with the complete list of violated
// rules. Status is always pending regardless of what the body claims.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid project JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	project, err := h.projects.Create(r.Context(), user.ID, service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		GitHubURL:   req.GitHubURL,
		IconURL:     req.IconURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// updateProjectRequest uses pointers so "field absent" and "field set to empty"
// are distinguishable: absent means leave unchanged.
type updateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	WebsiteURL  *string `json:"websiteUrl"`
	GitHubURL   *string `json:"githubUrl"`
	IconURL     *string `json:"iconUrl"`
}

// HandleUpdate edits a project's content fields.
//
// HTTP: PUT /api/projects/{id} (behind RequireAuth; owner only)
//
// A non-owner gets the same 404 a missing project would — never a hint that
// someone else's project exists.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	project, err := h.projects.Update(r.Context(), id, user.ID, service.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		GitHubURL:   req.GitHubURL,
		IconURL:     req.IconURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleDelete removes a project.
//
// HTTP: DELETE /api/projects/{id} (behind RequireAuth)
//
// Owners delete their own; admins delete anything. The split happens in the
// service based on the actor's is_admin flag.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	if err := h.projects.Delete(r.Context(), id, user); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus drives the moderation state machine.
//
// HTTP: PUT /api/projects/{id}/status (behind RequireAuth; admin only)
func (h *ProjectHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, _ := auth.UserFromContext(r.Context())

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	project, err := h.projects.SetStatus(r.Context(), id, model.Status(req.Status), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}
