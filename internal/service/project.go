package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// ProjectInput carries the content fields of a project submission.
type ProjectInput struct {
	Title       string
	Description string
	WebsiteURL  string
	GitHubURL   string
	IconURL     string
}

// ProjectUpdate carries a partial edit. Nil means "leave unchanged"; the
// merged record must still satisfy the whole-record invariants, so a partial
// update cannot e.g. blank out the last remaining URL.
type ProjectUpdate struct {
	Title       *string
	Description *string
	WebsiteURL  *string
	GitHubURL   *string
	IconURL     *string
}

// ProjectService handles project submission, listing, editing, deletion, and
// the moderation state machine.
type ProjectService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(projects repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// ValidateProject checks a submission and returns EVERY violated rule at once
// as human-readable messages. It never returns early on the first failure —
// the client gets the complete picture in one round trip. An empty slice
// means the submission is valid.
func ValidateProject(in ProjectInput) []string {
	var errs []string

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "Description is required")
	}

	website := strings.TrimSpace(in.WebsiteURL)
	github := strings.TrimSpace(in.GitHubURL)
	icon := strings.TrimSpace(in.IconURL)

	if website == "" && github == "" {
		errs = append(errs, "Either website URL or GitHub URL is required")
	}
	if website != "" && !validURL(website) {
		errs = append(errs, "Website URL is not a valid URL")
	}
	if github != "" {
		if !validURL(github) {
			errs = append(errs, "GitHub URL is not a valid URL")
		} else if u, _ := url.Parse(github); !strings.Contains(u.Host, "github.com") {
			errs = append(errs, "GitHub URL must point to github.com")
		}
	}
	if icon != "" && !validURL(icon) {
		errs = append(errs, "Icon URL is not a valid URL")
	}

	return errs
}

// validURL accepts absolute http(s) URLs only. url.Parse is extremely
// permissive on its own ("not a url" parses fine as a path), so we require a
// scheme and host explicitly.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Create validates and stores a new submission. Status is always forced to
// pending — moderation is the only way into any other state.
func (s *ProjectService) Create(ctx context.Context, userID string, in ProjectInput) (*model.Project, error) {
	if errs := ValidateProject(in); len(errs) > 0 {
		return nil, apperror.Validation(errs...)
	}

	project := &model.Project{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		WebsiteURL:  strings.TrimSpace(in.WebsiteURL),
		GitHubURL:   strings.TrimSpace(in.GitHubURL),
		IconURL:     strings.TrimSpace(in.IconURL),
		Status:      model.StatusPending,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project submitted",
		slog.String("id", project.ID),
		slog.String("userID", userID),
	)

	return project, nil
}

// Get fetches a project, applying the visibility rule: non-approved projects
// are invisible on public surfaces. A guest (nil viewer) or an unrelated user
// asking for a pending/rejected/suspended project gets the same NotFound a
// truly missing ID would — existence must not leak. The owner and admins see
// every state (their dashboard and the moderation queue depend on it).
func (s *ProjectService) Get(ctx context.Context, id string, viewer *model.User) (*model.Project, error) {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.Status != model.StatusApproved && !canSeeHidden(project, viewer) {
		return nil, apperror.NotFound("project", id)
	}

	return project, nil
}

func canSeeHidden(project *model.Project, viewer *model.User) bool {
	return viewer != nil && (viewer.IsAdmin || viewer.ID == project.UserID)
}

// List returns projects matching the filter.
//
// Status visibility: admins may list any status (the moderation queue is
// list(status=pending)); a user listing their own projects sees all of them;
// everyone else is forced onto approved regardless of what they asked for.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter, viewer *model.User) ([]model.Project, error) {
	admin := viewer != nil && viewer.IsAdmin
	ownListing := viewer != nil && filter.UserID == viewer.ID
	if !admin && !ownListing {
		filter.Status = model.StatusApproved
	}

	projects, err := s.projects.ListProjects(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return projects, nil
}

// Update applies a partial content edit for the owner.
//
// The supplied fields are merged onto the stored record and the MERGED record
// is re-validated as a whole — partial updates must still satisfy every
// invariant. The mutation itself is scoped WHERE id AND user_id, so even if a
// non-owner reaches this far the store affects zero rows and reports NotFound;
// someone else's project is never touched and never confirmed to exist.
func (s *ProjectService) Update(ctx context.Context, id string, userID string, upd ProjectUpdate) (*model.Project, error) {
	existing, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperror.NotFound("project", id)
	}

	merged := ProjectInput{
		Title:       existing.Title,
		Description: existing.Description,
		WebsiteURL:  existing.WebsiteURL,
		GitHubURL:   existing.GitHubURL,
		IconURL:     existing.IconURL,
	}
	if upd.Title != nil {
		merged.Title = *upd.Title
	}
	if upd.Description != nil {
		merged.Description = *upd.Description
	}
	if upd.WebsiteURL != nil {
		merged.WebsiteURL = *upd.WebsiteURL
	}
	if upd.GitHubURL != nil {
		merged.GitHubURL = *upd.GitHubURL
	}
	if upd.IconURL != nil {
		merged.IconURL = *upd.IconURL
	}

	if errs := ValidateProject(merged); len(errs) > 0 {
		return nil, apperror.Validation(errs...)
	}

	existing.Title = strings.TrimSpace(merged.Title)
	existing.Description = strings.TrimSpace(merged.Description)
	existing.WebsiteURL = strings.TrimSpace(merged.WebsiteURL)
	existing.GitHubURL = strings.TrimSpace(merged.GitHubURL)
	existing.IconURL = strings.TrimSpace(merged.IconURL)

	if err := s.projects.UpdateProjectContent(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", slog.String("id", id), slog.String("userID", userID))

	return s.projects.GetProject(ctx, id)
}

// Delete removes a project. Admins delete unconditionally; owners delete only
// their own (the store enforces the scope, so a non-owner gets NotFound with
// zero side effects).
func (s *ProjectService) Delete(ctx context.Context, id string, actor *model.User) error {
	ownerScope := actor.ID
	if actor.IsAdmin {
		ownerScope = "" // unconditional by id
	}

	if err := s.projects.DeleteProject(ctx, id, ownerScope); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		slog.String("id", id),
		slog.String("actorID", actor.ID),
		slog.Bool("admin", actor.IsAdmin),
	)
	return nil
}

// SetStatus drives the moderation state machine: pending → approved, rejected
// or suspended, and approved back to suspended to pull a live project.
//
// Only admins may call this; everyone else gets Forbidden before anything is
// read. The transition itself is unconditional — the machine records the
// admin's judgment, it does not second-guess it. Leaving approved hides the
// project from public surfaces but retains its hearts and comments; they
// become reachable again if the project is ever re-approved.
func (s *ProjectService) SetStatus(ctx context.Context, id string, status model.Status, actor *model.User) (*model.Project, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, apperror.Forbidden("admin access required")
	}
	if !model.ValidStatus(status) {
		return nil, apperror.Validation(fmt.Sprintf("Invalid status %q", status))
	}

	if err := s.projects.UpdateProjectStatus(ctx, id, status, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("project status changed",
		slog.String("id", id),
		slog.String("status", string(status)),
		slog.String("adminID", actor.ID),
	)

	return s.projects.GetProject(ctx, id)
}
