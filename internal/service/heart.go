package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/guest"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// HeartService is the like ledger: at most one heart per (project, actor),
// where the actor is an authenticated user or a guest fingerprint.
//
// Every mutating operation returns the fresh live count so the UI can render
// it without a second round trip. The count is always a COUNT(*) over the
// ledger — never a cached number that could drift.
type HeartService struct {
	hearts   repository.HeartRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewHeartService creates a HeartService.
func NewHeartService(
	hearts repository.HeartRepository,
	projects repository.ProjectRepository,
	logger *slog.Logger,
) *HeartService {
	return &HeartService{hearts: hearts, projects: projects, logger: logger}
}

// AddUserHeart hearts a project for an authenticated user.
//
// The project must exist and be approved. Uniqueness rides entirely on the
// store's partial unique index: we insert and translate a conflict, so two
// racing adds still admit exactly one heart and the loser hears
// "already hearted", never a 500.
func (s *HeartService) AddUserHeart(ctx context.Context, projectID, userID string) (int, error) {
	if err := s.requireApproved(ctx, projectID); err != nil {
		return 0, err
	}

	heart := &model.Heart{ProjectID: projectID, UserID: userID}
	if err := s.hearts.CreateHeart(ctx, heart); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return 0, apperror.Conflict("You have already hearted this project")
		}
		return 0, fmt.Errorf("adding heart: %w", err)
	}

	s.logger.Info("heart added",
		slog.String("projectID", projectID),
		slog.String("userID", userID),
	)

	return s.count(ctx, projectID)
}

// RemoveUserHeart removes a user's heart. Removal is idempotent: removing a
// heart that was never there (or already removed) is a no-op success.
func (s *HeartService) RemoveUserHeart(ctx context.Context, projectID, userID string) (int, error) {
	if err := s.hearts.DeleteHeartByUser(ctx, projectID, userID); err != nil {
		return 0, fmt.Errorf("removing heart: %w", err)
	}
	return s.count(ctx, projectID)
}

// AddGuestHeart hearts a project for an anonymous guest fingerprint.
//
// An explicit pre-check produces the friendly "already liked" answer on the
// common path; the store's partial unique index on (project_id, guest_id)
// remains the real guarantee when two adds race past the check together.
func (s *HeartService) AddGuestHeart(ctx context.Context, projectID, guestID string) (int, error) {
	guestID = guest.Normalize(guestID)
	if guestID == "" {
		return 0, apperror.Validation("Guest ID is required")
	}

	if err := s.requireApproved(ctx, projectID); err != nil {
		return 0, err
	}

	hearted, err := s.hearts.HasGuestHeart(ctx, projectID, guestID)
	if err != nil {
		return 0, fmt.Errorf("checking guest heart: %w", err)
	}
	if hearted {
		return 0, apperror.Conflict("You have already liked this project")
	}

	heart := &model.Heart{ProjectID: projectID, GuestID: guestID}
	if err := s.hearts.CreateHeart(ctx, heart); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the race between pre-check and insert — same answer.
			return 0, apperror.Conflict("You have already liked this project")
		}
		return 0, fmt.Errorf("adding guest heart: %w", err)
	}

	s.logger.Info("guest heart added", slog.String("projectID", projectID))

	return s.count(ctx, projectID)
}

// RemoveGuestHeart removes a guest's heart and returns the fresh count whether
// or not a row existed.
func (s *HeartService) RemoveGuestHeart(ctx context.Context, projectID, guestID string) (int, error) {
	guestID = guest.Normalize(guestID)
	if guestID == "" {
		return 0, apperror.Validation("Guest ID is required")
	}

	if err := s.hearts.DeleteHeartByGuest(ctx, projectID, guestID); err != nil {
		return 0, fmt.Errorf("removing guest heart: %w", err)
	}
	return s.count(ctx, projectID)
}

// GuestHeartStatus reports whether a guest already hearted a project. The UI
// calls this on load to render the heart state.
func (s *HeartService) GuestHeartStatus(ctx context.Context, projectID, guestID string) (bool, error) {
	guestID = guest.Normalize(guestID)
	if guestID == "" {
		return false, apperror.Validation("Guest ID is required")
	}
	return s.hearts.HasGuestHeart(ctx, projectID, guestID)
}

// requireApproved gates heart targets on visibility: a missing project and a
// non-approved one are the same NotFound.
func (s *HeartService) requireApproved(ctx context.Context, projectID string) error {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status != model.StatusApproved {
		return apperror.NotFound("project", projectID)
	}
	return nil
}

func (s *HeartService) count(ctx context.Context, projectID string) (int, error) {
	count, err := s.hearts.CountHearts(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("counting hearts: %w", err)
	}
	return count, nil
}
