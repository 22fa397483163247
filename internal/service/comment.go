package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// CommentService is the append-only comment ledger. Comments attach to
// approved projects only and are always authored by authenticated users —
// guests can heart but never comment.
type CommentService struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	projects repository.ProjectRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{comments: comments, projects: projects, logger: logger}
}

// List returns a project's thread in chronological order. The project must
// exist and be approved; anything else is NotFound, same as a missing ID.
func (s *CommentService) List(ctx context.Context, projectID string) ([]model.Comment, error) {
	if err := s.requireApproved(ctx, projectID); err != nil {
		return nil, err
	}
	return s.comments.ListComments(ctx, projectID)
}

// Create appends a comment for an authenticated author.
//
// author must be non-nil (the route sits behind RequireAuth, but the rule is
// enforced here too — services don't trust their transport). Content is
// trimmed and must be non-empty. The target must be approved: a comment on a
// pending project is rejected with NotFound and no row is written.
func (s *CommentService) Create(ctx context.Context, projectID string, author *model.User, content string) (*model.Comment, error) {
	if author == nil {
		return nil, apperror.Unauthorized("authentication required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Comment content is required")
	}

	if err := s.requireApproved(ctx, projectID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ProjectID: projectID,
		UserID:    author.ID,
		Content:   content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("projectID", projectID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	a := author.AsAuthor()
	comment.Author = &a

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("projectID", projectID),
	)

	return comment, nil
}

func (s *CommentService) requireApproved(ctx context.Context, projectID string) error {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status != model.StatusApproved {
		return apperror.NotFound("project", projectID)
	}
	return nil
}
