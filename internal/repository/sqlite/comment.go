package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// compile-time check that *DB implements repository.CommentRepository
var _ repository.CommentRepository = (*DB)(nil)

// CreateComment appends a comment to a project's thread. Approval and
// authentication checks happened in the service; this layer only persists.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, project_id, user_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID,
		comment.ProjectID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// ListComments returns a project's thread oldest-first with the author
// projection (id, name, social handle; never email) joined onto each row.
func (db *DB) ListComments(ctx context.Context, projectID string) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.project_id, c.user_id, c.content, c.created_at, c.updated_at,
		        u.name, u.social_handle
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.project_id = ?
		 ORDER BY c.created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for project %s: %w", projectID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var (
			c            model.Comment
			authorName   string
			authorHandle string
		)
		if err := rows.Scan(
			&c.ID, &c.ProjectID, &c.UserID, &c.Content,
			&c.CreatedAt, &c.UpdatedAt,
			&authorName, &authorHandle,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		c.Author = &model.Author{ID: c.UserID, Name: authorName, SocialHandle: authorHandle}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}
