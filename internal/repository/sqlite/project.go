package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// compile-time check that *DB implements repository.ProjectRepository
var _ repository.ProjectRepository = (*DB)(nil)

// projectColumns is the SELECT list shared by every project read. hearts_count
// is a correlated COUNT over the hearts table, so the value on a scanned
// project always equals the live ledger — there is no denormalized counter to
// drift out of sync. The owner projection (name, social handle, never email)
// rides along from the users join.
const projectColumns = `
	p.id, p.user_id, p.title, p.description,
	p.website_url, p.github_url, p.icon_url, p.status,
	(SELECT COUNT(*) FROM hearts h WHERE h.project_id = p.id) AS hearts_count,
	p.created_at, p.updated_at,
	u.name, u.social_handle`

// scanProject reads one joined project row.
func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	var (
		p           model.Project
		ownerName   string
		ownerHandle string
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&p.WebsiteURL,
		&p.GitHubURL,
		&p.IconURL,
		&p.Status,
		&p.HeartsCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&ownerName,
		&ownerHandle,
	)
	if err != nil {
		return nil, err
	}

	p.Owner = &model.Author{ID: p.UserID, Name: ownerName, SocialHandle: ownerHandle}
	return &p, nil
}

// CreateProject inserts a new project. Status is whatever the caller set — the
// service forces pending before handing the model down.
func (db *DB) CreateProject(ctx context.Context, project *model.Project) error {
	project.ID = xid.New().String()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO projects
		 (id, user_id, title, description, website_url, github_url, icon_url, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.WebsiteURL,
		project.GitHubURL,
		project.IconURL,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	return nil
}

// GetProject fetches a single project with owner projection and live hearts
// count, regardless of status. Visibility rules live in the service layer.
func (db *DB) GetProject(ctx context.Context, id string) (*model.Project, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+`
		 FROM projects p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = ?`,
		id,
	)

	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	return p, nil
}

// ListProjects returns projects matching the filter.
//
// The ORDER BY column comes from a whitelist switch, never from caller input —
// interpolating a sort column straight from a query string would be an
// injection hole even though values go through placeholders.
func (db *DB) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + `
		 FROM projects p
		 JOIN users u ON u.id = p.user_id
		 WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		query += ` AND p.status = ?`
		args = append(args, filter.Status)
	}
	if filter.UserID != "" {
		query += ` AND p.user_id = ?`
		args = append(args, filter.UserID)
	}

	var orderCol string
	switch filter.OrderBy {
	case repository.OrderHeartsCount:
		orderCol = "hearts_count"
	case repository.OrderTitle:
		orderCol = "p.title"
	default:
		orderCol = "p.created_at"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderCol, direction)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
}

// UpdateProjectContent mutates the content fields of a project, scoped to its
// owner. The WHERE clause carries both id and user_id: if the caller does not
// own the project, zero rows match and we report NotFound — a non-owner never
// mutates the row and never learns whether it exists.
func (db *DB) UpdateProjectContent(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, website_url = ?, github_url = ?, icon_url = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		project.Title,
		project.Description,
		project.WebsiteURL,
		project.GitHubURL,
		project.IconURL,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", project.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("project", project.ID)
	}

	return nil
}

// UpdateProjectStatus is the moderation path: unscoped by owner, records only
// the new status and bumps updated_at. The admin privilege check happened in
// the service before this was called.
func (db *DB) UpdateProjectStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s status: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("project", id)
	}

	return nil
}

// DeleteProject removes a project. A non-empty ownerID scopes the delete to
// that owner (the non-admin path); empty deletes unconditionally by id (the
// admin path). Heart and comment rows go with it via ON DELETE CASCADE.
func (db *DB) DeleteProject(ctx context.Context, id, ownerID string) error {
	var (
		result sql.Result
		err    error
	)

	if ownerID != "" {
		result, err = db.conn.ExecContext(ctx,
			`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, ownerID)
	} else {
		result, err = db.conn.ExecContext(ctx,
			`DELETE FROM projects WHERE id = ?`, id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("project", id)
	}

	return nil
}
