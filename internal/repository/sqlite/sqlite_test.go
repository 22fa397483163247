package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/showcase/internal/model"
)

// newTestDB returns a fresh in-memory database. Each test gets its own,
// destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestProject inserts a project owned by user with the given status.
func createTestProject(t *testing.T, db *DB, user *model.User, title string, status model.Status) *model.Project {
	t.Helper()
	project := &model.Project{
		UserID:      user.ID,
		Title:       title,
		Description: "a test project",
		WebsiteURL:  "https://example.dev",
		Status:      status,
	}
	if err := db.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again on an existing schema must not error.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}
