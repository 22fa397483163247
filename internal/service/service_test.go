package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository/sqlite"
)

// adminEmail is the gate address used across service tests.
const adminEmail = "admin@example.com"

// testEnv wires every service against one in-memory database, the same way
// the server's composition root does.
type testEnv struct {
	db       *sqlite.DB
	auth     *AuthService
	projects *ProjectService
	hearts   *HeartService
	comments *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gate, err := auth.NewAdminGate(adminEmail, "gate-secret")
	if err != nil {
		t.Fatalf("failed to create admin gate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		db:       db,
		auth:     NewAuthService(db, db, gate, logger),
		projects: NewProjectService(db, logger),
		hearts:   NewHeartService(db, db, logger),
		comments: NewCommentService(db, db, logger),
	}
}

// user inserts a plain (non-admin) user directly into the store.
func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name}
	if err := e.db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// admin inserts a user with the admin flag already stamped.
func (e *testEnv) admin(t *testing.T) *model.User {
	t.Helper()
	u := &model.User{Name: "the admin", Email: adminEmail, IsAdmin: true}
	if err := e.db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return u
}

// project inserts a project in the given status, bypassing the service so
// tests can set up approved/rejected rows directly.
func (e *testEnv) project(t *testing.T, owner *model.User, status model.Status) *model.Project {
	t.Helper()
	p := &model.Project{
		UserID:      owner.ID,
		Title:       "test project",
		Description: "something worth showing",
		WebsiteURL:  "https://example.dev",
		Status:      status,
	}
	if err := e.db.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}
