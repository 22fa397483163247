package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

func TestCreateProject_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	project := createTestProject(t, db, user, "My Tool", model.StatusPending)
	if project.ID == "" {
		t.Fatal("CreateProject() did not set ID")
	}

	got, err := db.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Title != "My Tool" || got.Status != model.StatusPending {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
	if got.HeartsCount != 0 {
		t.Errorf("fresh project HeartsCount = %d, want 0", got.HeartsCount)
	}
	if got.Owner == nil || got.Owner.Name != "alice" {
		t.Errorf("owner projection = %+v, want alice", got.Owner)
	}
}

func TestGetProject_OwnerProjectionExcludesEmail(t *testing.T) {
	// The Author struct carries no email field, so the projection can
	// never leak one. This pins the owner join shape.
	db := newTestDB(t)
	user := &model.User{Name: "alice", Email: "secret@example.com"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	project := createTestProject(t, db, user, "My Tool", model.StatusApproved)

	got, err := db.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Owner.ID != user.ID {
		t.Errorf("Owner.ID = %q, want %q", got.Owner.ID, user.ID)
	}
}

func TestListProjects_StatusFilter(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	createTestProject(t, db, user, "approved one", model.StatusApproved)
	createTestProject(t, db, user, "pending one", model.StatusPending)
	createTestProject(t, db, user, "rejected one", model.StatusRejected)

	got, err := db.ListProjects(context.Background(), repository.ProjectFilter{
		Status: model.StatusApproved,
	})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "approved one" {
		t.Errorf("ListProjects(approved) = %v", got)
	}
}

func TestListProjects_OwnerFilter(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestProject(t, db, alice, "alice's", model.StatusApproved)
	createTestProject(t, db, bob, "bob's", model.StatusApproved)

	got, err := db.ListProjects(context.Background(), repository.ProjectFilter{UserID: bob.ID})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "bob's" {
		t.Errorf("ListProjects(owner=bob) = %v", got)
	}
}

func TestListProjects_OrderByHeartsCount(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	cold := createTestProject(t, db, user, "cold", model.StatusApproved)
	hot := createTestProject(t, db, user, "hot", model.StatusApproved)

	for _, guestID := range []string{"g1", "g2", "g3"} {
		if err := db.CreateHeart(context.Background(), &model.Heart{
			ProjectID: hot.ID, GuestID: guestID,
		}); err != nil {
			t.Fatalf("CreateHeart() error = %v", err)
		}
	}
	_ = cold

	got, err := db.ListProjects(context.Background(), repository.ProjectFilter{
		OrderBy: repository.OrderHeartsCount,
	})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 2 || got[0].Title != "hot" {
		t.Fatalf("hearts_count desc order wrong: %v", got)
	}
	if got[0].HeartsCount != 3 {
		t.Errorf("hot HeartsCount = %d, want 3", got[0].HeartsCount)
	}
}

func TestListProjects_Pagination(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	for i := 0; i < 5; i++ {
		createTestProject(t, db, user, "p", model.StatusApproved)
	}

	page, err := db.ListProjects(context.Background(), repository.ProjectFilter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(page) != 1 {
		t.Errorf("page length = %d, want 1", len(page))
	}
}

func TestUpdateProjectContent_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, alice, "original", model.StatusApproved)

	// Bob attempts to edit Alice's project: the WHERE clause matches zero
	// rows, the call reports NotFound, and the row is untouched.
	hijack := *project
	hijack.Title = "hijacked"
	hijack.UserID = bob.ID
	err := db.UpdateProjectContent(context.Background(), &hijack)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("cross-owner update error = %v, want ErrNotFound", err)
	}

	got, err := db.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Title != "original" {
		t.Errorf("title = %q after cross-owner update, want original", got.Title)
	}

	// The owner's edit goes through.
	project.Title = "renamed"
	if err := db.UpdateProjectContent(context.Background(), project); err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	got, _ = db.GetProject(context.Background(), project.ID)
	if got.Title != "renamed" {
		t.Errorf("title = %q, want renamed", got.Title)
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, user, "p", model.StatusPending)

	if err := db.UpdateProjectStatus(context.Background(), project.ID, model.StatusApproved, time.Now()); err != nil {
		t.Fatalf("UpdateProjectStatus() error = %v", err)
	}

	got, _ := db.GetProject(context.Background(), project.ID)
	if got.Status != model.StatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}

	err := db.UpdateProjectStatus(context.Background(), "missing", model.StatusApproved, time.Now())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing project error = %v, want ErrNotFound", err)
	}
}

func TestDeleteProject_OwnerAndAdminPaths(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	p1 := createTestProject(t, db, alice, "p1", model.StatusApproved)
	p2 := createTestProject(t, db, alice, "p2", model.StatusApproved)

	// Owner-scoped delete with the wrong owner: NotFound, row survives.
	err := db.DeleteProject(context.Background(), p1.ID, bob.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("cross-owner delete error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetProject(context.Background(), p1.ID); err != nil {
		t.Errorf("project deleted by non-owner: %v", err)
	}

	// Owner-scoped delete with the right owner.
	if err := db.DeleteProject(context.Background(), p1.ID, alice.ID); err != nil {
		t.Fatalf("owner delete error = %v", err)
	}

	// Admin path: unconditional by id.
	if err := db.DeleteProject(context.Background(), p2.ID, ""); err != nil {
		t.Fatalf("admin delete error = %v", err)
	}
}

func TestDeleteProject_CascadesHeartsAndComments(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, user, "p", model.StatusApproved)

	if err := db.CreateHeart(context.Background(), &model.Heart{ProjectID: project.ID, GuestID: "g1"}); err != nil {
		t.Fatalf("CreateHeart() error = %v", err)
	}
	if err := db.CreateComment(context.Background(), &model.Comment{
		ProjectID: project.ID, UserID: user.ID, Content: "hi",
	}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if err := db.DeleteProject(context.Background(), project.ID, ""); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	count, err := db.CountHearts(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("CountHearts() error = %v", err)
	}
	if count != 0 {
		t.Errorf("hearts survived project delete: count = %d", count)
	}
}
