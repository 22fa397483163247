package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/showcase/internal/model"
)

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, user, "p", model.StatusApproved)

	comment := &model.Comment{
		ProjectID: project.ID,
		UserID:    user.ID,
		Content:   "great work",
	}
	if err := db.CreateComment(context.Background(), comment); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if comment.ID == "" {
		t.Error("CreateComment() did not set ID")
	}
	if comment.CreatedAt.IsZero() {
		t.Error("CreateComment() did not set CreatedAt")
	}
}

func TestListComments_ChronologicalWithAuthor(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, alice, "p", model.StatusApproved)

	first := &model.Comment{ProjectID: project.ID, UserID: alice.ID, Content: "first"}
	if err := db.CreateComment(context.Background(), first); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	// xid timestamps have second resolution in the sort prefix but the
	// created_at column is what we order on, so nudge the clock apart.
	time.Sleep(5 * time.Millisecond)
	second := &model.Comment{ProjectID: project.ID, UserID: bob.ID, Content: "second"}
	if err := db.CreateComment(context.Background(), second); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	got, err := db.ListComments(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListComments() returned %d comments, want 2", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("comments out of order: %q, %q", got[0].Content, got[1].Content)
	}
	if got[1].Author == nil || got[1].Author.Name != "bob" {
		t.Errorf("second comment author = %+v, want bob", got[1].Author)
	}
}

func TestListComments_EmptyProject(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, user, "p", model.StatusApproved)

	got, err := db.ListComments(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListComments() = %v, want empty", got)
	}
}
