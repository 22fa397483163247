package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
)

func TestCommentCreate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "alice")
	commenter := env.user(t, "bob")
	project := env.project(t, owner, model.StatusApproved)

	comment, err := env.comments.Create(context.Background(), project.ID, commenter, "  nice work  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.Content != "nice work" {
		t.Errorf("content not trimmed: %q", comment.Content)
	}
	if comment.Author == nil || comment.Author.Name != "bob" {
		t.Errorf("author projection = %+v, want bob", comment.Author)
	}
}

func TestCommentCreate_RequiresAuthor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "alice")
	project := env.project(t, owner, model.StatusApproved)

	_, err := env.comments.Create(context.Background(), project.ID, nil, "hello")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Create(nil author) error = %v, want ErrUnauthorized", err)
	}
}

func TestCommentCreate_RequiresContent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "alice")
	project := env.project(t, owner, model.StatusApproved)

	for _, content := range []string{"", "   "} {
		_, err := env.comments.Create(context.Background(), project.ID, owner, content)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Create(%q) error = %v, want ErrValidation", content, err)
		}
	}
}

func TestCommentCreate_NonApprovedTarget(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "alice")
	admin := env.admin(t)
	pending := env.project(t, owner, model.StatusPending)

	_, err := env.comments.Create(context.Background(), pending.ID, owner, "too early")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Create(pending) error = %v, want ErrNotFound", err)
	}

	// No row was written: approve the project and check the thread is empty.
	if _, err := env.projects.SetStatus(context.Background(), pending.ID, model.StatusApproved, admin); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	got, err := env.comments.List(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("rejected comment left a row: %v", got)
	}
}

func TestCommentList_NonApprovedTarget(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "alice")
	pending := env.project(t, owner, model.StatusPending)

	_, err := env.comments.List(context.Background(), pending.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("List(pending) error = %v, want ErrNotFound", err)
	}
	if _, err := env.comments.List(context.Background(), "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("List(missing) error = %v, want ErrNotFound", err)
	}
}

// TestSubmissionLifecycle walks the whole flow: submit, moderate, heart,
// comment — the way a project actually moves through the platform.
func TestSubmissionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	maker, _, err := env.auth.Login(context.Background(), "maker", "@maker", "maker@example.com")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	project, err := env.projects.Create(context.Background(), maker.ID, ProjectInput{
		Title:       "Tiny Synth",
		Description: "a synthesizer in the browser",
		GitHubURL:   "https://github.com/maker/tiny-synth",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Invisible to the public, hearts bounce off.
	if _, err := env.projects.Get(context.Background(), project.ID, nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("pending project visible to public: %v", err)
	}
	if _, err := env.hearts.AddGuestHeart(context.Background(), project.ID, "fp-1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("heart landed on a pending project: %v", err)
	}

	// Moderation approves it.
	if _, err := env.projects.SetStatus(context.Background(), project.ID, model.StatusApproved, admin); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	// Now the public can see, heart, and comment.
	if _, err := env.projects.Get(context.Background(), project.ID, nil); err != nil {
		t.Fatalf("approved project not public: %v", err)
	}
	count, err := env.hearts.AddGuestHeart(context.Background(), project.ID, "fp-1")
	if err != nil {
		t.Fatalf("AddGuestHeart() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	fan, _, err := env.auth.Login(context.Background(), "fan", "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := env.comments.Create(context.Background(), project.ID, fan, "love it"); err != nil {
		t.Fatalf("comment Create() error = %v", err)
	}

	// Suspension pulls it back off the public surface but keeps the ledger.
	if _, err := env.projects.SetStatus(context.Background(), project.ID, model.StatusSuspended, admin); err != nil {
		t.Fatalf("SetStatus(suspended) error = %v", err)
	}
	if _, err := env.projects.Get(context.Background(), project.ID, nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("suspended project still public")
	}
	heartsLeft, err := env.db.CountHearts(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("CountHearts() error = %v", err)
	}
	if heartsLeft != 1 {
		t.Errorf("suspension dropped hearts: count = %d, want 1", heartsLeft)
	}
}
