package services

import (
	"context"
	"testing"

	"github.com/careerforge/backend/internal/models"
)

func registerTestUser(t *testing.T, svc *InMemoryUserService, email string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:            "Tester",
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return user
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewInMemoryUserService()
	registerTestUser(t, svc, "dup@example.com")

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:            "Other",
		Email:           "dup@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != ErrEmailExists {
		t.Errorf("duplicate register error = %v, want ErrEmailExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewInMemoryUserService()
	created := registerTestUser(t, svc, "login@example.com")

	user, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "login@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("logged-in id = %q, want %q", user.ID, created.ID)
	}

	if _, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong",
	}); err != ErrInvalidPassword {
		t.Errorf("wrong password error = %v, want ErrInvalidPassword", err)
	}
	if _, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	}); err != ErrUserNotFound {
		t.Errorf("unknown email error = %v, want ErrUserNotFound", err)
	}
}

func TestResumeRefsDeduplicate(t *testing.T) {
	svc := NewInMemoryUserService()
	user := registerTestUser(t, svc, "refs@example.com")
	ctx := context.Background()

	svc.AddResumeRef(ctx, user.ID, "r-1")
	svc.AddResumeRef(ctx, user.ID, "r-1")
	svc.AddResumeRef(ctx, user.ID, "r-2")

	got, _ := svc.GetByID(ctx, user.ID)
	if len(got.ResumeIDs) != 2 {
		t.Errorf("ResumeIDs = %v", got.ResumeIDs)
	}

	svc.RemoveResumeRef(ctx, user.ID, "r-1")
	svc.RemoveResumeRef(ctx, user.ID, "missing")
	got, _ = svc.GetByID(ctx, user.ID)
	if len(got.ResumeIDs) != 1 || got.ResumeIDs[0] != "r-2" {
		t.Errorf("ResumeIDs after remove = %v", got.ResumeIDs)
	}

	if err := svc.AddResumeRef(ctx, "no-user", "r-1"); err != ErrUserNotFound {
		t.Errorf("ref on missing user error = %v", err)
	}
}

func TestToggleBookmarkFlips(t *testing.T) {
	svc := NewInMemoryUserService()
	user := registerTestUser(t, svc, "bookmark@example.com")
	ctx := context.Background()

	res, err := svc.ToggleBookmark(ctx, user.ID, "post-1")
	if err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if !res.IsBookmarked {
		t.Error("first toggle should bookmark")
	}

	res, _ = svc.ToggleBookmark(ctx, user.ID, "post-1")
	if res.IsBookmarked {
		t.Error("second toggle should unbookmark")
	}

	got, _ := svc.GetByID(ctx, user.ID)
	if len(got.BookmarkedPostIDs) != 0 {
		t.Errorf("BookmarkedPostIDs = %v", got.BookmarkedPostIDs)
	}

	if _, err := svc.ToggleBookmark(ctx, "no-user", "post-1"); err != ErrUserNotFound {
		t.Errorf("toggle on missing user error = %v", err)
	}
}
