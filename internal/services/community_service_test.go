package services

import (
	"context"
	"testing"

	"github.com/careerforge/backend/internal/models"
)

func newTestPost(t *testing.T, svc *InMemoryCommunityService, authorID, title string) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), authorID, &models.CreatePostRequest{
		Title:   title,
		Content: "content of " + title,
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return post
}

func TestGetPostIncrementsViews(t *testing.T) {
	svc := NewInMemoryCommunityService()
	post := newTestPost(t, svc, "user-1", "first")

	for i := 1; i <= 3; i++ {
		got, err := svc.GetPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
		if got.Views != int64(i) {
			t.Errorf("after %d reads, views = %d", i, got.Views)
		}
	}

	// Listing must not count as a view.
	if _, err := svc.ListPosts(context.Background()); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	got, _ := svc.GetPost(context.Background(), post.ID)
	if got.Views != 4 {
		t.Errorf("views after list + read = %d, want 4", got.Views)
	}
}

func TestGetPostNotFound(t *testing.T) {
	svc := NewInMemoryCommunityService()
	if _, err := svc.GetPost(context.Background(), "missing"); err != ErrPostNotFound {
		t.Errorf("GetPost(missing) error = %v, want ErrPostNotFound", err)
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	svc := NewInMemoryCommunityService()
	post := newTestPost(t, svc, "owner", "mine")

	title := "hijacked"
	_, err := svc.UpdatePost(context.Background(), post.ID, "intruder", &models.UpdatePostRequest{Title: &title})
	if err != ErrPostNotFound {
		t.Fatalf("non-owner update error = %v, want ErrPostNotFound", err)
	}

	updated, err := svc.UpdatePost(context.Background(), post.ID, "owner", &models.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "hijacked" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Content != post.Content {
		t.Errorf("content changed on title-only update: %q", updated.Content)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	svc := NewInMemoryCommunityService()
	post := newTestPost(t, svc, "owner", "doomed")
	other := newTestPost(t, svc, "owner", "survivor")

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateComment(context.Background(), "commenter", post.ID, "hello"); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}
	keep, err := svc.CreateComment(context.Background(), "commenter", other.ID, "keep me")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := svc.DeletePost(context.Background(), post.ID, "intruder"); err != ErrPostNotFound {
		t.Fatalf("non-owner delete error = %v, want ErrPostNotFound", err)
	}
	if err := svc.DeletePost(context.Background(), post.ID, "owner"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := svc.GetPost(context.Background(), post.ID); err != ErrPostNotFound {
		t.Errorf("deleted post still readable, error = %v", err)
	}
	orphans, _ := svc.ListComments(context.Background(), post.ID)
	if len(orphans) != 0 {
		t.Errorf("cascade left %d comments behind", len(orphans))
	}
	kept, _ := svc.ListComments(context.Background(), other.ID)
	if len(kept) != 1 || kept[0].ID != keep.ID {
		t.Errorf("comment on unrelated post was removed")
	}
}

func TestToggleLikeFlips(t *testing.T) {
	svc := NewInMemoryCommunityService()
	post := newTestPost(t, svc, "owner", "likeable")

	res, err := svc.ToggleLike(context.Background(), post.ID, "fan")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !res.IsLiked || res.LikesCount != 1 {
		t.Errorf("first toggle = %+v", res)
	}

	res, _ = svc.ToggleLike(context.Background(), post.ID, "fan")
	if res.IsLiked || res.LikesCount != 0 {
		t.Errorf("second toggle = %+v", res)
	}

	// Two distinct users like independently.
	svc.ToggleLike(context.Background(), post.ID, "fan")
	res, _ = svc.ToggleLike(context.Background(), post.ID, "other-fan")
	if !res.IsLiked || res.LikesCount != 2 {
		t.Errorf("two likers = %+v", res)
	}

	if _, err := svc.ToggleLike(context.Background(), "missing", "fan"); err != ErrPostNotFound {
		t.Errorf("like on missing post error = %v", err)
	}
}

func TestCommentOwnerGating(t *testing.T) {
	svc := NewInMemoryCommunityService()
	post := newTestPost(t, svc, "owner", "thread")

	comment, err := svc.CreateComment(context.Background(), "alice", post.ID, "original")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if _, err := svc.UpdateComment(context.Background(), comment.ID, "bob", "edited"); err != ErrCommentNotFound {
		t.Errorf("non-owner comment update error = %v, want ErrCommentNotFound", err)
	}
	updated, err := svc.UpdateComment(context.Background(), comment.ID, "alice", "edited")
	if err != nil {
		t.Fatalf("owner comment update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q", updated.Content)
	}

	if err := svc.DeleteComment(context.Background(), comment.ID, "bob"); err != ErrCommentNotFound {
		t.Errorf("non-owner comment delete error = %v", err)
	}
	if err := svc.DeleteComment(context.Background(), comment.ID, "alice"); err != nil {
		t.Errorf("owner comment delete failed: %v", err)
	}
}

func TestListPostsJoinsAuthor(t *testing.T) {
	users := NewInMemoryUserService()
	user, err := users.Register(context.Background(), &models.RegisterRequest{
		Email:           "author@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Name:            "Author",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	svc := NewInMemoryCommunityService()
	svc.Users = users
	newTestPost(t, svc, user.ID, "joined")

	posts, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d", len(posts))
	}
	if posts[0].Author == nil || posts[0].Author.Name != "Author" {
		t.Errorf("author join missing: %+v", posts[0].Author)
	}
}
