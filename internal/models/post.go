package models

import (
	"strings"
	"time"
)

type Post struct {
	ID       string `json:"id" bson:"_id"`
	AuthorID string `json:"author_id" bson:"author_id"`
	Title    string `json:"title" bson:"title"`
	Content  string `json:"content" bson:"content"`
	Views    int64  `json:"views" bson:"views"`
	// Likes holds the ids of users who currently like the post.
	Likes     []string  `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	Author *PublicAuthor `json:"author,omitempty" bson:"-"`
}

type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	Author *PublicAuthor `json:"author,omitempty" bson:"-"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	if strings.TrimSpace(r.Content) == "" {
		errors["content"] = "Content is required"
	}

	return errors
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (r *CreateCommentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Content) == "" {
		errors["content"] = "Content is required"
	}

	return errors
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// ToggleLikeResult reports the state produced by the write itself, so it
// is always consistent with the mutation that just happened.
type ToggleLikeResult struct {
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

type ToggleBookmarkResult struct {
	IsBookmarked bool `json:"isBookmarked"`
}
