package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/models"
)

// CommunityService is the post/comment board. Owner-gated mutations use a
// merged (id, author) lookup, so a non-owner's attempt reads the same as
// a missing post.
type CommunityService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	// GetPost increments the view counter on every successful fetch.
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, id, callerID string, req *models.UpdatePostRequest) (*models.Post, error)
	// DeletePost cascades to every comment on the post.
	DeletePost(ctx context.Context, id, callerID string) error

	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, authorID, postID, content string) (*models.Comment, error)
	UpdateComment(ctx context.Context, id, callerID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id, callerID string) error

	ToggleLike(ctx context.Context, postID, userID string) (*models.ToggleLikeResult, error)
}

// InMemoryCommunityService is the map-backed implementation used by tests.
type InMemoryCommunityService struct {
	mu       sync.Mutex
	posts    map[string]*models.Post
	comments map[string]*models.Comment
	Users    *InMemoryUserService
}

func NewInMemoryCommunityService() *InMemoryCommunityService {
	return &InMemoryCommunityService{
		posts:    make(map[string]*models.Post),
		comments: make(map[string]*models.Comment),
	}
}

func (s *InMemoryCommunityService) author(ctx context.Context, userID string) *models.PublicAuthor {
	if s.Users == nil {
		return nil
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	author := u.Author()
	return &author
}

func (s *InMemoryCommunityService) ListPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		c := *p
		c.Likes = append([]string{}, p.Likes...)
		c.Author = s.author(ctx, p.AuthorID)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryCommunityService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	post.Views++
	c := *post
	c.Likes = append([]string{}, post.Likes...)
	c.Author = s.author(ctx, post.AuthorID)
	return &c, nil
}

func (s *InMemoryCommunityService) CreatePost(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	post := &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[post.ID] = post

	c := *post
	c.Author = s.author(ctx, authorID)
	return &c, nil
}

func (s *InMemoryCommunityService) UpdatePost(ctx context.Context, id, callerID string, req *models.UpdatePostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists || post.AuthorID != callerID {
		return nil, ErrPostNotFound
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = time.Now()

	c := *post
	c.Likes = append([]string{}, post.Likes...)
	c.Author = s.author(ctx, post.AuthorID)
	return &c, nil
}

func (s *InMemoryCommunityService) DeletePost(_ context.Context, id, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists || post.AuthorID != callerID {
		return ErrPostNotFound
	}

	delete(s.posts, id)
	for cid, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *InMemoryCommunityService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID != postID {
			continue
		}
		c := *comment
		c.Author = s.author(ctx, comment.AuthorID)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryCommunityService) CreateComment(ctx context.Context, authorID, postID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[comment.ID] = comment

	c := *comment
	c.Author = s.author(ctx, authorID)
	return &c, nil
}

func (s *InMemoryCommunityService) UpdateComment(ctx context.Context, id, callerID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists || comment.AuthorID != callerID {
		return nil, ErrCommentNotFound
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()

	c := *comment
	c.Author = s.author(ctx, comment.AuthorID)
	return &c, nil
}

func (s *InMemoryCommunityService) DeleteComment(_ context.Context, id, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists || comment.AuthorID != callerID {
		return ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *InMemoryCommunityService) ToggleLike(_ context.Context, postID, userID string) (*models.ToggleLikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return &models.ToggleLikeResult{LikesCount: int64(len(post.Likes)), IsLiked: false}, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	return &models.ToggleLikeResult{LikesCount: int64(len(post.Likes)), IsLiked: true}, nil
}
