package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerforge/backend/internal/models"
)

// UserService owns credentials, generated-document back-references and
// the bookmark toggle set.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	AddResumeRef(ctx context.Context, userID, resumeID string) error
	RemoveResumeRef(ctx context.Context, userID, resumeID string) error
	AddPortfolioRef(ctx context.Context, userID, portfolioID string) error
	RemovePortfolioRef(ctx context.Context, userID, portfolioID string) error

	ToggleBookmark(ctx context.Context, userID, postID string) (*models.ToggleBookmarkResult, error)
}

// InMemoryUserService is the map-backed implementation used by tests.
type InMemoryUserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // email -> userID
}

func NewInMemoryUserService() *InMemoryUserService {
	return &InMemoryUserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryUserService) Register(_ context.Context, req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Email:             req.Email,
		PasswordHash:      string(hashed),
		Name:              req.Name,
		ResumeIDs:         []string{},
		PortfolioIDs:      []string{},
		BookmarkedPostIDs: []string{},
		CreatedAt:         time.Now(),
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	return copyUser(user), nil
}

func (s *InMemoryUserService) Login(_ context.Context, req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[req.Email]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return copyUser(user), nil
}

func (s *InMemoryUserService) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	return copyUser(user), nil
}

func (s *InMemoryUserService) AddResumeRef(_ context.Context, userID, resumeID string) error {
	return s.addRef(userID, resumeID, func(u *models.User) *[]string { return &u.ResumeIDs })
}

func (s *InMemoryUserService) RemoveResumeRef(_ context.Context, userID, resumeID string) error {
	return s.removeRef(userID, resumeID, func(u *models.User) *[]string { return &u.ResumeIDs })
}

func (s *InMemoryUserService) AddPortfolioRef(_ context.Context, userID, portfolioID string) error {
	return s.addRef(userID, portfolioID, func(u *models.User) *[]string { return &u.PortfolioIDs })
}

func (s *InMemoryUserService) RemovePortfolioRef(_ context.Context, userID, portfolioID string) error {
	return s.removeRef(userID, portfolioID, func(u *models.User) *[]string { return &u.PortfolioIDs })
}

func (s *InMemoryUserService) ToggleBookmark(_ context.Context, userID, postID string) (*models.ToggleBookmarkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}

	for i, id := range user.BookmarkedPostIDs {
		if id == postID {
			user.BookmarkedPostIDs = append(user.BookmarkedPostIDs[:i], user.BookmarkedPostIDs[i+1:]...)
			return &models.ToggleBookmarkResult{IsBookmarked: false}, nil
		}
	}
	user.BookmarkedPostIDs = append(user.BookmarkedPostIDs, postID)
	return &models.ToggleBookmarkResult{IsBookmarked: true}, nil
}

func (s *InMemoryUserService) addRef(userID, refID string, field func(*models.User) *[]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return ErrUserNotFound
	}
	refs := field(user)
	for _, id := range *refs {
		if id == refID {
			return nil
		}
	}
	*refs = append(*refs, refID)
	return nil
}

func (s *InMemoryUserService) removeRef(userID, refID string, field func(*models.User) *[]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return ErrUserNotFound
	}
	refs := field(user)
	for i, id := range *refs {
		if id == refID {
			*refs = append((*refs)[:i], (*refs)[i+1:]...)
			return nil
		}
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.ResumeIDs = append([]string{}, u.ResumeIDs...)
	c.PortfolioIDs = append([]string{}, u.PortfolioIDs...)
	c.BookmarkedPostIDs = append([]string{}, u.BookmarkedPostIDs...)
	return &c
}
