package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/models"
)

// PortfolioService persists generated portfolio pages. GetByID counts a
// view on every successful owner fetch.
type PortfolioService interface {
	Create(ctx context.Context, userID string, req *models.GeneratePortfolioRequest, content string) (*models.Portfolio, error)
	GetByID(ctx context.Context, id, callerID string) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]models.PortfolioSummary, error)
	Update(ctx context.Context, id, callerID string, req *models.UpdatePortfolioRequest) (*models.Portfolio, error)
	Delete(ctx context.Context, id, callerID string) error
}

// InMemoryPortfolioService is the map-backed implementation used by tests.
type InMemoryPortfolioService struct {
	mu         sync.RWMutex
	portfolios map[string]*models.Portfolio
	Users      *InMemoryUserService
}

func NewInMemoryPortfolioService() *InMemoryPortfolioService {
	return &InMemoryPortfolioService{portfolios: make(map[string]*models.Portfolio)}
}

func (s *InMemoryPortfolioService) Create(ctx context.Context, userID string, req *models.GeneratePortfolioRequest, content string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := req.Title
	if title == "" {
		title = models.DefaultPortfolioTitle
	}
	now := time.Now()
	portfolio := &models.Portfolio{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Payload:     normalizePayload(req.GenerationPayload),
		StylePrompt: req.StylePrompt,
		Content:     content,
		Status:      models.PortfolioStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.portfolios[portfolio.ID] = portfolio

	if s.Users != nil {
		_ = s.Users.AddPortfolioRef(ctx, userID, portfolio.ID)
	}

	c := *portfolio
	return &c, nil
}

func (s *InMemoryPortfolioService) GetByID(_ context.Context, id, callerID string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, exists := s.portfolios[id]
	if !exists {
		return nil, ErrPortfolioNotFound
	}
	if portfolio.UserID != callerID {
		return nil, ErrUnauthorized
	}
	portfolio.Views++
	c := *portfolio
	return &c, nil
}

func (s *InMemoryPortfolioService) ListByUser(_ context.Context, userID string) ([]models.PortfolioSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PortfolioSummary, 0)
	for _, p := range s.portfolios {
		if p.UserID != userID {
			continue
		}
		out = append(out, models.PortfolioSummary{
			ID:        p.ID,
			Title:     p.Title,
			Status:    p.Status,
			Views:     p.Views,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryPortfolioService) Update(_ context.Context, id, callerID string, req *models.UpdatePortfolioRequest) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, exists := s.portfolios[id]
	if !exists {
		return nil, ErrPortfolioNotFound
	}
	if portfolio.UserID != callerID {
		return nil, ErrUnauthorized
	}

	if req.Title != nil {
		portfolio.Title = *req.Title
	}
	if req.Content != nil {
		portfolio.Content = *req.Content
	}
	if req.StylePrompt != nil {
		portfolio.StylePrompt = *req.StylePrompt
	}
	if req.Status != nil {
		portfolio.Status = *req.Status
	}
	portfolio.UpdatedAt = time.Now()

	c := *portfolio
	return &c, nil
}

func (s *InMemoryPortfolioService) Delete(ctx context.Context, id, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, exists := s.portfolios[id]
	if !exists {
		return ErrPortfolioNotFound
	}
	if portfolio.UserID != callerID {
		return ErrUnauthorized
	}

	delete(s.portfolios, id)
	if s.Users != nil {
		_ = s.Users.RemovePortfolioRef(ctx, callerID, id)
	}
	return nil
}
