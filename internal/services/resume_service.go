package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/models"
)

// ResumeService persists generated resumes and keeps the owner's
// back-reference list in step with create/delete.
type ResumeService interface {
	Create(ctx context.Context, userID string, req *models.GenerateResumeRequest, letter models.CoverLetter) (*models.Resume, error)
	// GetByID checks existence before ownership, so a non-owner gets a
	// distinguishable Forbidden rather than NotFound.
	GetByID(ctx context.Context, id, callerID string) (*models.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]models.ResumeSummary, error)
	Update(ctx context.Context, id, callerID string, req *models.UpdateResumeRequest) (*models.Resume, error)
	Delete(ctx context.Context, id, callerID string) error
}

// InMemoryResumeService is the map-backed implementation used by tests.
type InMemoryResumeService struct {
	mu      sync.RWMutex
	resumes map[string]*models.Resume
	Users   *InMemoryUserService
}

func NewInMemoryResumeService() *InMemoryResumeService {
	return &InMemoryResumeService{resumes: make(map[string]*models.Resume)}
}

func (s *InMemoryResumeService) Create(ctx context.Context, userID string, req *models.GenerateResumeRequest, letter models.CoverLetter) (*models.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := req.Title
	if title == "" {
		title = models.DefaultResumeTitle
	}
	now := time.Now()
	resume := &models.Resume{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Payload:     normalizePayload(req.GenerationPayload),
		CoverLetter: letter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.resumes[resume.ID] = resume

	if s.Users != nil {
		_ = s.Users.AddResumeRef(ctx, userID, resume.ID)
	}

	c := *resume
	return &c, nil
}

func (s *InMemoryResumeService) GetByID(_ context.Context, id, callerID string) (*models.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, exists := s.resumes[id]
	if !exists {
		return nil, ErrResumeNotFound
	}
	if resume.UserID != callerID {
		return nil, ErrUnauthorized
	}
	c := *resume
	return &c, nil
}

func (s *InMemoryResumeService) ListByUser(_ context.Context, userID string) ([]models.ResumeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ResumeSummary, 0)
	for _, r := range s.resumes {
		if r.UserID != userID {
			continue
		}
		out = append(out, models.ResumeSummary{
			ID:        r.ID,
			Title:     r.Title,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryResumeService) Update(_ context.Context, id, callerID string, req *models.UpdateResumeRequest) (*models.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume, exists := s.resumes[id]
	if !exists {
		return nil, ErrResumeNotFound
	}
	if resume.UserID != callerID {
		return nil, ErrUnauthorized
	}

	if req.Title != nil {
		resume.Title = *req.Title
	}
	if req.Strengths != nil {
		resume.CoverLetter.Strengths = *req.Strengths
	}
	if req.Growth != nil {
		resume.CoverLetter.Growth = *req.Growth
	}
	if req.Personality != nil {
		resume.CoverLetter.Personality = *req.Personality
	}
	if req.Motivation != nil {
		resume.CoverLetter.Motivation = *req.Motivation
	}
	resume.UpdatedAt = time.Now()

	c := *resume
	return &c, nil
}

func (s *InMemoryResumeService) Delete(ctx context.Context, id, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume, exists := s.resumes[id]
	if !exists {
		return ErrResumeNotFound
	}
	if resume.UserID != callerID {
		return ErrUnauthorized
	}

	delete(s.resumes, id)
	if s.Users != nil {
		_ = s.Users.RemoveResumeRef(ctx, callerID, id)
	}
	return nil
}

// normalizePayload replaces nil slices so stored snapshots round-trip as
// empty arrays, never null.
func normalizePayload(p models.GenerationPayload) models.GenerationPayload {
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Education == nil {
		p.Education = []models.EducationEntry{}
	}
	if p.Experiences == nil {
		p.Experiences = []models.ExperienceEntry{}
	}
	if p.Projects == nil {
		p.Projects = []models.ProjectEntry{}
	}
	for i := range p.Projects {
		if p.Projects[i].TechStack == nil {
			p.Projects[i].TechStack = []string{}
		}
	}
	return p
}
