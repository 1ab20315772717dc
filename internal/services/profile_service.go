package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/models"
)

// ProfileService owns the one-per-user profile document: top-level patch,
// per-entry sub-collection mutation and the skills/tools string sets.
// Every mutation returns the full profile joined with the owner's public
// fields.
type ProfileService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Profile, error)
	PatchBasic(ctx context.Context, userID string, req *models.PatchProfileRequest) (*models.Profile, error)

	AddEducation(ctx context.Context, userID string, entry models.EducationEntry) (*models.Profile, error)
	UpdateEducation(ctx context.Context, userID, entryID string, req *models.UpdateEducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error)

	AddExperience(ctx context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error)
	UpdateExperience(ctx context.Context, userID, entryID string, req *models.UpdateExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error)

	AddCertificate(ctx context.Context, userID string, entry models.CertificateEntry) (*models.Profile, error)
	UpdateCertificate(ctx context.Context, userID, entryID string, req *models.UpdateCertificateRequest) (*models.Profile, error)
	RemoveCertificate(ctx context.Context, userID, entryID string) (*models.Profile, error)

	AddProject(ctx context.Context, userID string, entry models.ProjectEntry) (*models.Profile, error)
	UpdateProject(ctx context.Context, userID, entryID string, req *models.UpdateProjectRequest) (*models.Profile, error)
	RemoveProject(ctx context.Context, userID, entryID string) (*models.Profile, error)

	AddSkills(ctx context.Context, userID string, values []string) (*models.Profile, error)
	RemoveSkills(ctx context.Context, userID string, values []string) (*models.Profile, error)
	ReplaceSkills(ctx context.Context, userID string, values []string) (*models.Profile, error)

	AddTools(ctx context.Context, userID string, values []string) (*models.Profile, error)
	RemoveTools(ctx context.Context, userID string, values []string) (*models.Profile, error)
	ReplaceTools(ctx context.Context, userID string, values []string) (*models.Profile, error)
}

// InMemoryProfileService is the map-backed implementation used by tests.
// Users is optional; when set, reads join the owner's public fields.
type InMemoryProfileService struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile // userID -> profile
	Users    *InMemoryUserService
}

func NewInMemoryProfileService() *InMemoryProfileService {
	return &InMemoryProfileService{profiles: make(map[string]*models.Profile)}
}

func (s *InMemoryProfileService) GetOrCreate(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined(ctx, s.getOrCreateLocked(userID)), nil
}

func (s *InMemoryProfileService) getOrCreateLocked(userID string) *models.Profile {
	if prof, ok := s.profiles[userID]; ok {
		return prof
	}
	now := time.Now()
	prof := &models.Profile{
		ID:           uuid.New().String(),
		UserID:       userID,
		Education:    []models.EducationEntry{},
		Experiences:  []models.ExperienceEntry{},
		Certificates: []models.CertificateEntry{},
		Projects:     []models.ProjectEntry{},
		Skills:       []string{},
		Tools:        []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.profiles[userID] = prof
	return prof
}

func (s *InMemoryProfileService) joined(ctx context.Context, prof *models.Profile) *models.Profile {
	c := *prof
	if s.Users != nil {
		if u, err := s.Users.GetByID(ctx, prof.UserID); err == nil {
			author := u.Author()
			c.User = &author
		}
	}
	return &c
}

func (s *InMemoryProfileService) PatchBasic(ctx context.Context, userID string, req *models.PatchProfileRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.BirthDate != nil {
		prof.BirthDate = *req.BirthDate
	}
	if req.Phone != nil {
		prof.Phone = *req.Phone
	}
	if req.Address != nil {
		prof.Address = *req.Address
	}
	if req.AvatarURL != nil {
		prof.AvatarURL = *req.AvatarURL
	}
	if req.Introduction != nil {
		prof.Introduction = *req.Introduction
	}
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}

func (s *InMemoryProfileService) AddEducation(ctx context.Context, userID string, entry models.EducationEntry) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	entry.ID = uuid.New().String()
	prof.Education = append(prof.Education, entry)
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}

func (s *InMemoryProfileService) UpdateEducation(ctx context.Context, userID, entryID string, req *models.UpdateEducationRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Education {
		if prof.Education[i].ID != entryID {
			continue
		}
		e := &prof.Education[i]
		if req.School != nil {
			e.School = *req.School
		}
		if req.Major != nil {
			e.Major = *req.Major
		}
		if req.Degree != nil {
			e.Degree = *req.Degree
		}
		if req.StartDate != nil {
			e.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			e.EndDate = *req.EndDate
		}
		prof.UpdatedAt = time.Now()
		return s.joined(ctx, prof), nil
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Education {
		if prof.Education[i].ID == entryID {
			prof.Education = append(prof.Education[:i], prof.Education[i+1:]...)
			prof.UpdatedAt = time.Now()
			return s.joined(ctx, prof), nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) AddExperience(ctx context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	entry.ID = uuid.New().String()
	prof.Experiences = append(prof.Experiences, entry)
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}

func (s *InMemoryProfileService) UpdateExperience(ctx context.Context, userID, entryID string, req *models.UpdateExperienceRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Experiences {
		if prof.Experiences[i].ID != entryID {
			continue
		}
		e := &prof.Experiences[i]
		if req.Company != nil {
			e.Company = *req.Company
		}
		if req.Position != nil {
			e.Position = *req.Position
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		if req.StartDate != nil {
			e.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			e.EndDate = *req.EndDate
		}
		prof.UpdatedAt = time.Now()
		return s.joined(ctx, prof), nil
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Experiences {
		if prof.Experiences[i].ID == entryID {
			prof.Experiences = append(prof.Experiences[:i], prof.Experiences[i+1:]...)
			prof.UpdatedAt = time.Now()
			return s.joined(ctx, prof), nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) AddCertificate(ctx context.Context, userID string, entry models.CertificateEntry) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	entry.ID = uuid.New().String()
	prof.Certificates = append(prof.Certificates, entry)
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}

func (s *InMemoryProfileService) UpdateCertificate(ctx context.Context, userID, entryID string, req *models.UpdateCertificateRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Certificates {
		if prof.Certificates[i].ID != entryID {
			continue
		}
		e := &prof.Certificates[i]
		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Issuer != nil {
			e.Issuer = *req.Issuer
		}
		if req.IssuedAt != nil {
			e.IssuedAt = *req.IssuedAt
		}
		prof.UpdatedAt = time.Now()
		return s.joined(ctx, prof), nil
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) RemoveCertificate(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Certificates {
		if prof.Certificates[i].ID == entryID {
			prof.Certificates = append(prof.Certificates[:i], prof.Certificates[i+1:]...)
			prof.UpdatedAt = time.Now()
			return s.joined(ctx, prof), nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) AddProject(ctx context.Context, userID string, entry models.ProjectEntry) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	entry.ID = uuid.New().String()
	if entry.TechStack == nil {
		entry.TechStack = []string{}
	}
	prof.Projects = append(prof.Projects, entry)
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}

func (s *InMemoryProfileService) UpdateProject(ctx context.Context, userID, entryID string, req *models.UpdateProjectRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Projects {
		if prof.Projects[i].ID != entryID {
			continue
		}
		e := &prof.Projects[i]
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		if req.TechStack != nil {
			e.TechStack = *req.TechStack
		}
		if req.URL != nil {
			e.URL = *req.URL
		}
		if req.StartDate != nil {
			e.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			e.EndDate = *req.EndDate
		}
		prof.UpdatedAt = time.Now()
		return s.joined(ctx, prof), nil
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) RemoveProject(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	for i := range prof.Projects {
		if prof.Projects[i].ID == entryID {
			prof.Projects = append(prof.Projects[:i], prof.Projects[i+1:]...)
			prof.UpdatedAt = time.Now()
			return s.joined(ctx, prof), nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *InMemoryProfileService) AddSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setAdd, func(p *models.Profile) *[]string { return &p.Skills })
}

func (s *InMemoryProfileService) RemoveSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setRemove, func(p *models.Profile) *[]string { return &p.Skills })
}

func (s *InMemoryProfileService) ReplaceSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setReplace, func(p *models.Profile) *[]string { return &p.Skills })
}

func (s *InMemoryProfileService) AddTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setAdd, func(p *models.Profile) *[]string { return &p.Tools })
}

func (s *InMemoryProfileService) RemoveTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setRemove, func(p *models.Profile) *[]string { return &p.Tools })
}

func (s *InMemoryProfileService) ReplaceTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateSet(ctx, userID, values, setReplace, func(p *models.Profile) *[]string { return &p.Tools })
}

type setOp int

const (
	setAdd setOp = iota
	setRemove
	setReplace
)

func (s *InMemoryProfileService) mutateSet(ctx context.Context, userID string, values []string, op setOp, field func(*models.Profile) *[]string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prof := s.getOrCreateLocked(userID)
	set := field(prof)
	switch op {
	case setAdd:
		for _, v := range values {
			exists := false
			for _, cur := range *set {
				if cur == v {
					exists = true
					break
				}
			}
			if !exists {
				*set = append(*set, v)
			}
		}
	case setRemove:
		for _, v := range values {
			for i, cur := range *set {
				if cur == v {
					*set = append((*set)[:i], (*set)[i+1:]...)
					break
				}
			}
		}
	case setReplace:
		next := append([]string{}, values...)
		*set = next
	}
	prof.UpdatedAt = time.Now()
	return s.joined(ctx, prof), nil
}
