package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reportdesk/internal/domain"
	"reportdesk/internal/repository"
)

type Service struct {
	projects *repository.ProjectRepository
}

func NewService(projects *repository.ProjectRepository) *Service {
	return &Service{projects: projects}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Address: req.Address,
		Status:  domain.ProjectActive,
		OwnerID: ownerID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

// UpdateStatus moves a project between active, completed and archived.
// Completing a project exempts its files from retention cleanup.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) error {
	st := domain.ProjectStatus(status)
	switch st {
	case domain.ProjectActive, domain.ProjectCompleted, domain.ProjectArchived:
	default:
		return ErrInvalidStatus
	}
	if err := s.projects.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, projectID string, req CreateTaskRequest) (*domain.Task, error) {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     req.Title,
		Status:    domain.TaskOpen,
	}
	if err := s.projects.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.projects.ListTasks(ctx, projectID)
}
