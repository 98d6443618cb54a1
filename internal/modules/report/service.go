package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
)

type Service struct {
	reports ReportStore
	files   FileSource
}

func NewService(reports ReportStore, files FileSource) *Service {
	return &Service{reports: reports, files: files}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateReportRequest) (*domain.Report, error) {
	kind := domain.ReportKind(req.Kind)
	switch kind {
	case domain.ReportListingPresentation, domain.ReportMarketAnalysis, domain.ReportActivitySummary:
	default:
		return nil, ErrInvalidKind
	}

	rep := &domain.Report{
		ID:        uuid.New().String(),
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Kind:      kind,
		CreatedBy: userID,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]domain.Report, error) {
	return s.reports.ListByProject(ctx, projectID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}

func (s *Service) AttachFile(ctx context.Context, reportID, fileID string) error {
	if _, err := s.GetByID(ctx, reportID); err != nil {
		return err
	}
	return s.reports.AttachFile(ctx, reportID, fileID)
}

func (s *Service) DetachFile(ctx context.Context, reportID, fileID string) error {
	if _, err := s.GetByID(ctx, reportID); err != nil {
		return err
	}
	return s.reports.DetachFile(ctx, reportID, fileID)
}

// Files returns the attached stored files in packaging order.
func (s *Service) Files(ctx context.Context, reportID string) ([]*filestore.StoredFile, error) {
	ids, err := s.reports.FileIDs(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	files, err := s.files.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*filestore.StoredFile, len(files))
	for _, f := range files {
		byID[f.ID] = f
	}
	ordered := make([]*filestore.StoredFile, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

// Package bundles the report's files into a ZIP archive.
func (s *Service) Package(ctx context.Context, reportID string) (*domain.Report, []byte, error) {
	rep, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	files, err := s.Files(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}
	archive, err := packageFiles(files)
	if err != nil {
		return nil, nil, err
	}
	return rep, archive, nil
}
