package report

import (
	"context"

	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
)

type ReportStore interface {
	Create(ctx context.Context, rep *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Report, error)
	Delete(ctx context.Context, id string) error
	AttachFile(ctx context.Context, reportID, fileID string) error
	DetachFile(ctx context.Context, reportID, fileID string) error
	FileIDs(ctx context.Context, reportID string) ([]string, error)
}

// FileSource resolves stored-file metadata for packaging.
type FileSource interface {
	ListByIDs(ctx context.Context, ids []string) ([]*filestore.StoredFile, error)
}
