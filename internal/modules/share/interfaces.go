package share

import (
	"context"
	"os"
	"time"

	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
)

type LinkStore interface {
	Create(ctx context.Context, link *domain.ShareLink) error
	GetByToken(ctx context.Context, token string) (*domain.ShareLink, error)
	ListByReport(ctx context.Context, reportID string) ([]domain.ShareLink, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// ReportSource is the slice of the report service the share module needs.
type ReportSource interface {
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	Files(ctx context.Context, reportID string) ([]*filestore.StoredFile, error)
}

// FileOpener streams a stored blob for shared downloads.
type FileOpener interface {
	Open(ctx context.Context, id string) (*filestore.StoredFile, *os.File, error)
}
