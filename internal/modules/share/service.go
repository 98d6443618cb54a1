package share

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
)

type Service struct {
	links      LinkStore
	reports    ReportSource
	defaultTTL time.Duration
	now        func() time.Time
}

func NewService(links LinkStore, reports ReportSource, defaultTTL time.Duration) *Service {
	return &Service{
		links:      links,
		reports:    reports,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Create issues a time-limited token for a report. The token is opaque:
// two UUIDs, no embedded claims, resolvable only through the database.
func (s *Service) Create(ctx context.Context, userID int64, req CreateLinkRequest) (*domain.ShareLink, error) {
	if _, err := s.reports.GetByID(ctx, req.ReportID); err != nil {
		return nil, err
	}

	ttl := s.defaultTTL
	if req.TTL != "" {
		parsed, err := time.ParseDuration(req.TTL)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidTTL
		}
		ttl = parsed
	}

	now := s.now()
	link := &domain.ShareLink{
		ID:        uuid.New().String(),
		Token:     newToken(),
		ReportID:  req.ReportID,
		CreatedBy: userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Resolve validates a token and returns the shared report with its files.
// Expiry and revocation are checked on every call.
func (s *Service) Resolve(ctx context.Context, token string) (*domain.ShareLink, *domain.Report, []*filestore.StoredFile, error) {
	link, err := s.links.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrLinkNotFound
		}
		return nil, nil, nil, err
	}
	if link.Revoked() {
		return nil, nil, nil, ErrLinkRevoked
	}
	if link.Expired(s.now()) {
		return nil, nil, nil, ErrLinkExpired
	}

	rep, err := s.reports.GetByID(ctx, link.ReportID)
	if err != nil {
		return nil, nil, nil, err
	}
	files, err := s.reports.Files(ctx, link.ReportID)
	if err != nil {
		return nil, nil, nil, err
	}
	return link, rep, files, nil
}

// Authorize reports whether the token grants access to the given file.
func (s *Service) Authorize(ctx context.Context, token, fileID string) error {
	_, _, files, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.ID == fileID {
			return nil
		}
	}
	return ErrLinkNotFound
}

func (s *Service) ListByReport(ctx context.Context, reportID string) ([]domain.ShareLink, error) {
	return s.links.ListByReport(ctx, reportID)
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	if err := s.links.Revoke(ctx, id, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return err
	}
	return nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}
