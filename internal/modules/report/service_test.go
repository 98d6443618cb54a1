package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
	"reportdesk/internal/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, string) {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Report{}, &domain.ReportFile{}, &filestore.StoredFile{}))

	dir := t.TempDir()
	return NewService(repository.NewReportRepository(db), filestore.NewRepository(db)), db, dir
}

func storeFile(t *testing.T, db *gorm.DB, dir, id, name string, content []byte) {
	t.Helper()
	path := filepath.Join(dir, id)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	require.NoError(t, db.Create(&filestore.StoredFile{
		ID:           id,
		OriginalName: name,
		Hash:         id, // unique per test file
		Path:         path,
		Size:         int64(len(content)),
	}).Error)
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	rep, err := svc.Create(ctx, 7, CreateReportRequest{
		ProjectID: "proj-1",
		Title:     "Listing Presentation",
		Kind:      string(domain.ReportListingPresentation),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, int64(7), rep.CreatedBy)

	got, err := svc.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Title, got.Title)
}

func TestService_CreateRejectsUnknownKind(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Create(context.Background(), 1, CreateReportRequest{
		ProjectID: "proj-1",
		Title:     "x",
		Kind:      "newsletter",
	})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestService_PackagePreservesAttachmentOrder(t *testing.T) {
	svc, db, dir := newTestService(t)
	ctx := context.Background()

	rep, err := svc.Create(ctx, 1, CreateReportRequest{
		ProjectID: "proj-1",
		Title:     "Market Analysis",
		Kind:      string(domain.ReportMarketAnalysis),
	})
	require.NoError(t, err)

	storeFile(t, db, dir, "f1", "summary.pdf", []byte("%PDF-summary"))
	storeFile(t, db, dir, "f2", "chart.png", []byte("png-bytes"))

	require.NoError(t, svc.AttachFile(ctx, rep.ID, "f2"))
	require.NoError(t, svc.AttachFile(ctx, rep.ID, "f1"))

	files, err := svc.Files(ctx, rep.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f2", files[0].ID)
	assert.Equal(t, "f1", files[1].ID)

	_, archive, err := svc.Package(ctx, rep.ID)
	require.NoError(t, err)
	entries := readZip(t, archive)
	assert.Len(t, entries, 2)
}

func TestService_PackageEmptyReport(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	rep, err := svc.Create(ctx, 1, CreateReportRequest{
		ProjectID: "proj-1",
		Title:     "Empty",
		Kind:      string(domain.ReportActivitySummary),
	})
	require.NoError(t, err)

	_, _, err = svc.Package(ctx, rep.ID)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestService_DetachFile(t *testing.T) {
	svc, db, dir := newTestService(t)
	ctx := context.Background()

	rep, err := svc.Create(ctx, 1, CreateReportRequest{
		ProjectID: "proj-1",
		Title:     "r",
		Kind:      string(domain.ReportMarketAnalysis),
	})
	require.NoError(t, err)

	storeFile(t, db, dir, "f1", "a.pdf", []byte("%PDF-a"))
	require.NoError(t, svc.AttachFile(ctx, rep.ID, "f1"))
	require.NoError(t, svc.DetachFile(ctx, rep.ID, "f1"))

	files, err := svc.Files(ctx, rep.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}
