package filestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reportdesk/internal/domain"
)

type MimeTypeStat struct {
	MimeType string `gorm:"column:mime_type" json:"mime_type"`
	Count    int64  `gorm:"column:count" json:"count"`
	Size     int64  `gorm:"column:size" json:"size"`
}

type DayStat struct {
	Day   string `gorm:"column:day" json:"day"`
	Count int64  `gorm:"column:count" json:"count"`
	Size  int64  `gorm:"column:size" json:"size"`
}

type Repository interface {
	Create(ctx context.Context, f *StoredFile) error
	GetByID(ctx context.Context, id string) (*StoredFile, error)
	GetByHash(ctx context.Context, hash string) (*StoredFile, error)
	Delete(ctx context.Context, id string) error
	ListByIDs(ctx context.Context, ids []string) ([]*StoredFile, error)
	ListByProject(ctx context.Context, projectID string) ([]*StoredFile, error)
	FindExpired(ctx context.Context, cutoff time.Time) ([]*StoredFile, error)
	Totals(ctx context.Context) (count int64, size int64, err error)
	StatsByMimeType(ctx context.Context) ([]MimeTypeStat, error)
	StatsByDay(ctx context.Context, since time.Time) ([]DayStat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *StoredFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*StoredFile, error) {
	var f StoredFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	return &f, err
}

func (r *repository) GetByHash(ctx context.Context, hash string) (*StoredFile, error) {
	var f StoredFile
	err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	return &f, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&StoredFile{}).Error
}

func (r *repository) ListByIDs(ctx context.Context, ids []string) ([]*StoredFile, error) {
	var files []*StoredFile
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&files).Error
	return files, err
}

func (r *repository) ListByProject(ctx context.Context, projectID string) ([]*StoredFile, error) {
	var files []*StoredFile
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

// FindExpired selects files older than cutoff that are safe to remove:
// files without a project, files whose project row is gone, and files of
// projects that never reached the completed state. Completed projects keep
// their files indefinitely.
func (r *repository) FindExpired(ctx context.Context, cutoff time.Time) ([]*StoredFile, error) {
	var files []*StoredFile
	err := r.db.WithContext(ctx).
		Where("uploaded_at < ?", cutoff).
		Where(
			"project_id IS NULL OR project_id NOT IN (?)",
			r.db.Model(&domain.Project{}).Select("id").Where("status = ?", domain.ProjectCompleted),
		).
		Find(&files).Error
	return files, err
}

func (r *repository) Totals(ctx context.Context) (int64, int64, error) {
	var row struct {
		Count int64 `gorm:"column:count"`
		Size  int64 `gorm:"column:size"`
	}
	err := r.db.WithContext(ctx).
		Model(&StoredFile{}).
		Select("COUNT(*) AS count, COALESCE(SUM(size), 0) AS size").
		Scan(&row).Error
	return row.Count, row.Size, err
}

func (r *repository) StatsByMimeType(ctx context.Context) ([]MimeTypeStat, error) {
	var stats []MimeTypeStat
	err := r.db.WithContext(ctx).
		Model(&StoredFile{}).
		Select("mime_type, COUNT(*) AS count, COALESCE(SUM(size), 0) AS size").
		Group("mime_type").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

func (r *repository) StatsByDay(ctx context.Context, since time.Time) ([]DayStat, error) {
	var stats []DayStat
	err := r.db.WithContext(ctx).
		Model(&StoredFile{}).
		Select("DATE(uploaded_at) AS day, COUNT(*) AS count, COALESCE(SUM(size), 0) AS size").
		Where("uploaded_at >= ?", since).
		Group("DATE(uploaded_at)").
		Order("day DESC").
		Scan(&stats).Error
	return stats, err
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either backend. Postgres raises a typed pgconn error with SQLSTATE 23505;
// the sqlite driver only gives us the message text.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
