package repository

import (
	"context"

	"gorm.io/gorm"

	"reportdesk/internal/domain"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	var rep domain.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&domain.ReportFile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Report{}).Error
	})
}

// AttachFile links a stored file to a report at the next free position.
func (r *ReportRepository) AttachFile(ctx context.Context, reportID, fileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.Model(&domain.ReportFile{}).
			Where("report_id = ?", reportID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&max).Error; err != nil {
			return err
		}
		return tx.Create(&domain.ReportFile{
			ReportID: reportID,
			FileID:   fileID,
			Position: max + 1,
		}).Error
	})
}

func (r *ReportRepository) DetachFile(ctx context.Context, reportID, fileID string) error {
	return r.db.WithContext(ctx).
		Where("report_id = ? AND file_id = ?", reportID, fileID).
		Delete(&domain.ReportFile{}).Error
}

// FileIDs returns the attached file ids in packaging order.
func (r *ReportRepository) FileIDs(ctx context.Context, reportID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.ReportFile{}).
		Where("report_id = ?", reportID).
		Order("position ASC").
		Pluck("file_id", &ids).Error
	return ids, err
}
