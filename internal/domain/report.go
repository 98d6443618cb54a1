package domain

import "time"

type ReportKind string

const (
	ReportListingPresentation ReportKind = "listing_presentation"
	ReportMarketAnalysis      ReportKind = "market_analysis"
	ReportActivitySummary     ReportKind = "activity_summary"
)

// Report is the metadata row for one generated marketing report. The
// rendered artifacts (PDFs, images) live in the content store; a report
// references them through report_files rows.
type Report struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	ProjectID string     `gorm:"column:project_id;index" json:"project_id"`
	Title     string     `gorm:"column:title" json:"title"`
	Kind      ReportKind `gorm:"column:kind" json:"kind"`
	CreatedBy int64      `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Report) TableName() string { return "reports" }

// ReportFile links a report to a stored file. Position fixes the entry
// order inside packaged ZIP archives.
type ReportFile struct {
	ReportID string `gorm:"column:report_id;primaryKey" json:"report_id"`
	FileID   string `gorm:"column:file_id;primaryKey" json:"file_id"`
	Position int    `gorm:"column:position" json:"position"`
}

func (ReportFile) TableName() string { return "report_files" }
