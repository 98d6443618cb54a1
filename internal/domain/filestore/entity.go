package filestore

import "time"

// StoredFile is the metadata row for one physically stored blob.
// Rows are immutable after creation: the only transitions are
// existence and non-existence. Identical content always collapses
// onto a single row — hash is the dedup key and carries a unique
// index to make that hold under concurrent uploads.
type StoredFile struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	StoredName   string    `gorm:"column:stored_name" json:"stored_name"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	Hash         string    `gorm:"column:hash;uniqueIndex" json:"hash"`
	Path         string    `gorm:"column:path" json:"-"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;index" json:"uploaded_at"`
	ProjectID    *string   `gorm:"column:project_id;index" json:"project_id,omitempty"`
	TaskID       *string   `gorm:"column:task_id" json:"task_id,omitempty"`
	UploadedBy   *int64    `gorm:"column:uploaded_by" json:"uploaded_by,omitempty"`
}

func (StoredFile) TableName() string { return "stored_files" }

// Associations carries the optional foreign links supplied at upload time.
type Associations struct {
	ProjectID  *string
	TaskID     *string
	UploadedBy *int64
}
