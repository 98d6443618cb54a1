package domain

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is a marketing engagement for one property listing. Stored files
// and reports hang off a project; files of completed projects are never
// removed by retention cleanup.
type Project struct {
	ID        string        `gorm:"column:id;primaryKey" json:"id"`
	Name      string        `gorm:"column:name" json:"name"`
	Address   string        `gorm:"column:address" json:"address,omitempty"`
	Status    ProjectStatus `gorm:"column:status;index" json:"status"`
	OwnerID   int64         `gorm:"column:owner_id;index" json:"owner_id"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

type Task struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	ProjectID string     `gorm:"column:project_id;index" json:"project_id"`
	Title     string     `gorm:"column:title" json:"title"`
	Status    TaskStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Task) TableName() string { return "tasks" }
