package domain

import "time"

// ShareLink grants time-limited anonymous access to one report. The token
// is an opaque random value; expiry and revocation are checked on every
// resolve, never cached.
type ShareLink struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	Token     string     `gorm:"column:token;uniqueIndex" json:"token"`
	ReportID  string     `gorm:"column:report_id;index" json:"report_id"`
	CreatedBy int64      `gorm:"column:created_by" json:"created_by"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (ShareLink) TableName() string { return "share_links" }

func (s *ShareLink) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *ShareLink) Revoked() bool {
	return s.RevokedAt != nil
}
