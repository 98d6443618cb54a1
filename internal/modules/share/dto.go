package share

type CreateLinkRequest struct {
	ReportID string `json:"report_id" binding:"required"`
	TTL      string `json:"ttl"` // Go duration string; empty uses the configured default
}
