package report

type CreateReportRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
}

type AttachFileRequest struct {
	FileID string `json:"file_id" binding:"required"`
}
