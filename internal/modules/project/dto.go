package project

type CreateProjectRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateTaskRequest struct {
	Title string `json:"title" binding:"required"`
}
