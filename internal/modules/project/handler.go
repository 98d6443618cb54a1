package project

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reportdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.ListMine)
		projects.GET("/:id", h.GetByID)
		projects.PATCH("/:id/status", h.UpdateStatus)
		projects.POST("/:id/tasks", h.CreateTask)
		projects.GET("/:id/tasks", h.ListTasks)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListMine(c *gin.Context) {
	projects, err := h.service.ListByOwner(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list projects")
		return
	}
	response.Success(c, http.StatusOK, projects)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load project")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "project not found")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update status")
	default:
		response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
	}
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	t, err := h.service.CreateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create task")
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.service.ListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list tasks")
		return
	}
	response.Success(c, http.StatusOK, tasks)
}
