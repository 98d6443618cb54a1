package report

import (
	"errors"
	"fmt"
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
	reports := r.Group("/reports")
	{
		reports.POST("", h.Create)
		reports.GET("", h.ListByProject)
		reports.GET("/:id", h.GetByID)
		reports.DELETE("/:id", h.Delete)
		reports.POST("/:id/files", h.AttachFile)
		reports.DELETE("/:id/files/:fileId", h.DetachFile)
		reports.GET("/:id/package", h.Package)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	rep, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) {
			response.Error(c, http.StatusBadRequest, "INVALID_KIND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create report")
		return
	}
	response.Success(c, http.StatusCreated, rep)
}

func (h *Handler) ListByProject(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "project_id is required")
		return
	}
	reports, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list reports")
		return
	}
	response.Success(c, http.StatusOK, reports)
}

func (h *Handler) GetByID(c *gin.Context) {
	rep, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load report")
		return
	}

	files, err := h.service.Files(c.Request.Context(), rep.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load report files")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep, "files": files})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) AttachFile(c *gin.Context) {
	var req AttachFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.AttachFile(c.Request.Context(), c.Param("id"), req.FileID); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to attach file")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"report_id": c.Param("id"), "file_id": req.FileID})
}

func (h *Handler) DetachFile(c *gin.Context) {
	if err := h.service.DetachFile(c.Request.Context(), c.Param("id"), c.Param("fileId")); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to detach file")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report_id": c.Param("id"), "file_id": c.Param("fileId")})
}

func (h *Handler) Package(c *gin.Context) {
	rep, archive, err := h.service.Package(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrReportNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
	case errors.Is(err, ErrNoFiles):
		response.Error(c, http.StatusConflict, "NO_FILES", err.Error())
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to package report")
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Title+".zip"))
		c.Data(http.StatusOK, "application/zip", archive)
	}
}
