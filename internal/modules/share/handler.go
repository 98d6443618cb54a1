package share

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"reportdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
	files   FileOpener
}

func NewHandler(service *Service, files FileOpener) *Handler {
	return &Handler{service: service, files: files}
}

// RegisterRoutes registers link management under the protected group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	links := r.Group("/share-links")
	{
		links.POST("", h.Create)
		links.GET("", h.ListByReport)
		links.POST("/:id/revoke", h.Revoke)
	}
}

// RegisterPublicRoutes registers the anonymous resolve/download routes.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	shared := r.Group("/shared")
	{
		shared.GET("/:token", h.Resolve)
		shared.GET("/:token/files/:fileId/download", h.Download)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	link, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidTTL) {
			response.Error(c, http.StatusBadRequest, "INVALID_TTL", err.Error())
			return
		}
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
		return
	}
	response.Success(c, http.StatusCreated, link)
}

func (h *Handler) ListByReport(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "report_id is required")
		return
	}
	links, err := h.service.ListByReport(c.Request.Context(), reportID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list share links")
		return
	}
	response.Success(c, http.StatusOK, links)
}

func (h *Handler) Revoke(c *gin.Context) {
	if err := h.service.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "share link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to revoke share link")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": c.Param("id")})
}

func (h *Handler) Resolve(c *gin.Context) {
	link, rep, files, err := h.service.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeResolveError(c, err)
		return
	}

	out := make([]gin.H, 0, len(files))
	for _, f := range files {
		out = append(out, gin.H{
			"id":            f.ID,
			"original_name": f.OriginalName,
			"mime_type":     f.MimeType,
			"size":          f.Size,
			"download_url":  fmt.Sprintf("/api/v1/shared/%s/files/%s/download", link.Token, f.ID),
		})
	}
	response.Success(c, http.StatusOK, gin.H{
		"report":     rep,
		"files":      out,
		"expires_at": link.ExpiresAt,
	})
}

func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	fileID := c.Param("fileId")

	if err := h.service.Authorize(c.Request.Context(), token, fileID); err != nil {
		h.writeResolveError(c, err)
		return
	}

	file, blob, err := h.files.Open(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, blob, nil)
}

func (h *Handler) writeResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLinkExpired):
		response.Error(c, http.StatusGone, "LINK_EXPIRED", err.Error())
	case errors.Is(err, ErrLinkRevoked):
		response.Error(c, http.StatusGone, "LINK_REVOKED", err.Error())
	default:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "invalid share link")
	}
}
