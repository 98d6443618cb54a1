package filestore

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reportdesk/internal/domain"
)

// Handler exposes the content store over HTTP. Uploads are multipart;
// downloads stream the blob with the stored content type.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetInt64("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file provided"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	assoc := Associations{}
	if v := c.PostForm("project_id"); v != "" {
		assoc.ProjectID = &v
	}
	if v := c.PostForm("task_id"); v != "" {
		assoc.TaskID = &v
	}
	if userID != 0 {
		assoc.UploadedBy = &userID
	}

	file, err := h.service.Store(c.Request.Context(), data, fileHeader.Filename, mimeType, assoc)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":            file.ID,
			"original_name": file.OriginalName,
			"stored_name":   file.StoredName,
			"mime_type":     file.MimeType,
			"size":          file.Size,
			"hash":          file.Hash,
			"download_url":  downloadURL(file.ID),
		},
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	file, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "file not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": fileResponse(file)})
}

func (h *Handler) List(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "project_id is required"})
		return
	}
	files, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list files"})
		return
	}
	out := make([]gin.H, 0, len(files))
	for _, f := range files {
		out = append(out, fileResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func (h *Handler) Download(c *gin.Context) {
	file, blob, err := h.service.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "download failed"})
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, blob, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	var err error
	if c.GetString("role") == string(domain.RoleAdmin) {
		err = h.service.Delete(c.Request.Context(), c.Param("id"))
	} else {
		err = h.service.DeleteOwned(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"))
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "file not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "file belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "delete failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type batchDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (h *Handler) DeleteBatch(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ids is required"})
		return
	}
	res := h.service.DeleteBatch(c.Request.Context(), req.IDs)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

func (h *Handler) Cleanup(c *gin.Context) {
	days := 30
	if v := c.Query("older_than_days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid older_than_days"})
			return
		}
		days = parsed
	}
	res, err := h.service.CleanupExpired(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *Handler) writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrInvalidMimeType),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrBadSignature):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "upload failed"})
	}
}

func fileResponse(f *StoredFile) gin.H {
	return gin.H{
		"id":            f.ID,
		"original_name": f.OriginalName,
		"stored_name":   f.StoredName,
		"mime_type":     f.MimeType,
		"size":          f.Size,
		"hash":          f.Hash,
		"uploaded_at":   f.UploadedAt,
		"download_url":  downloadURL(f.ID),
	}
}

func downloadURL(id string) string {
	return "/api/v1/files/" + id + "/download"
}
