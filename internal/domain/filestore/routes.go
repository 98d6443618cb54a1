package filestore

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes under the protected group. Stats,
// batch delete, and cleanup additionally pass through the admin middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, admin gin.HandlerFunc) {
	files := r.Group("/files")
	{
		files.POST("", h.Upload)
		files.GET("", h.List)
		files.GET("/stats", admin, h.Stats)
		files.POST("/batch-delete", admin, h.DeleteBatch)
		files.POST("/cleanup", admin, h.Cleanup)
		files.GET("/:id", h.GetByID)
		files.GET("/:id/download", h.Download)
		files.DELETE("/:id", h.Delete)
	}
}
