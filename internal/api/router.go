package api

import "github.com/gin-gonic/gin"

// RegisterHealthCheck attaches the /health endpoint directly to the engine.
func (h *Handler) RegisterHealthCheck(r *gin.Engine) {
	r.GET("/health", h.healthCheck)
}

// RegisterRoutes attaches all platform routes to the given router group.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/upload", h.upload)
	g.GET("/search", h.search)
	g.GET("/platforms", h.listPlatforms)
	g.GET("/uploads", h.listUploads)
	g.GET("/uploads/:id", h.getUpload)
}
