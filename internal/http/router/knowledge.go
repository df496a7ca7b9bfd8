package router

import (
	"copilot.dev/backend/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func KnowledgeRouter(router *gin.RouterGroup, h *handler.KnowledgeHandler) {
	router.POST("", h.Create)
	router.POST("/bulk", h.BulkCreate)
	router.GET("", h.List)
	router.POST("/search", h.Search)
	router.DELETE("/:id", h.Delete)
	router.GET("/health/qdrant", h.Health)
}
