package router

import (
	"copilot.dev/backend/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func SessionRouter(router *gin.RouterGroup, h *handler.SessionHandler) {
	router.GET("/:id", h.Get)
	router.POST("/:id/end", h.End)
	router.DELETE("/:id", h.Delete)
	router.POST("/:id/interactions", h.CreateInteraction)
	router.GET("/:id/interactions", h.ListInteractions)
	router.POST("/:id/interactions/stream", h.StreamInteraction)
}
