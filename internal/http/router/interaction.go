package router

import (
	"copilot.dev/backend/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func InteractionRouter(router *gin.RouterGroup, h *handler.InteractionHandler) {
	router.POST("/:id/feedback", h.Feedback)
}
