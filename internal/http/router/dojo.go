package router

import (
	"copilot.dev/backend/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func DojoRouter(router *gin.RouterGroup, h *handler.DojoHandler) {
	router.POST("/chat", h.Chat)
	router.POST("/confirm", h.Confirm)
}
