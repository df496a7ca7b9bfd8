package router

import (
	"copilot.dev/backend/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ClientRouter(router *gin.RouterGroup, h *handler.ClientHandler) {
	router.POST("", h.Create)
	router.GET("", h.List)
	router.GET("/:id", h.Get)
	router.POST("/:id/sessions", h.CreateSession)
	router.GET("/:id/sessions", h.ListSessions)
}
