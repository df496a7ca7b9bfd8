// Package router wires the HTTP surface (spec.md §6) one resource group
// per file, mirroring the teacher's own router package layout.
package router

import (
	"copilot.dev/backend/core/db"
	"copilot.dev/backend/internal/dojo"
	"copilot.dev/backend/internal/http/handler"
	"copilot.dev/backend/internal/http/middleware"
	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/pipeline"
	"copilot.dev/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// Services bundles every collaborator a handler needs, built once in
// cmd/server/main.go and threaded through here.
type Services struct {
	DB        *db.DB
	Clients   store.ClientStore
	Sessions  store.SessionStore
	Knowledge knowledge.Retriever
	Dojo      *dojo.Service
	Pipeline  *pipeline.Orchestrator
}

// Config configures cross-cutting router behavior.
type Config struct {
	AdminAPIKey string
}

func SetupRoutes(engine *gin.Engine, svc *Services, cfg Config) {
	healthHandler := handler.NewHealthHandler(svc.DB)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/health/db", healthHandler.HealthDB)

	v1 := engine.Group("/api/v1")
	{
		clientHandler := handler.NewClientHandler(svc.Clients, svc.Sessions)
		ClientRouter(v1.Group("/clients"), clientHandler)

		sessionHandler := handler.NewSessionHandler(svc.Sessions, svc.Pipeline)
		SessionRouter(v1.Group("/sessions"), sessionHandler)

		interactionHandler := handler.NewInteractionHandler(svc.Sessions)
		InteractionRouter(v1.Group("/interactions"), interactionHandler)

		knowledgeHandler := handler.NewKnowledgeHandler(svc.Knowledge)
		KnowledgeRouter(v1.Group("/knowledge"), knowledgeHandler)

		dojoHandler := handler.NewDojoHandler(svc.Dojo)
		dojoGroup := v1.Group("/dojo")
		dojoGroup.Use(middleware.RequireAdminKey(cfg.AdminAPIKey))
		DojoRouter(dojoGroup, dojoHandler)
	}
}
