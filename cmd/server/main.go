package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/common/logger"
	"copilot.dev/backend/common/otel"
	"copilot.dev/backend/core/config"
	"copilot.dev/backend/core/db"
	"copilot.dev/backend/internal/archetype"
	"copilot.dev/backend/internal/dojo"
	"copilot.dev/backend/internal/http/middleware"
	httprouter "copilot.dev/backend/internal/http/router"
	"copilot.dev/backend/internal/indicators"
	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/pipeline"
	"copilot.dev/backend/internal/pipeline/sessionlock"
	"copilot.dev/backend/internal/psychology"
	"copilot.dev/backend/internal/store/pgstore"
	"copilot.dev/backend/internal/strategy"
	"copilot.dev/backend/internal/synthesis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "sales copilot backend starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	knowledgeStore, err := knowledge.NewTypesenseStore(ctx, knowledge.Config{
		Host:           cfg.Knowledge.Host,
		Port:           cfg.Knowledge.Port,
		Protocol:       cfg.Knowledge.Protocol,
		APIKey:         cfg.Knowledge.APIKey,
		CollectionName: cfg.Knowledge.CollectionName,
		EmbeddingModel: cfg.Knowledge.EmbeddingModel,
		VectorDim:      cfg.Knowledge.VectorDim,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to knowledge store", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "knowledge store connected", "collection", cfg.Knowledge.CollectionName)

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected")

	gateway, err := llmgw.New(llmgw.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		FallbackModel:  cfg.LLM.FallbackModel,
		RequestTimeout: cfg.LLM.RequestTimeout,
		MaxTokens:      cfg.LLM.MaxTokens,
		CacheSize:      cfg.LLM.CacheSize,
		CacheTTL:       cfg.LLM.CacheTTL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to build llm gateway", "error", err)
		os.Exit(1)
	}

	sessionStore := pgstore.New(database)

	analyzer := psychology.New(gateway)
	archetypes := archetype.New("automotive")
	synth := synthesis.New(gateway)
	indicatorGen := indicators.New(gateway)
	strategyGen := strategy.New(gateway, knowledgeStore)
	locker := sessionlock.NewRedis(redisClient)

	orchestrator := pipeline.New(sessionStore, locker, analyzer, archetypes, synth, indicatorGen, strategyGen)
	dojoService := dojo.New(gateway, knowledgeStore)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, &httprouter.Services{
		DB:        database,
		Clients:   sessionStore,
		Sessions:  sessionStore,
		Knowledge: knowledgeStore,
		Dojo:      dojoService,
		Pipeline:  orchestrator,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *httprouter.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.Config{
		AdminAPIKey: cfg.AdminAPIKey,
	})

	return router
}
