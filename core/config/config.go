package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"copilot.dev/backend/core/db"
)

// ServiceType distinguishes the long-running HTTP server from one-off
// command entry points (migrations, dojo ingestion) that share Config
// but don't need every field validated the same way.
type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeDojo   ServiceType = "dojo"
)

// Config holds all application configuration.
type Config struct {
	// Env is the environment name (development, staging, production)
	Env string

	// Port is the HTTP server port
	Port string

	// DB holds database configuration
	DB db.Config

	// OTel holds OpenTelemetry exporter configuration
	OTel OTelConfig

	// Knowledge holds the vector-store connection used by the knowledge retriever
	Knowledge KnowledgeConfig

	// LLM holds the configuration for the language model gateway
	LLM LLMConfig

	// Pipeline holds settings for the analysis pipeline orchestrator
	Pipeline PipelineConfig

	// CORSOrigins is loaded from CORS_ORIGINS_STR; no CORS middleware
	// reads it, so the HTTP API does not restrict origins.
	CORSOrigins []string

	// SecretKey is loaded from SECRET_KEY; nothing in the service reads it.
	SecretKey string

	// JWTSecretKey is loaded from JWT_SECRET_KEY; nothing in the service
	// reads it.
	JWTSecretKey string

	// RateLimit holds the API rate-limit settings
	RateLimit RateLimitConfig

	// AdminAPIKey gates the dojo ingestion and admin endpoints
	AdminAPIKey string
}

// OTelConfig holds OpenTelemetry exporter settings. An empty Endpoint
// disables telemetry entirely (Setup becomes a no-op).
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Headers        string
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

// KnowledgeConfig configures the Typesense-backed knowledge retriever (C2).
type KnowledgeConfig struct {
	Host           string
	Port           string
	Protocol       string
	APIKey         string
	CollectionName string
	EmbeddingModel string
	VectorDim      int
}

// LLMConfig configures the LLM gateway (C1) against an OpenAI-compatible
// endpoint, which in production points at a locally hosted Ollama server.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	FallbackModel   string
	RequestTimeout  time.Duration
	MaxTokens       int
	MaxContextChars int
	CacheTTL        time.Duration
	CacheSize       int
}

// PipelineConfig configures the analysis pipeline orchestrator (C9),
// including the distributed per-session lock backed by Redis.
type PipelineConfig struct {
	RedisURL        string
	SessionLockTTL  time.Duration
	StageTimeout    time.Duration
	TraceHeaderName string
}

type RateLimitConfig struct {
	Requests int
	Period   time.Duration
}

// Load loads configuration from environment variables.
// It provides sensible defaults for development.
func Load(_ ServiceType) (Config, error) {
	cfg := Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		DB: db.Config{
			DSN:      buildDSN(),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		OTel: OTelConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "sales-copilot-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "0.1.0"),
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
		},
		Knowledge: KnowledgeConfig{
			Host:           getEnv("QDRANT_HOST", "localhost"),
			Port:           getEnv("QDRANT_PORT", "8108"),
			Protocol:       getEnv("QDRANT_PROTOCOL", "http"),
			APIKey:         getEnv("QDRANT_API_KEY", "xyz"),
			CollectionName: getEnv("QDRANT_COLLECTION_NAME", "tesla_knowledge"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "paraphrase-multilingual-MiniLM-L12-v2"),
			VectorDim:      getEnvInt("EMBEDDING_DIM", 384),
		},
		LLM: LLMConfig{
			APIKey:          getEnv("OLLAMA_API_KEY", "ollama"),
			BaseURL:         getEnv("OLLAMA_API_URL", "http://localhost:11434/v1"),
			Model:           getEnv("OLLAMA_MODEL", "llama3.1:8b"),
			FallbackModel:   getEnv("OLLAMA_FALLBACK_MODEL", "llama3.2:3b"),
			RequestTimeout:  time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
			MaxTokens:       getEnvInt("MAX_TOKENS_PER_REQUEST", 2048),
			MaxContextChars: getEnvInt("MAX_CONTEXT_LENGTH", 16000),
			CacheTTL:        time.Duration(getEnvInt("LLM_CACHE_TTL_SECONDS", 3600)) * time.Second,
			CacheSize:       getEnvInt("LLM_CACHE_SIZE", 128),
		},
		Pipeline: PipelineConfig{
			RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
			SessionLockTTL:  time.Duration(getEnvInt("SESSION_LOCK_TTL_SECONDS", 30)) * time.Second,
			StageTimeout:    time.Duration(getEnvInt("PIPELINE_STAGE_TIMEOUT_SECONDS", 20)) * time.Second,
			TraceHeaderName: getEnv("TRACE_HEADER_NAME", "X-Request-ID"),
		},
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS_STR", "http://localhost:3000")),
		SecretKey:    getEnv("SECRET_KEY", "dev-secret-change-me"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "dev-jwt-secret-change-me"),
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
			Period:   time.Duration(getEnvInt("RATE_LIMIT_PERIOD", 60)) * time.Second,
		},
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	if cfg.IsProduction() && cfg.AdminAPIKey == "" {
		return Config{}, fmt.Errorf("ADMIN_API_KEY must be set in production")
	}

	return cfg, nil
}

// buildDSN constructs the database connection string from individual env vars.
func buildDSN() string {
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && url != "" {
		return url
	}

	host := getEnv("DATABASE_HOST", "localhost")
	port := getEnv("DATABASE_PORT", "5432")
	user := getEnv("DATABASE_USER", "postgres")
	password := getEnv("DATABASE_PASSWORD", "postgres")
	name := getEnv("DATABASE_NAME", "sales_copilot")
	sslMode := getEnv("DATABASE_SSLMODE", "disable")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, name, sslMode,
	)
}

// IsProduction returns true if running in production environment.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment returns true if running in development environment.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
