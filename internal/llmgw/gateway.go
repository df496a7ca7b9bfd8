// Package llmgw is the LLM Gateway (C1): a single call primitive with
// retry, timeout, and a response-content cache, shared by every
// downstream pipeline stage.
package llmgw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Gateway is the contract every pipeline stage depends on. Stages never
// hold an openai.Client directly (ground: spec.md §9's "LLM Gateway held
// as a constructor dependency").
type Gateway interface {
	Generate(ctx context.Context, systemPrompt, userPrompt, cacheKeyPrefix string, useCache bool) (Result, error)
}

// Result is the successful outcome of a Generate call.
type Result struct {
	Content string
	Model   string
	Ts      time.Time
}

// Config configures the gateway's transport and retry/cache behavior.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	FallbackModel   string
	RequestTimeout  time.Duration
	MaxTokens       int
	CacheSize       int
	CacheTTL        time.Duration
}

const (
	maxAttempts  = 3
	defaultTimeout = 60 * time.Second
)

var backoffSchedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

type gateway struct {
	client        openai.Client
	model         string
	fallbackModel string
	maxTokens     int
	timeout       time.Duration
	cache         *responseCache
}

// New builds a Gateway backed by an OpenAI-compatible chat completions
// endpoint (in production, a locally hosted Ollama server).
func New(cfg Config) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llmgw: API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "llama3.1:8b"
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 3600 * time.Second
	}

	return &gateway{
		client:        openai.NewClient(opts...),
		model:         model,
		fallbackModel: cfg.FallbackModel,
		maxTokens:     maxTokens,
		timeout:       timeout,
		cache:         newResponseCache(cacheSize, cacheTTL),
	}, nil
}

// Generate implements spec.md §4.C1. Cache mutations are a single
// critical section but parallel callers hitting the same key MAY both
// invoke the model — the cache is opportunistic, not coalescing.
func (g *gateway) Generate(ctx context.Context, systemPrompt, userPrompt, cacheKeyPrefix string, useCache bool) (Result, error) {
	key := cacheKey(cacheKeyPrefix, systemPrompt, userPrompt, g.model)

	if useCache {
		if content, model, ok := g.cache.get(key); ok {
			return Result{Content: content, Model: model, Ts: time.Now()}, nil
		}
	}

	budgetCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.callWithRetry(budgetCtx, g.model, systemPrompt, userPrompt)
	model := g.model
	if err != nil && g.fallbackModel != "" && g.fallbackModel != g.model {
		slog.WarnContext(ctx, "llm primary model exhausted retries, trying fallback model",
			"primary_model", g.model, "fallback_model", g.fallbackModel)
		content, err = g.callWithRetry(budgetCtx, g.fallbackModel, systemPrompt, userPrompt)
		model = g.fallbackModel
	}

	if err != nil {
		if errors.Is(budgetCtx.Err(), context.DeadlineExceeded) {
			return Result{}, ErrLLMTimeout
		}
		return Result{}, ErrLLMUnavailable
	}

	result := Result{Content: content, Model: model, Ts: time.Now()}

	if useCache {
		g.cache.set(key, content, model)
	}

	return result, nil
}

// callWithRetry attempts a single model up to maxAttempts times with
// exponential backoff, classifying each failure via isRetryable.
func (g *gateway) callWithRetry(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		content, err := g.callOnce(ctx, model, systemPrompt, userPrompt)
		if err == nil {
			return content, nil
		}
		lastErr = err

		slog.WarnContext(ctx, "llm call failed",
			"model", model, "attempt", attempt, "max_attempts", maxAttempts, "error", err)

		if !isRetryable(ctx, err) || attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoffSchedule[attempt-1]):
		}
	}

	return "", lastErr
}

func (g *gateway) callOnce(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens: openai.Int(int64(g.maxTokens)),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}

	slog.DebugContext(ctx, "llm call completed",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llmgw: no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// isRetryable classifies rate limits and 5xx as retryable, everything
// else (including 4xx other than 429) as not.
func isRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return true
		case apiErr.StatusCode >= 500:
			return true
		default:
			slog.ErrorContext(ctx, "llm client error, not retryable",
				"status_code", apiErr.StatusCode, "error_type", apiErr.Type)
			return false
		}
	}

	// Network errors (no API response) are generally retryable.
	return true
}
