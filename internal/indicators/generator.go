// Package indicators implements the Sales Indicator Generator (C7): it
// derives the four quantitative sales signals from the Customer DNA.
package indicators

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/ttlcache"
)

const (
	cacheSize = 128
	cacheTTL  = time.Hour
)

type Generator struct {
	gateway llmgw.Gateway
	cache   *ttlcache.Cache[model.SalesIndicators]
}

func New(gateway llmgw.Gateway) *Generator {
	return &Generator{
		gateway: gateway,
		cache:   ttlcache.New[model.SalesIndicators](cacheSize, cacheTTL),
	}
}

// SessionContext carries the account-type/archetype detail the indicator
// prompt needs beyond the DNA itself.
type SessionContext struct {
	ArchetypeKey string
	AccountType  string
	Extra        map[string]any
}

// Derive implements spec.md §4.C7.
func (g *Generator) Derive(ctx context.Context, dna model.HolisticProfile, session SessionContext) model.SalesIndicators {
	if dna.IsFallback {
		return fallbackIndicators()
	}

	dnaJSON, err := json.Marshal(dna)
	if err != nil {
		slog.ErrorContext(ctx, "indicators: marshal dna failed", "error", err)
		return fallbackIndicators()
	}

	key := cacheKey(dnaJSON)
	if cached, ok := g.cache.Get(key); ok {
		return cached
	}

	sessionJSON, err := json.Marshal(session.Extra)
	if err != nil {
		sessionJSON = []byte("{}")
	}

	result, err := g.gateway.Generate(ctx, systemPrompt, userPrompt(dnaJSON, sessionJSON, dna.Confidence, session.ArchetypeKey, session.AccountType), "indicators", true)
	if err != nil {
		slog.WarnContext(ctx, "indicators: llm call failed, returning fallback indicators", "error", err)
		return fallbackIndicators()
	}

	jsonBody, ok := extractJSON(result.Content)
	if !ok {
		slog.WarnContext(ctx, "indicators: no JSON envelope in llm response")
		return fallbackIndicators()
	}

	var raw rawIndicators
	if err := json.Unmarshal([]byte(jsonBody), &raw); err != nil {
		slog.WarnContext(ctx, "indicators: failed to parse llm response", "error", err)
		return fallbackIndicators()
	}

	parsed, ok := raw.toIndicators()
	if !ok {
		slog.WarnContext(ctx, "indicators: incomplete indicator structure")
		return fallbackIndicators()
	}

	g.cache.Set(key, parsed)
	return parsed
}

func cacheKey(dnaJSON []byte) string {
	h := sha256.New()
	h.Write([]byte("indicators"))
	h.Write(dnaJSON)
	return hex.EncodeToString(h.Sum(nil))
}
