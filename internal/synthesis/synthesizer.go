// Package synthesis implements the Holistic Synthesizer (C6): it turns a
// raw psychometric profile into the "Customer DNA" consumed by the
// indicator generator and strategy generator downstream.
package synthesis

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

type Synthesizer struct {
	gateway llmgw.Gateway
	cache   *ttlcache.Cache[model.HolisticProfile]
}

func New(gateway llmgw.Gateway) *Synthesizer {
	return &Synthesizer{
		gateway: gateway,
		cache:   ttlcache.New[model.HolisticProfile](cacheSize, cacheTTL),
	}
}

// Synthesize implements spec.md §4.C6. extraContext may be nil.
func (s *Synthesizer) Synthesize(ctx context.Context, profile model.CumulativePsychology, confidence int, extraContext map[string]any) model.HolisticProfile {
	if !meetsPreconditions(profile, confidence) {
		return fallbackProfile()
	}

	rawJSON, err := json.Marshal(profile)
	if err != nil {
		slog.ErrorContext(ctx, "synthesis: marshal profile failed", "error", err)
		return fallbackProfile()
	}

	key := cacheKey(rawJSON)
	if cached, ok := s.cache.Get(key); ok {
		cached.SynthesisTs = time.Now()
		return cached
	}

	extraJSON, err := json.Marshal(extraContext)
	if err != nil {
		extraJSON = []byte("{}")
	}

	result, err := s.gateway.Generate(ctx, systemPrompt, userPrompt(rawJSON, extraJSON, confidence), "synthesis", true)
	if err != nil {
		slog.WarnContext(ctx, "synthesis: llm call failed, returning fallback dna", "error", err)
		return fallbackProfile()
	}

	jsonBody, ok := extractJSON(result.Content)
	if !ok {
		slog.WarnContext(ctx, "synthesis: no JSON envelope in llm response")
		return fallbackProfile()
	}

	var raw rawDNA
	if err := json.Unmarshal([]byte(jsonBody), &raw); err != nil {
		slog.WarnContext(ctx, "synthesis: failed to parse llm response", "error", err)
		return fallbackProfile()
	}

	dna, ok := raw.toProfile()
	if !ok {
		slog.WarnContext(ctx, "synthesis: incomplete dna structure")
		return fallbackProfile()
	}

	dna.SynthesisTs = time.Now()
	dna.SourceConfidence = confidence

	s.cache.Set(key, dna)
	return dna
}

// meetsPreconditions requires all five Big Five traits present with a
// positive score and overall psychology confidence of at least 20.
func meetsPreconditions(profile model.CumulativePsychology, confidence int) bool {
	if confidence < 20 {
		return false
	}
	traits := []model.TraitScore{
		profile.BigFive.Openness,
		profile.BigFive.Conscientiousness,
		profile.BigFive.Extraversion,
		profile.BigFive.Agreeableness,
		profile.BigFive.Neuroticism,
	}
	for _, t := range traits {
		if t.Score <= 0 {
			return false
		}
	}
	return true
}

func cacheKey(rawProfileJSON []byte) string {
	h := sha256.New()
	h.Write([]byte("synthesis"))
	h.Write(rawProfileJSON)
	return hex.EncodeToString(h.Sum(nil))
}
