// Package strategy implements the Strategy Generator (C8): it produces
// the seller-facing StrategyResponse from the full pipeline context.
package strategy

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
)

const ragLimit = 3

type Generator struct {
	gateway   llmgw.Gateway
	retriever knowledge.Retriever // nil disables RAG
}

func New(gateway llmgw.Gateway, retriever knowledge.Retriever) *Generator {
	return &Generator{gateway: gateway, retriever: retriever}
}

// ClientProfile carries the identifiers the prompt needs beyond history.
type ClientProfile struct {
	Alias     string
	Archetype string
}

// Generate implements spec.md §4.C8's full algorithm.
func (g *Generator) Generate(
	ctx context.Context,
	userInput string,
	client ClientProfile,
	historyLines []string,
	psychologyProfile *model.CumulativePsychology,
	holisticProfile *model.HolisticProfile,
	customerArchetype *model.CustomerArchetype,
) model.StrategyResponse {
	knowledgeContext := g.ragContext(ctx, userInput, client.Archetype)

	systemPrompt := buildSystemPrompt(knowledgeContext, holisticProfile, customerArchetype, psychologyProfile)
	userPrompt := buildUserPrompt(userInput, recentLines(historyLines, 5), client.Alias)

	result, err := g.gateway.Generate(ctx, systemPrompt, userPrompt, "strategy", true)
	if err != nil {
		slog.WarnContext(ctx, "strategy: llm call failed, returning branded fallback", "error", err)
		return fallbackResponse()
	}

	jsonBody, ok := extractJSON(result.Content)
	if !ok {
		slog.WarnContext(ctx, "strategy: no JSON envelope in llm response")
		return fallbackResponse()
	}

	var raw rawStrategy
	if err := json.Unmarshal([]byte(jsonBody), &raw); err != nil {
		slog.WarnContext(ctx, "strategy: failed to parse llm response", "error", err)
		return fallbackResponse()
	}

	response, ok := raw.toStrategy()
	if !ok {
		slog.WarnContext(ctx, "strategy: response missing quick_response text")
		return fallbackResponse()
	}

	response.ModelUsed = result.Model
	response.ContextType = determineContextType(holisticProfile, customerArchetype)
	response.ConfidenceLevel = confidenceLevel(response)
	if customerArchetype != nil {
		response.ClientArchetype = customerArchetype.Name
	}

	return response
}

func (g *Generator) ragContext(ctx context.Context, userInput, archetype string) string {
	if g.retriever == nil {
		return ""
	}

	nuggets, err := g.retriever.Search(ctx, userInput, archetype, "", ragLimit)
	if err != nil {
		slog.WarnContext(ctx, "strategy: rag search failed, continuing without knowledge context", "error", err)
		return ""
	}

	return formatKnowledgeContext(nuggets)
}

func recentLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// ContainsCompetitorPraise is a testable guard (spec.md §8): reports
// whether text affirmatively praises a named competitor product rather
// than just mentioning it for comparison.
func ContainsCompetitorPraise(text string) bool {
	lower := strings.ToLower(text)
	praiseVerbs := []string{"better", "superior", "recommend", "try", "consider buying"}
	competitors := []string{"bmw ix", "audi e-tron", "mercedes eqs", "porsche taycan"}

	for _, c := range competitors {
		if !strings.Contains(lower, c) {
			continue
		}
		for _, v := range praiseVerbs {
			if strings.Contains(lower, v) {
				return true
			}
		}
	}
	return false
}
