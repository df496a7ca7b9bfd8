// Package psychology implements the Psychology Analyzer (C4): it
// produces and updates the cumulative psychometric profile from the
// full session history.
package psychology

import (
	"context"
	"encoding/json"
	"log/slog"

	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
)

type Analyzer struct {
	gateway llmgw.Gateway
}

func New(gateway llmgw.Gateway) *Analyzer {
	return &Analyzer{gateway: gateway}
}

// Analyze implements spec.md §4.C4. It never returns an error: any
// internal failure (LLM outage, parse failure) is absorbed into a fully
// populated fallback profile, per the "fails with nothing observable"
// contract.
func (a *Analyzer) Analyze(ctx context.Context, conversationHistory string, currentProfile *model.CumulativePsychology, currentConfidence int) model.AnalyzerOutput {
	previous := model.CumulativePsychology{}
	if currentProfile != nil {
		previous = *currentProfile
	}

	profileJSON, err := json.Marshal(previous)
	if err != nil {
		slog.ErrorContext(ctx, "psychology: marshal current profile failed", "error", err)
		return fallbackOutput(previous)
	}

	result, err := a.gateway.Generate(ctx, systemPrompt, userPrompt(conversationHistory, profileJSON, currentConfidence), "psychology", true)
	if err != nil {
		slog.WarnContext(ctx, "psychology: llm call failed, returning fallback profile", "error", err)
		return fallbackOutput(previous)
	}

	jsonBody, ok := extractJSON(result.Content)
	if !ok {
		slog.WarnContext(ctx, "psychology: no JSON envelope in llm response")
		return fallbackOutput(previous)
	}

	var raw rawOutput
	if err := json.Unmarshal([]byte(jsonBody), &raw); err != nil {
		slog.WarnContext(ctx, "psychology: failed to parse llm response", "error", err)
		return fallbackOutput(previous)
	}

	profile, confidence, archetypeKey, repairedFields := repair(raw, previous)
	if len(repairedFields) > 0 {
		slog.InfoContext(ctx, "psychology: zero-null policy repaired fields", "fields", repairedFields)
	}

	questions := make([]model.ClarifyingQuestion, 0, len(raw.SuggestedQuestions))
	if confidence < 80 {
		for _, q := range raw.SuggestedQuestions {
			questions = append(questions, toClarifyingQuestion(q))
		}
	}

	output := model.AnalyzerOutput{
		CumulativePsychology: profile,
		PsychologyConfidence: confidence,
		SuggestedQuestions:   questions,
	}

	if confidence >= 70 && archetypeKey != nil {
		output.CustomerArchetype = &model.CustomerArchetype{Key: *archetypeKey}
	}

	return output
}
