package strategy

import (
	"context"
	"testing"

	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParsesWellFormedResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"quick_response": {"id": "qr_1", "text": "Great question — let me explain.", "tone": "enthusiastic", "key_points": ["range", "safety"]},
		"main_analysis": "Customer is evaluating range anxiety.",
		"suggested_actions": [{"action": "Show range calculator", "reasoning": "addresses the stated concern"}],
		"suggested_questions": [{"id": "q_1", "text": "What's your typical daily commute?"}, {"id": "q_2", "text": "Do you have home charging available?"}],
		"strategic_recommendation": "Lead with charging network coverage.",
		"next_best_action": "Schedule a test drive.",
		"objection_handling": {"potential_objections": ["range"], "responses": ["a", "b", "c"]},
		"buy_signals": ["asked about financing"],
		"risk_signals": [],
		"sentiment_score": 8,
		"potential_score": 7,
		"urgency_level": "medium",
		"likely_archetypes": [{"name": "pragmatic_analyst", "confidence": 70, "description": "data-driven"}]
	}`}}

	gen := New(fake, nil)
	resp := gen.Generate(context.Background(), "I'm worried about range", ClientProfile{Alias: "Jan"}, nil, nil, nil, nil)

	require.False(t, resp.IsFallback)
	assert.Equal(t, "qr_1", resp.QuickResponse.ID)
	assert.Len(t, resp.SuggestedQuestions, 2)
	assert.Equal(t, model.ContextBasic, resp.ContextType)
	assert.Equal(t, 100, resp.ConfidenceLevel)
}

func TestGenerateFallsBackOnLLMError(t *testing.T) {
	fake := &llmgw.Fake{Err: llmgw.ErrLLMUnavailable}
	resp := New(fake, nil).Generate(context.Background(), "hi", ClientProfile{}, nil, nil, nil, nil)

	assert.True(t, resp.IsFallback)
	assert.NotEmpty(t, resp.QuickResponse.Text)
}

func TestGenerateFallsBackOnMissingQuickResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{"main_analysis": "no quick response here"}`}}
	resp := New(fake, nil).Generate(context.Background(), "hi", ClientProfile{}, nil, nil, nil, nil)

	assert.True(t, resp.IsFallback)
}

func TestGenerateContextTypeReflectsAvailableInputs(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{"quick_response": {"text": "ok"}}`}}
	dna := &model.HolisticProfile{HolisticSummary: "s"}
	arch := &model.CustomerArchetype{Name: "Pragmatic Analyst"}

	resp := New(fake, nil).Generate(context.Background(), "hi", ClientProfile{}, nil, nil, dna, arch)
	assert.Equal(t, model.ContextUltraBrainComplete, resp.ContextType)
	assert.Equal(t, "Pragmatic Analyst", resp.ClientArchetype)
}

func TestContainsCompetitorPraiseDetectsAffirmation(t *testing.T) {
	assert.True(t, ContainsCompetitorPraise("The BMW iX is actually superior in this case"))
	assert.False(t, ContainsCompetitorPraise("Unlike the BMW iX, this model includes free Supercharging"))
}
