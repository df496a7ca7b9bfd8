package synthesis

import (
	"context"
	"testing"

	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() (model.CumulativePsychology, int) {
	trait := model.TraitScore{Score: 7, Rationale: "observed", Strategy: "lean in"}
	return model.CumulativePsychology{
		BigFive: model.BigFive{Openness: trait, Conscientiousness: trait, Extraversion: trait, Agreeableness: trait, Neuroticism: trait},
		DISC:    model.DISC{Dominance: trait, Influence: trait, Steadiness: trait, Compliance: trait},
	}, 80
}

func TestSynthesizeSkipsLLMBelowPreconditions(t *testing.T) {
	fake := &llmgw.Fake{}
	profile := model.CumulativePsychology{}

	result := New(fake).Synthesize(context.Background(), profile, 10, nil)

	assert.True(t, result.IsFallback)
	assert.Empty(t, fake.Calls)
}

func TestSynthesizeParsesWellFormedResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"holistic_summary": "Analytical, cautious, data-driven customer.",
		"main_drive": "Need for control and competence",
		"communication_style": {"recommended_tone": "expert", "keywords_to_use": ["data"], "keywords_to_avoid": ["hype"]},
		"key_levers": ["TCO", "expert reviews"],
		"red_flags": ["time pressure"],
		"confidence": 82
	}`}}

	profile, confidence := completeProfile()
	result := New(fake).Synthesize(context.Background(), profile, confidence, nil)

	require.False(t, result.IsFallback)
	assert.Equal(t, "Need for control and competence", result.MainDrive)
	assert.Equal(t, 82, result.Confidence)
	assert.Equal(t, confidence, result.SourceConfidence)
}

func TestSynthesizeFallsBackOnIncompleteStructure(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{"holistic_summary": "only one field"}`}}

	profile, confidence := completeProfile()
	result := New(fake).Synthesize(context.Background(), profile, confidence, nil)

	assert.True(t, result.IsFallback)
}

func TestSynthesizeCachesByProfileFingerprint(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"holistic_summary": "s", "main_drive": "m",
		"key_levers": ["a"], "red_flags": ["b"], "confidence": 60
	}`}}

	profile, confidence := completeProfile()
	synth := New(fake)

	first := synth.Synthesize(context.Background(), profile, confidence, nil)
	second := synth.Synthesize(context.Background(), profile, confidence, nil)

	assert.Equal(t, 1, len(fake.Calls))
	assert.Equal(t, first.MainDrive, second.MainDrive)
}
