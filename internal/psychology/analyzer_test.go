package psychology

import (
	"context"
	"testing"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = id.Init(1)
}

func TestAnalyzeZeroNullPolicyOnPartialResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"big_five": {"openness": {"score": 8, "rationale": "asked about new tech", "strategy": "lead with innovation"}},
		"psychology_confidence": 75,
		"customer_archetype": {"archetype_key": "pragmatic_analyst"}
	}`}}

	output := New(fake).Analyze(context.Background(), "seller: customer asked about range", nil, 0)

	assert.Equal(t, 8, output.CumulativePsychology.BigFive.Openness.Score)
	assert.Equal(t, 5, output.CumulativePsychology.BigFive.Conscientiousness.Score)
	assert.Contains(t, output.CumulativePsychology.BigFive.Conscientiousness.Rationale, "imputed")
	assert.NotEmpty(t, output.CumulativePsychology.DISC.Dominance.Rationale)
	assert.NotEmpty(t, output.CumulativePsychology.SchwartzValues)
	assert.Equal(t, 75, output.PsychologyConfidence)
	require.NotNil(t, output.CustomerArchetype)
	assert.Equal(t, model.ArchetypeKey("pragmatic_analyst"), output.CustomerArchetype.Key)
}

func TestAnalyzeFallsBackOnLLMOutage(t *testing.T) {
	fake := &llmgw.Fake{Err: llmgw.ErrLLMUnavailable}

	output := New(fake).Analyze(context.Background(), "seller: anything", nil, 0)

	assert.True(t, output.IsFallback)
	assert.Equal(t, 10, output.PsychologyConfidence)
	assert.Equal(t, 5, output.CumulativePsychology.BigFive.Openness.Score)
	assert.Equal(t, 5, output.CumulativePsychology.DISC.Dominance.Score)
}

func TestAnalyzeFallsBackOnUnparsableResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{"not json at all"}}

	output := New(fake).Analyze(context.Background(), "seller: anything", nil, 0)

	assert.True(t, output.IsFallback)
}

func TestSuggestedQuestionsOmittedAboveConfidenceThreshold(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"psychology_confidence": 85,
		"suggested_questions": [{"question": "Czy klient wspomniał o budżecie?", "psychological_target": "conscientiousness"}]
	}`}}

	output := New(fake).Analyze(context.Background(), "seller: ...", nil, 0)
	assert.Empty(t, output.SuggestedQuestions)
}

func TestSuggestedQuestionsKeptBelowConfidenceThreshold(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"psychology_confidence": 40,
		"suggested_questions": [{"question": "Czy klient wspomniał o budżecie?", "psychological_target": "conscientiousness"}]
	}`}}

	output := New(fake).Analyze(context.Background(), "seller: ...", nil, 0)
	require.Len(t, output.SuggestedQuestions, 1)
	assert.Equal(t, "confirms", output.SuggestedQuestions[0].OptionA)
	assert.Equal(t, "denies", output.SuggestedQuestions[0].OptionB)
}

func TestABOptionsLexicalRules(t *testing.T) {
	cases := []struct {
		question string
		a, b     string
	}{
		{"Czy klient ma dzieci?", "confirms", "denies"},
		{"Jak często odwiedza salon?", "confirms", "denies"},
		{"Jakie ma priorytety?", "confirms", "denies"},
		{"Jak szybko chce podjąć decyzję?", "quickly, directly", "slowly, thoroughly"},
		{"Co go interesuje najbardziej?", "general benefits", "technical details"},
		{"Where does the customer live?", "confirms", "denies"},
	}
	for _, c := range cases {
		a, b := abOptionsFor(c.question)
		assert.Equal(t, c.a, a, c.question)
		assert.Equal(t, c.b, b, c.question)
	}
}

func TestExtractJSONIgnoresBracesInStrings(t *testing.T) {
	text := `Sure, here you go: {"note": "use {curly} inside text", "psychology_confidence": 55}`
	body, ok := extractJSON(text)
	require.True(t, ok)
	assert.Contains(t, body, `"psychology_confidence": 55`)
}
