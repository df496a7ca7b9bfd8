package pipeline

import (
	"context"
	"testing"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/internal/archetype"
	"copilot.dev/backend/internal/indicators"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/pipeline/sessionlock"
	"copilot.dev/backend/internal/psychology"
	"copilot.dev/backend/internal/store/memstore"
	"copilot.dev/backend/internal/strategy"
	"copilot.dev/backend/internal/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = id.Init(1)
}

const wellFormedPsychology = `{
	"big_five": {
		"openness": {"score": 7, "rationale": "r", "strategy": "s"},
		"conscientiousness": {"score": 6, "rationale": "r", "strategy": "s"},
		"extraversion": {"score": 5, "rationale": "r", "strategy": "s"},
		"agreeableness": {"score": 6, "rationale": "r", "strategy": "s"},
		"neuroticism": {"score": 4, "rationale": "r", "strategy": "s"}
	},
	"disc": {
		"dominance": {"score": 5, "rationale": "r", "strategy": "s"},
		"influence": {"score": 5, "rationale": "r", "strategy": "s"},
		"steadiness": {"score": 6, "rationale": "r", "strategy": "s"},
		"compliance": {"score": 7, "rationale": "r", "strategy": "s"}
	},
	"schwartz_values": [],
	"observations_summary": "analytical buyer",
	"psychology_confidence": 80,
	"suggested_questions": []
}`

const wellFormedDNA = `{
	"holistic_summary": "Detail-oriented buyer weighing total cost of ownership.",
	"main_drive": "financial certainty",
	"communication_style": {"recommended_tone": "data-driven", "keywords_to_use": ["TCO"], "keywords_to_avoid": ["hype"]},
	"key_levers": ["charging network", "warranty"],
	"red_flags": ["price sensitivity"],
	"missing_data_gaps": "",
	"confidence": 75
}`

const wellFormedIndicators = `{
	"purchase_temperature": {"value": 70, "rationale": "r", "strategy": "s", "confidence": 80, "risk_factors": []},
	"customer_journey_stage": {"value": "evaluation", "next_stage": "decision", "progress_percentage": 60, "confidence": 75, "rationale": "r", "strategy": "s"},
	"churn_risk": {"value": 30, "rationale": "r", "strategy": "s", "confidence": 70, "risk_factors": []},
	"sales_potential": {"value": 90000, "probability": 65, "estimated_timeframe": "2-4 weeks", "rationale": "r", "strategy": "s", "confidence": 70}
}`

const wellFormedStrategy = `{
	"quick_response": {"id": "qr_1", "text": "Let's look at total cost of ownership together.", "tone": "analytical", "key_points": ["TCO"]},
	"suggested_questions": [{"id": "q_1", "text": "What's your current monthly fuel spend?"}, {"id": "q_2", "text": "How many miles do you drive a year?"}],
	"strategic_recommendation": "Lead with cost data, not emotion.",
	"next_best_action": "Send a TCO comparison sheet.",
	"objection_handling": {"potential_objections": ["price"], "responses": ["a", "b", "c"]},
	"sentiment_score": 7,
	"potential_score": 8,
	"urgency_level": "medium"
}`

func newHarness(t *testing.T, psychResp, dnaResp, indicatorsResp, strategyResp string) (*Orchestrator, *memstore.Store, int64) {
	t.Helper()

	st := memstore.New()
	ctx := context.Background()

	client, err := st.CreateClient(ctx, model.Client{Alias: "Jan Kowalski"})
	require.NoError(t, err)

	session, err := st.CreateSession(ctx, &client.ID, model.SessionActive)
	require.NoError(t, err)

	psychFake := &llmgw.Fake{Responses: []string{psychResp}}
	synthFake := &llmgw.Fake{Responses: []string{dnaResp}}
	indicatorsFake := &llmgw.Fake{Responses: []string{indicatorsResp}}
	strategyFake := &llmgw.Fake{Responses: []string{strategyResp}}

	orch := New(
		st,
		sessionlock.NewInProcess(),
		psychology.New(psychFake),
		archetype.New("automotive"),
		synthesis.New(synthFake),
		indicators.New(indicatorsFake),
		strategy.New(strategyFake, nil),
	)

	return orch, st, session.ID
}

func TestProcessObservationHappyPathAssemblesFullTurn(t *testing.T) {
	orch, _, sessionID := newHarness(t, wellFormedPsychology, wellFormedDNA, wellFormedIndicators, wellFormedStrategy)

	interaction, err := orch.ProcessObservation(context.Background(), sessionID, "I mostly care about running costs.", nil)
	require.NoError(t, err)

	assert.False(t, interaction.AIResponse.IsFallback)
	assert.Equal(t, "Let's look at total cost of ownership together.", interaction.AIResponse.QuickResponse.Text)
	require.NotNil(t, interaction.AIResponse.SalesIndicators)
	assert.Equal(t, 70, interaction.AIResponse.SalesIndicators.PurchaseTemperature.Value)
	assert.Equal(t, model.ContextUltraBrainComplete, interaction.AIResponse.ContextType)
}

func TestProcessObservationPersistsArchetypeAndDNA(t *testing.T) {
	orch, st, sessionID := newHarness(t, wellFormedPsychology, wellFormedDNA, wellFormedIndicators, wellFormedStrategy)

	_, err := orch.ProcessObservation(context.Background(), sessionID, "I mostly care about running costs.", nil)
	require.NoError(t, err)

	sctx, err := st.GetSessionContext(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, sctx.Session.CustomerArchetype)
	require.NotNil(t, sctx.Session.HolisticPsychometricProfile)
	assert.Equal(t, "Detail-oriented buyer weighing total cost of ownership.", sctx.Session.HolisticPsychometricProfile.HolisticSummary)
}

func TestProcessObservationReturnsSessionNotFound(t *testing.T) {
	orch, _, _ := newHarness(t, wellFormedPsychology, wellFormedDNA, wellFormedIndicators, wellFormedStrategy)

	_, err := orch.ProcessObservation(context.Background(), 999999, "hi", nil)

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.False(t, turnErr.Retryable)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProcessObservationFallsBackWhenSessionHasNoClient(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	session, err := st.CreateSession(ctx, nil, model.SessionActive)
	require.NoError(t, err)

	strategyFake := &llmgw.Fake{Responses: []string{wellFormedStrategy}}
	orch := New(
		st,
		sessionlock.NewInProcess(),
		psychology.New(&llmgw.Fake{}),
		archetype.New("automotive"),
		synthesis.New(&llmgw.Fake{}),
		indicators.New(&llmgw.Fake{}),
		strategy.New(strategyFake, nil),
	)

	interaction, err := orch.ProcessObservation(ctx, session.ID, "hello", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, interaction.AIResponse.QuickResponse.Text)
	assert.Len(t, strategyFake.Calls, 1)
}

func TestProcessObservationSurvivesLLMOutageWithFallbackStrategy(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	client, err := st.CreateClient(ctx, model.Client{Alias: "Outage Case"})
	require.NoError(t, err)
	session, err := st.CreateSession(ctx, &client.ID, model.SessionActive)
	require.NoError(t, err)

	unavailable := &llmgw.Fake{Err: llmgw.ErrLLMUnavailable}
	orch := New(
		st,
		sessionlock.NewInProcess(),
		psychology.New(unavailable),
		archetype.New("automotive"),
		synthesis.New(unavailable),
		indicators.New(unavailable),
		strategy.New(unavailable, nil),
	)

	interaction, err := orch.ProcessObservation(ctx, session.ID, "anything", nil)
	require.NoError(t, err)
	assert.True(t, interaction.AIResponse.IsFallback)
	assert.NotEmpty(t, interaction.AIResponse.QuickResponse.Text)
	assert.GreaterOrEqual(t, len(interaction.AIResponse.SuggestedActions), 3)
}

func TestAnswerClarifyingQuestionRerunsPipeline(t *testing.T) {
	orch, st, sessionID := newHarness(t, wellFormedPsychology, wellFormedDNA, wellFormedIndicators, wellFormedStrategy)

	ctx := context.Background()
	sctx, err := st.GetSessionContext(ctx, sessionID)
	require.NoError(t, err)
	sctx.Session.ActiveClarifyingQuestions = []model.ClarifyingQuestion{{ID: "q_1", Question: "Lease or buy?", OptionA: "Lease", OptionB: "Buy"}}
	st.SeedSession(sctx.Session)

	interaction, err := orch.AnswerClarifyingQuestion(ctx, sessionID, "q_1", "Buy")
	require.NoError(t, err)
	assert.Equal(t, "Buy", interaction.UserInput)
}
