package indicators

import (
	"context"
	"testing"

	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveReturnsFallbackForFallbackDNA(t *testing.T) {
	fake := &llmgw.Fake{}
	result := New(fake).Derive(context.Background(), model.HolisticProfile{IsFallback: true}, SessionContext{})

	assert.True(t, result.IsFallback)
	assert.Empty(t, fake.Calls)
}

func TestDeriveParsesWellFormedResponse(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"purchase_temperature": {"value": 80, "rationale": "asking about financing", "strategy": "move to options", "confidence": 75},
		"customer_journey_stage": {"value": "evaluation", "progress_percentage": 65, "next_stage": "decision", "rationale": "r", "strategy": "s", "confidence": 70},
		"churn_risk": {"value": 20, "risk_factors": ["long cycle"], "rationale": "r", "strategy": "s", "confidence": 65},
		"sales_potential": {"value": 320000, "probability": 70, "estimated_timeframe": "2-4 weeks", "rationale": "r", "strategy": "s", "confidence": 60}
	}`}}

	result := New(fake).Derive(context.Background(), model.HolisticProfile{HolisticSummary: "x"}, SessionContext{ArchetypeKey: "pragmatic_analyst"})

	require.False(t, result.IsFallback)
	assert.Equal(t, 80, result.PurchaseTemperature.Value)
	assert.Equal(t, model.TemperatureHot, result.PurchaseTemperature.Level)
	assert.Equal(t, model.StageEvaluation, result.CustomerJourneyStage.Value)
	assert.Equal(t, model.ChurnLow, result.ChurnRisk.Level)
	assert.Equal(t, 320000.0, result.SalesPotential.Value)
}

func TestDeriveFallsBackOnMissingIndicatorBlock(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{"purchase_temperature": {"value": 80}}`}}

	result := New(fake).Derive(context.Background(), model.HolisticProfile{HolisticSummary: "x"}, SessionContext{})
	assert.True(t, result.IsFallback)
}

func TestDeriveCachesByDNAFingerprint(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"purchase_temperature": {"value": 50, "confidence": 50},
		"customer_journey_stage": {"value": "interest", "confidence": 50},
		"churn_risk": {"value": 50, "confidence": 50},
		"sales_potential": {"value": 100000, "confidence": 50}
	}`}}

	gen := New(fake)
	dna := model.HolisticProfile{HolisticSummary: "x"}

	gen.Derive(context.Background(), dna, SessionContext{})
	gen.Derive(context.Background(), dna, SessionContext{})

	assert.Equal(t, 1, len(fake.Calls))
}
