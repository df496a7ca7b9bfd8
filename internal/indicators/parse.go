package indicators

import (
	"copilot.dev/backend/internal/llmparse"
	"copilot.dev/backend/internal/model"
)

type rawScalarIndicator struct {
	Value      *int     `json:"value"`
	Rationale  string   `json:"rationale"`
	Strategy   string   `json:"strategy"`
	Confidence *int     `json:"confidence"`
	RiskFactors []string `json:"risk_factors"`
}

type rawJourneyStage struct {
	Value              string `json:"value"`
	ProgressPercentage *int   `json:"progress_percentage"`
	NextStage          string `json:"next_stage"`
	Rationale          string `json:"rationale"`
	Strategy           string `json:"strategy"`
	Confidence         *int   `json:"confidence"`
}

type rawSalesPotential struct {
	Value              *float64 `json:"value"`
	Probability        *int     `json:"probability"`
	EstimatedTimeframe string   `json:"estimated_timeframe"`
	Rationale          string   `json:"rationale"`
	Strategy           string   `json:"strategy"`
	Confidence         *int     `json:"confidence"`
}

type rawIndicators struct {
	PurchaseTemperature  *rawScalarIndicator `json:"purchase_temperature"`
	CustomerJourneyStage *rawJourneyStage    `json:"customer_journey_stage"`
	ChurnRisk            *rawScalarIndicator `json:"churn_risk"`
	SalesPotential       *rawSalesPotential  `json:"sales_potential"`
}

// toIndicators validates that all four indicator blocks are present (spec.md
// §4.C7's required_indicators check) and returns (zero, false) otherwise.
func (r rawIndicators) toIndicators() (model.SalesIndicators, bool) {
	if r.PurchaseTemperature == nil || r.CustomerJourneyStage == nil || r.ChurnRisk == nil || r.SalesPotential == nil {
		return model.SalesIndicators{}, false
	}
	if r.PurchaseTemperature.Value == nil || r.ChurnRisk.Value == nil || r.SalesPotential.Value == nil {
		return model.SalesIndicators{}, false
	}

	temp := clamp(*r.PurchaseTemperature.Value, 0, 100)
	churn := clamp(*r.ChurnRisk.Value, 0, 100)

	return model.SalesIndicators{
		PurchaseTemperature: model.PurchaseTemperature{
			Value:      temp,
			Level:      model.TemperatureLevelFor(temp),
			Rationale:  r.PurchaseTemperature.Rationale,
			Strategy:   r.PurchaseTemperature.Strategy,
			Confidence: confidenceOf(r.PurchaseTemperature.Confidence),
		},
		CustomerJourneyStage: model.CustomerJourneyStage{
			Value:              model.JourneyStage(orDefault(r.CustomerJourneyStage.Value, "consideration")),
			ProgressPercentage: intOrDefault(r.CustomerJourneyStage.ProgressPercentage, 40),
			NextStage:          model.JourneyStage(orDefault(r.CustomerJourneyStage.NextStage, "evaluation")),
			Rationale:          r.CustomerJourneyStage.Rationale,
			Strategy:           r.CustomerJourneyStage.Strategy,
			Confidence:         confidenceOf(r.CustomerJourneyStage.Confidence),
		},
		ChurnRisk: model.ChurnRisk{
			Value:       churn,
			Level:       model.ChurnLevelFor(churn),
			RiskFactors: r.ChurnRisk.RiskFactors,
			Rationale:   r.ChurnRisk.Rationale,
			Strategy:    r.ChurnRisk.Strategy,
			Confidence:  confidenceOf(r.ChurnRisk.Confidence),
		},
		SalesPotential: model.SalesPotential{
			Value:              *r.SalesPotential.Value,
			Probability:        intOrDefault(r.SalesPotential.Probability, 40),
			EstimatedTimeframe: orDefault(r.SalesPotential.EstimatedTimeframe, "2-4 weeks"),
			Rationale:          r.SalesPotential.Rationale,
			Strategy:           r.SalesPotential.Strategy,
			Confidence:         confidenceOf(r.SalesPotential.Confidence),
		},
	}, true
}

func confidenceOf(c *int) int {
	if c == nil {
		return 50
	}
	return clamp(*c, 0, 100)
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func extractJSON(text string) (string, bool) {
	return llmparse.ExtractJSON(text)
}
