package indicators

import "copilot.dev/backend/internal/model"

// fallbackIndicators returns the neutral block spec.md §4.C7 specifies for
// parse failure or a fallback DNA input: all four confidence=10, neutral
// values (temperature=50 warm, stage=consideration 40%, risk=50 medium,
// mid-band potential with probability=40).
func fallbackIndicators() model.SalesIndicators {
	return model.SalesIndicators{
		PurchaseTemperature: model.PurchaseTemperature{
			Value:      50,
			Level:      model.TemperatureWarm,
			Rationale:  "Customer is in the information-gathering phase; moderate engagement observed.",
			Strategy:   "Continue educating on core benefits.",
			Confidence: 10,
		},
		CustomerJourneyStage: model.CustomerJourneyStage{
			Value:              model.StageConsideration,
			ProgressPercentage: 40,
			NextStage:          model.StageEvaluation,
			Rationale:          "Considering the vehicle as an option among others.",
			Strategy:           "Present concrete models and comparisons.",
			Confidence:         10,
		},
		ChurnRisk: model.ChurnRisk{
			Value:       50,
			Level:       model.ChurnMedium,
			RiskFactors: []string{"Long decision process", "Comparing against competitors"},
			Rationale:   "Standard risk for a customer still weighing options.",
			Strategy:    "Build the relationship with regular, low-pressure contact.",
			Confidence:  10,
		},
		SalesPotential: model.SalesPotential{
			Value:              175000,
			Probability:        40,
			EstimatedTimeframe: "2-4 weeks",
			Rationale:          "Mid-band potential for an undifferentiated customer profile.",
			Strategy:           "Present long-term value and total cost of ownership.",
			Confidence:         10,
		},
		IsFallback: true,
	}
}
