package psychology

import "copilot.dev/backend/internal/model"

// fallbackOutput returns the complete Zero-Null Policy fallback: a fully
// populated neutral profile, never the minimal-skeleton variant (spec.md
// §9's Open Question resolves in favor of the complete variant).
func fallbackOutput(previous model.CumulativePsychology) model.AnalyzerOutput {
	neutral := func(name string) model.TraitScore {
		return model.TraitScore{Score: 5, Rationale: imputedRationale, Strategy: defaultStrategyFor(name)}
	}

	profile := model.CumulativePsychology{
		BigFive: model.BigFive{
			Openness:          neutral("openness"),
			Conscientiousness: neutral("conscientiousness"),
			Extraversion:      neutral("extraversion"),
			Agreeableness:     neutral("agreeableness"),
			Neuroticism:       neutral("neuroticism"),
		},
		DISC: model.DISC{
			Dominance:  neutral("dominance"),
			Influence:  neutral("influence"),
			Steadiness: neutral("steadiness"),
			Compliance: neutral("compliance"),
		},
		SchwartzValues: []model.SchwartzValue{
			{Name: "security", Strength: 5, Rationale: imputedRationale, Strategy: "Lean on reliability and proven track record.", Present: true},
		},
		Observations:        previous.Observations,
		ObservationsSummary: previous.ObservationsSummary,
		RepairedFields:      []string{"all"},
	}

	return model.AnalyzerOutput{
		CumulativePsychology: profile,
		PsychologyConfidence: 10,
		SuggestedQuestions:   nil,
		IsFallback:           true,
	}
}
