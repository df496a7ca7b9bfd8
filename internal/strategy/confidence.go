package strategy

import "copilot.dev/backend/internal/model"

// confidenceLevel implements spec.md §4.C8 step 8: five weighted
// completeness factors averaged, scaled to percent, floor 20.
func confidenceLevel(r model.StrategyResponse) int {
	factors := 0
	total := 5

	if r.QuickResponse.Text != "" {
		factors++
	}
	if r.StrategicRecommendation != "" {
		factors++
	}
	if len(r.SuggestedQuestions) >= 2 {
		factors++
	}
	if r.NextBestAction != "" {
		factors++
	}
	if len(r.ObjectionHandling.Responses) >= 3 {
		factors++
	}

	level := factors * 100 / total
	if level < 20 {
		return 20
	}
	return level
}

func determineContextType(dna *model.HolisticProfile, arch *model.CustomerArchetype) model.ContextType {
	switch {
	case dna != nil && arch != nil:
		return model.ContextUltraBrainComplete
	case dna != nil:
		return model.ContextHolisticProfile
	case arch != nil:
		return model.ContextArchetypeOnly
	default:
		return model.ContextBasic
	}
}
