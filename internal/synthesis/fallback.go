package synthesis

import (
	"time"

	"copilot.dev/backend/internal/model"
)

func fallbackProfile() model.HolisticProfile {
	return model.HolisticProfile{
		HolisticSummary: "Customer is in the early information-gathering phase. Requires a systematic presentation of benefits and trust-building with the brand.",
		MainDrive:       "Need for safety and a rational purchase decision",
		CommunicationStyle: model.CommunicationStyle{
			RecommendedTone: "Matter-of-fact and patient",
			KeywordsToUse:   []string{"reliability", "safety", "long-term value"},
			KeywordsToAvoid: []string{"pressure", "limited time", "act now"},
		},
		KeyLevers: []string{
			"Safety and reliability",
			"Long-term total cost of ownership savings",
			"Innovative technology and brand prestige",
			"Charging network and convenience",
		},
		RedFlags: []string{
			"Time pressure in the sales process",
			"Unclear financial benefits",
			"Lack of concrete product data",
			"Ignoring customer concerns",
		},
		MissingDataGaps:  "Needs more information on preferences, budget, and the decision process",
		Confidence:       30,
		IsFallback:       true,
		SynthesisTs:      time.Now(),
		SourceConfidence: 0,
	}
}
