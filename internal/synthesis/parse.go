package synthesis

import (
	"copilot.dev/backend/internal/llmparse"
	"copilot.dev/backend/internal/model"
)

type rawCommunicationStyle struct {
	RecommendedTone  string   `json:"recommended_tone"`
	KeywordsToUse    []string `json:"keywords_to_use"`
	KeywordsToAvoid  []string `json:"keywords_to_avoid"`
}

type rawDNA struct {
	HolisticSummary    string                 `json:"holistic_summary"`
	MainDrive          string                 `json:"main_drive"`
	CommunicationStyle *rawCommunicationStyle `json:"communication_style"`
	KeyLevers          []string               `json:"key_levers"`
	RedFlags           []string               `json:"red_flags"`
	MissingDataGaps    string                 `json:"missing_data_gaps"`
	Confidence         *int                   `json:"confidence"`
}

// toProfile validates the four required fields (holistic_summary,
// main_drive, key_levers, red_flags) and returns (zero, false) if any are
// missing. communication_style is optional and left empty when absent.
func (r rawDNA) toProfile() (model.HolisticProfile, bool) {
	if r.HolisticSummary == "" || r.MainDrive == "" || len(r.KeyLevers) == 0 || len(r.RedFlags) == 0 {
		return model.HolisticProfile{}, false
	}

	style := model.CommunicationStyle{}
	if r.CommunicationStyle != nil {
		style = model.CommunicationStyle{
			RecommendedTone: r.CommunicationStyle.RecommendedTone,
			KeywordsToUse:   r.CommunicationStyle.KeywordsToUse,
			KeywordsToAvoid: r.CommunicationStyle.KeywordsToAvoid,
		}
	}

	confidence := 50
	if r.Confidence != nil {
		confidence = clamp(*r.Confidence, 0, 100)
	}

	return model.HolisticProfile{
		HolisticSummary:    r.HolisticSummary,
		MainDrive:          r.MainDrive,
		CommunicationStyle: style,
		KeyLevers:          r.KeyLevers,
		RedFlags:           r.RedFlags,
		MissingDataGaps:    r.MissingDataGaps,
		Confidence:         confidence,
	}, true
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
