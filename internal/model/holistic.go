package model

import "time"

// CommunicationStyle captures the recommended tone and vocabulary.
type CommunicationStyle struct {
	RecommendedTone  string   `json:"recommended_tone"`
	KeywordsToUse    []string `json:"keywords_to_use"`
	KeywordsToAvoid  []string `json:"keywords_to_avoid"`
}

// HolisticProfile is the distilled "Customer DNA" consumed by the strategy generator.
type HolisticProfile struct {
	HolisticSummary     string              `json:"holistic_summary"`
	MainDrive           string              `json:"main_drive"`
	CommunicationStyle  CommunicationStyle  `json:"communication_style"`
	KeyLevers           []string            `json:"key_levers"`
	RedFlags            []string            `json:"red_flags"`
	MissingDataGaps     string              `json:"missing_data_gaps"`
	Confidence          int                 `json:"confidence"`
	IsFallback          bool                `json:"is_fallback"`
	SynthesisTs         time.Time           `json:"synthesis_ts"`
	SourceConfidence    int                 `json:"source_confidence"`
}
