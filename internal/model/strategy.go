package model

import "time"

// ContextType records how much context the strategy generator had to work with.
type ContextType string

const (
	ContextUltraBrainComplete ContextType = "ultra_brain_complete"
	ContextHolisticProfile    ContextType = "holistic_profile"
	ContextArchetypeOnly      ContextType = "archetype_only"
	ContextBasic              ContextType = "basic"
)

// UrgencyLevel grades how quickly the seller should act.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// QuickResponse is the ready-to-speak reply.
type QuickResponse struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Tone      string   `json:"tone"`
	KeyPoints []string `json:"key_points"`
}

// SuggestedAction is one recommended next step with its reasoning.
type SuggestedAction struct {
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}

// SuggestedQuestion is an atomic probe about the latest utterance.
type SuggestedQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ObjectionHandling pairs anticipated objections with prepared responses.
type ObjectionHandling struct {
	PotentialObjections []string `json:"potential_objections"`
	Responses           []string `json:"responses"`
}

// LikelyArchetype is a candidate archetype with its confidence, used when
// the strategy generator hedges across more than one plausible reading.
type LikelyArchetype struct {
	Name        string `json:"name"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description"`
}

// StrategyResponse is the structure returned to the pipeline caller and
// stored verbatim in Interaction.AIResponse.
type StrategyResponse struct {
	QuickResponse           QuickResponse       `json:"quick_response"`
	MainAnalysis            string              `json:"main_analysis"`
	SuggestedActions        []SuggestedAction   `json:"suggested_actions"`
	SuggestedQuestions      []SuggestedQuestion `json:"suggested_questions"`
	StrategicRecommendation string              `json:"strategic_recommendation"`
	NextBestAction          string              `json:"next_best_action"`
	FollowUpTiming          string              `json:"follow_up_timing,omitempty"`
	ObjectionHandling       ObjectionHandling   `json:"objection_handling"`
	BuySignals              []string            `json:"buy_signals"`
	RiskSignals             []string            `json:"risk_signals"`
	SentimentScore          int                 `json:"sentiment_score"`
	PotentialScore          int                 `json:"potential_score"`
	UrgencyLevel            UrgencyLevel        `json:"urgency_level"`
	ClientArchetype         string              `json:"client_archetype"`
	ConfidenceLevel         int                 `json:"confidence_level"`
	LikelyArchetypes        []LikelyArchetype   `json:"likely_archetypes"`
	StrategicNotes          []string            `json:"strategic_notes"`
	GeneratedAt             time.Time           `json:"generated_at"`
	ModelUsed               string              `json:"model_used"`
	ContextType             ContextType         `json:"context_type"`
	SalesIndicators         *SalesIndicators    `json:"sales_indicators,omitempty"`
	IsFallback              bool                `json:"is_fallback"`
}
