package strategy

import (
	"time"

	"copilot.dev/backend/internal/llmparse"
	"copilot.dev/backend/internal/model"
)

type rawQuickResponse struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Tone      string   `json:"tone"`
	KeyPoints []string `json:"key_points"`
}

type rawSuggestedAction struct {
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}

type rawSuggestedQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type rawObjectionHandling struct {
	PotentialObjections []string `json:"potential_objections"`
	Responses           []string `json:"responses"`
}

type rawLikelyArchetype struct {
	Name        string `json:"name"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description"`
}

type rawStrategy struct {
	QuickResponse           *rawQuickResponse      `json:"quick_response"`
	MainAnalysis            string                 `json:"main_analysis"`
	SuggestedActions        []rawSuggestedAction   `json:"suggested_actions"`
	SuggestedQuestions      []rawSuggestedQuestion `json:"suggested_questions"`
	StrategicRecommendation string                 `json:"strategic_recommendation"`
	NextBestAction          string                 `json:"next_best_action"`
	FollowUpTiming          string                 `json:"follow_up_timing"`
	ObjectionHandling       *rawObjectionHandling  `json:"objection_handling"`
	BuySignals              []string               `json:"buy_signals"`
	RiskSignals             []string               `json:"risk_signals"`
	SentimentScore          int                    `json:"sentiment_score"`
	PotentialScore          int                    `json:"potential_score"`
	UrgencyLevel            string                 `json:"urgency_level"`
	ClientArchetype         string                 `json:"client_archetype"`
	LikelyArchetypes        []rawLikelyArchetype   `json:"likely_archetypes"`
	StrategicNotes          []string               `json:"strategic_notes"`
}

func extractJSON(text string) (string, bool) {
	return llmparse.ExtractJSON(text)
}

// toStrategy validates minimum fields and fills missing collections with
// neutral defaults, per spec.md §4.C8 step 7. Returns (zero, false) only
// when the response carries no usable quick_response text at all.
func (r rawStrategy) toStrategy() (model.StrategyResponse, bool) {
	if r.QuickResponse == nil || r.QuickResponse.Text == "" {
		return model.StrategyResponse{}, false
	}

	actions := make([]model.SuggestedAction, 0, len(r.SuggestedActions))
	for _, a := range r.SuggestedActions {
		actions = append(actions, model.SuggestedAction{Action: a.Action, Reasoning: a.Reasoning})
	}

	questions := make([]model.SuggestedQuestion, 0, len(r.SuggestedQuestions))
	for _, q := range r.SuggestedQuestions {
		id := q.ID
		if id == "" {
			id = shortID("q")
		}
		questions = append(questions, model.SuggestedQuestion{ID: id, Text: q.Text})
		if len(questions) == 3 {
			break
		}
	}

	objections := model.ObjectionHandling{}
	if r.ObjectionHandling != nil {
		objections = model.ObjectionHandling{
			PotentialObjections: r.ObjectionHandling.PotentialObjections,
			Responses:           r.ObjectionHandling.Responses,
		}
	}

	likely := make([]model.LikelyArchetype, 0, len(r.LikelyArchetypes))
	for _, a := range r.LikelyArchetypes {
		likely = append(likely, model.LikelyArchetype{Name: a.Name, Confidence: a.Confidence, Description: a.Description})
	}

	urgency := model.UrgencyLevel(r.UrgencyLevel)
	switch urgency {
	case model.UrgencyLow, model.UrgencyMedium, model.UrgencyHigh:
	default:
		urgency = model.UrgencyMedium
	}

	id := r.QuickResponse.ID
	if id == "" {
		id = shortID("qr")
	}

	return model.StrategyResponse{
		QuickResponse: model.QuickResponse{
			ID:        id,
			Text:      r.QuickResponse.Text,
			Tone:      orDefault(r.QuickResponse.Tone, "professional"),
			KeyPoints: r.QuickResponse.KeyPoints,
		},
		MainAnalysis:            r.MainAnalysis,
		SuggestedActions:        actions,
		SuggestedQuestions:      questions,
		StrategicRecommendation: r.StrategicRecommendation,
		NextBestAction:          r.NextBestAction,
		FollowUpTiming:          r.FollowUpTiming,
		ObjectionHandling:       objections,
		BuySignals:              r.BuySignals,
		RiskSignals:             r.RiskSignals,
		SentimentScore:          clamp(r.SentimentScore, 1, 10),
		PotentialScore:          clamp(r.PotentialScore, 1, 10),
		UrgencyLevel:            urgency,
		ClientArchetype:         r.ClientArchetype,
		LikelyArchetypes:        likely,
		StrategicNotes:          truncate(r.StrategicNotes, 5),
		GeneratedAt:             time.Now(),
	}, true
}

func clamp(v, lo, hi int) int {
	if v == 0 {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
