package strategy

import (
	"time"

	"copilot.dev/backend/internal/model"
)

// fallbackResponse is the branded fallback spec.md §4.C8 step 9 requires:
// quick_response invites the customer to elaborate, suggested_actions
// restate canonical brand advantages.
func fallbackResponse() model.StrategyResponse {
	return model.StrategyResponse{
		QuickResponse: model.QuickResponse{
			ID:   shortID("qr"),
			Text: "I understand your point. We offer a unique combination of performance, technology, and sustainability — could you tell me more about your priorities?",
			Tone: "professional",
			KeyPoints: []string{
				"Performance",
				"Technology",
				"Sustainability",
			},
		},
		MainAnalysis:            "Insufficient signal to read the session; falling back to a discovery-oriented response.",
		StrategicRecommendation: "Gather more information about the customer's needs and build brand value gradually.",
		SuggestedActions: []model.SuggestedAction{
			{Action: "Highlight total cost of ownership versus a comparable gas vehicle", Reasoning: "Economics are a universal brand advantage regardless of archetype"},
			{Action: "Offer a test drive to showcase performance and technology firsthand", Reasoning: "Direct experience counters a thin psychology read"},
			{Action: "Mention the supercharger network's size and convenience", Reasoning: "Addresses the most common unprompted objection (range/charging anxiety)"},
		},
		SuggestedQuestions: []model.SuggestedQuestion{
			{ID: shortID("q"), Text: "What are your main priorities when choosing a vehicle?"},
			{ID: shortID("q"), Text: "Have you considered an electric vehicle before?"},
		},
		NextBestAction: "Ask discovery questions and present the key brand advantages.",
		ObjectionHandling: model.ObjectionHandling{
			PotentialObjections: []string{"Price", "Range", "Charging"},
			Responses: []string{
				"This model has the lowest total cost of ownership in its class.",
				"The long-range variant covers over 600 km on a single charge.",
				"Our charging network is the largest of its kind in the world.",
			},
		},
		BuySignals:      nil,
		RiskSignals:     nil,
		SentimentScore:  5,
		PotentialScore:  5,
		UrgencyLevel:    model.UrgencyMedium,
		ClientArchetype: "",
		ConfidenceLevel: 20,
		StrategicNotes:  nil,
		GeneratedAt:     time.Now(),
		ContextType:     model.ContextBasic,
		IsFallback:      true,
	}
}
