// Package model holds the domain types shared across every pipeline stage.
package model

import "time"

// TraitScore is the common shape for every Big Five and DISC trait.
type TraitScore struct {
	Score    int    `json:"score"`
	Rationale string `json:"rationale"`
	Strategy  string `json:"strategy"`
}

// BigFive holds the five-factor personality model.
type BigFive struct {
	Openness          TraitScore `json:"openness"`
	Conscientiousness TraitScore `json:"conscientiousness"`
	Extraversion      TraitScore `json:"extraversion"`
	Agreeableness     TraitScore `json:"agreeableness"`
	Neuroticism       TraitScore `json:"neuroticism"`
}

// DISC holds the four DISC behavioral traits.
type DISC struct {
	Dominance  TraitScore `json:"dominance"`
	Influence  TraitScore `json:"influence"`
	Steadiness TraitScore `json:"steadiness"`
	Compliance TraitScore `json:"compliance"`
}

// SchwartzValue is a single value from Schwartz's theory of basic values.
type SchwartzValue struct {
	Name      string `json:"name"`
	Strength  int    `json:"strength"`
	Rationale string `json:"rationale"`
	Strategy  string `json:"strategy"`
	Present   bool   `json:"present"`
}

// Observation is a prior clarifying-question answer folded back into the profile.
type Observation struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Ts       time.Time `json:"ts"`
	Target   string    `json:"target"`
}

// CumulativePsychology is the evolving, session-scoped psychometric profile.
// The Zero-Null Policy requires every trait to be populated at all times;
// ValidateAndRepair in package psychology is the sole writer of this type.
type CumulativePsychology struct {
	BigFive             BigFive         `json:"big_five"`
	DISC                DISC            `json:"disc"`
	SchwartzValues      []SchwartzValue `json:"schwartz_values"`
	Observations        []Observation   `json:"observations"`
	ObservationsSummary string          `json:"observations_summary"`
	RepairedFields       []string        `json:"repaired_fields,omitempty"`
}

// ClarifyingQuestion is an A/B-framed prompt shown to the seller.
type ClarifyingQuestion struct {
	ID                   string `json:"id"`
	Question             string `json:"question"`
	OptionA              string `json:"option_a"`
	OptionB              string `json:"option_b"`
	PsychologicalTarget  string `json:"psychological_target"`
}

// AnalyzerOutput is the result of a single Psychology Analyzer call.
type AnalyzerOutput struct {
	CumulativePsychology      CumulativePsychology  `json:"cumulative_psychology"`
	PsychologyConfidence      int                   `json:"psychology_confidence"`
	SuggestedQuestions        []ClarifyingQuestion  `json:"suggested_questions"`
	CustomerArchetype         *CustomerArchetype    `json:"customer_archetype,omitempty"`
	SalesIndicators           *SalesIndicators      `json:"sales_indicators,omitempty"`
	IsFallback                bool                  `json:"is_fallback"`
}
