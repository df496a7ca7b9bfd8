package model

import "time"

// SessionStatus is the lifecycle state of a Session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionDemo      SessionStatus = "demo"
)

// Session is a conversation with one prospect.
type Session struct {
	ID                         int64                `json:"id"`
	ClientID                   *int64               `json:"client_id,omitempty"`
	StartTs                    time.Time            `json:"start_ts"`
	EndTs                      *time.Time           `json:"end_ts,omitempty"`
	Status                     SessionStatus         `json:"status"`
	CumulativePsychology       CumulativePsychology  `json:"cumulative_psychology"`
	PsychologyConfidence       int                   `json:"psychology_confidence"`
	ActiveClarifyingQuestions  []ClarifyingQuestion  `json:"active_clarifying_questions"`
	CustomerArchetype          *CustomerArchetype    `json:"customer_archetype,omitempty"`
	HolisticPsychometricProfile *HolisticProfile     `json:"holistic_psychometric_profile,omitempty"`
	SalesIndicators            *SalesIndicators      `json:"sales_indicators,omitempty"`
	PsychologyUpdatedAt        time.Time             `json:"psychology_updated_at"`
}

// HasDNA reports whether both the holistic profile and sales indicators are present,
// the invariant spec.md §3 requires to hold jointly.
func (s *Session) HasDNA() bool {
	return s.HolisticPsychometricProfile != nil && s.SalesIndicators != nil
}

// Feedback is a seller-attached signal on one suggestion within an interaction.
type Feedback struct {
	SuggestionID   string `json:"suggestion_id"`
	SuggestionType string `json:"suggestion_type,omitempty"`
	Score          int    `json:"score"`
}

// Interaction is one seller observation and the computed response.
type Interaction struct {
	ID                   int64            `json:"id"`
	SessionID            int64            `json:"session_id"`
	Ts                   time.Time        `json:"ts"`
	UserInput            string           `json:"user_input"`
	AIResponse           StrategyResponse `json:"ai_response"`
	Feedback             []Feedback       `json:"feedback"`
	ParentInteractionID  *int64           `json:"parent_interaction_id,omitempty"`
}

// Client is a persistent prospect record.
type Client struct {
	ID        int64     `json:"id"`
	Alias     string    `json:"alias,omitempty"`
	Archetype string    `json:"archetype,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionContext is the read-side aggregate: a session plus its ordered
// interactions and optional client, as returned by GetSessionContext.
type SessionContext struct {
	Session      Session
	Interactions []Interaction
	Client       *Client
}
