// Package store defines the Session State Store contract (C3) and its
// Client persistence counterpart. spec.md §4.C3 treats this purely as a
// contract; this package adds the two concrete implementations
// (pgstore, memstore) needed to ship a runnable service.
package store

import (
	"context"
	"errors"
	"time"

	"copilot.dev/backend/internal/model"
)

// ErrNotFound is returned when a Session, Interaction, or Client doesn't
// exist. RecordClarificationAnswer does not return it for an unknown
// question id: it still records the answer as an observation.
var ErrNotFound = errors.New("store: not found")

// AnalysisUpdate is the atomic single-row update spec.md §4.C3 requires
// PersistAnalysis to apply.
type AnalysisUpdate struct {
	CumulativePsychology        model.CumulativePsychology
	PsychologyConfidence        int
	ActiveClarifyingQuestions   []model.ClarifyingQuestion
	CustomerArchetype           *model.CustomerArchetype
	SalesIndicators             *model.SalesIndicators
	HolisticPsychometricProfile *model.HolisticProfile
	PsychologyUpdatedAt         time.Time
}

// NewInteraction is the input shape for AppendInteraction.
type NewInteraction struct {
	UserInput           string
	AIResponse          model.StrategyResponse
	ParentInteractionID *int64
}

// SessionStore is the Session State Store contract (C3).
type SessionStore interface {
	GetSessionContext(ctx context.Context, sessionID int64) (model.SessionContext, error)
	PersistAnalysis(ctx context.Context, sessionID int64, update AnalysisUpdate) error
	RecordClarificationAnswer(ctx context.Context, sessionID int64, questionID, answer string) (model.SessionContext, error)
	AppendInteraction(ctx context.Context, sessionID int64, in NewInteraction) (model.Interaction, error)
	AttachFeedback(ctx context.Context, interactionID int64, feedback model.Feedback) error
	CreateSession(ctx context.Context, clientID *int64, status model.SessionStatus) (model.Session, error)
	EndSession(ctx context.Context, sessionID int64) (model.Session, error)
	DeleteSession(ctx context.Context, sessionID int64) error
	ListInteractions(ctx context.Context, sessionID int64, page, pageSize int) ([]model.Interaction, int, error)
}

// ClientStore persists Client records, peripheral to the Analysis
// Pipeline but part of the external contract (spec.md §6).
type ClientStore interface {
	CreateClient(ctx context.Context, c model.Client) (model.Client, error)
	GetClient(ctx context.Context, id int64) (model.Client, error)
	ListClients(ctx context.Context, skip, limit int) ([]model.Client, error)
	ListSessionsForClient(ctx context.Context, clientID int64, page, pageSize int, onlyActive bool) ([]model.Session, int, error)
}
