// Package pipeline implements the Pipeline Orchestrator (C9): it
// sequences the Psychology Analyzer, Archetype Mapper, Holistic
// Synthesizer, Sales Indicator Generator and Strategy Generator into one
// ProcessObservation turn per spec.md §4.C9.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"copilot.dev/backend/internal/archetype"
	"copilot.dev/backend/internal/indicators"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/pipeline/sessionlock"
	"copilot.dev/backend/internal/psychology"
	"copilot.dev/backend/internal/store"
	"copilot.dev/backend/internal/strategy"
	"copilot.dev/backend/internal/synthesis"
)

// Orchestrator wires C4 through C8 behind the single entry point the
// HTTP layer calls.
type Orchestrator struct {
	store      store.SessionStore
	locks      sessionlock.Locker
	analyzer   *psychology.Analyzer
	archetypes archetype.Service
	synth      *synthesis.Synthesizer
	indicators *indicators.Generator
	strategy   *strategy.Generator
}

func New(
	sessionStore store.SessionStore,
	locks sessionlock.Locker,
	analyzer *psychology.Analyzer,
	archetypes archetype.Service,
	synth *synthesis.Synthesizer,
	indicatorGen *indicators.Generator,
	strategyGen *strategy.Generator,
) *Orchestrator {
	return &Orchestrator{
		store:      sessionStore,
		locks:      locks,
		analyzer:   analyzer,
		archetypes: archetypes,
		synth:      synth,
		indicators: indicatorGen,
		strategy:   strategyGen,
	}
}

// ProcessObservation runs one full pipeline turn for a seller's
// observation, per spec.md §4.C9's state machine.
func (o *Orchestrator) ProcessObservation(ctx context.Context, sessionID int64, userInput string, parentInteractionID *int64) (model.Interaction, error) {
	release, err := o.locks.Lock(ctx, sessionID)
	if err != nil {
		return model.Interaction{}, NewRetryableError(fmt.Errorf("acquiring session lock: %w", err))
	}
	defer release()

	// LOAD_CTX
	sctx, err := o.store.GetSessionContext(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Interaction{}, NewFatalError(ErrSessionNotFound)
		}
		return model.Interaction{}, NewRetryableError(fmt.Errorf("loading session context: %w", err))
	}

	return o.runFromPsychology(ctx, sctx, userInput, parentInteractionID)
}

// AnswerClarifyingQuestion records the seller's answer to a clarifying
// question then re-runs the pipeline from PSYCHOLOGY onward using the
// augmented profile, per spec.md §4.C9's parallel entry point.
func (o *Orchestrator) AnswerClarifyingQuestion(ctx context.Context, sessionID int64, questionID, answer string) (model.Interaction, error) {
	release, err := o.locks.Lock(ctx, sessionID)
	if err != nil {
		return model.Interaction{}, NewRetryableError(fmt.Errorf("acquiring session lock: %w", err))
	}
	defer release()

	sctx, err := o.store.RecordClarificationAnswer(ctx, sessionID, questionID, answer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Interaction{}, NewFatalError(ErrSessionNotFound)
		}
		return model.Interaction{}, NewRetryableError(fmt.Errorf("recording clarification answer: %w", err))
	}

	return o.runFromPsychology(ctx, sctx, answer, nil)
}

func (o *Orchestrator) runFromPsychology(ctx context.Context, sctx model.SessionContext, userInput string, parentInteractionID *int64) (model.Interaction, error) {
	session := sctx.Session

	if sctx.Client == nil {
		return o.appendFallbackTurn(ctx, session.ID, userInput, parentInteractionID)
	}

	// PSYCHOLOGY
	transcript := formatTranscript(sctx.Interactions, userInput)
	analyzerOut := o.analyzer.Analyze(ctx, transcript, &session.CumulativePsychology, session.PsychologyConfidence)

	// ARCHETYPE — C9 step 3 overwrites AnalyzerOutput.customer_archetype
	// with the deterministic C5 result regardless of what C4 guessed.
	deterministicArchetype := o.archetypes.DetermineArchetype(analyzerOut.CumulativePsychology)
	analyzerOut.CustomerArchetype = &deterministicArchetype

	// SYNTHESIS
	holisticProfile := o.synth.Synthesize(ctx, analyzerOut.CumulativePsychology, analyzerOut.PsychologyConfidence, nil)

	// FORK / JOIN: persist the analysis and derive indicators concurrently.
	// Persistence failure does not abort the turn; indicator failure
	// downgrades to the indicator generator's own fallback, which the
	// generator already returns on error, so JOIN only needs to wait.
	var wg sync.WaitGroup
	var salesIndicators model.SalesIndicators
	var persistErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		persistErr = o.store.PersistAnalysis(ctx, session.ID, store.AnalysisUpdate{
			CumulativePsychology:        analyzerOut.CumulativePsychology,
			PsychologyConfidence:        analyzerOut.PsychologyConfidence,
			ActiveClarifyingQuestions:   analyzerOut.SuggestedQuestions,
			CustomerArchetype:           analyzerOut.CustomerArchetype,
			HolisticPsychometricProfile: &holisticProfile,
		})
	}()
	go func() {
		defer wg.Done()
		salesIndicators = o.indicators.Derive(ctx, holisticProfile, indicators.SessionContext{
			ArchetypeKey: string(deterministicArchetype.Key),
			AccountType:  sctx.Client.Archetype,
		})
	}()
	wg.Wait()

	if persistErr != nil {
		slog.WarnContext(ctx, "pipeline: persisting analysis failed, continuing turn", "error", persistErr)
	}

	// STRATEGY
	response := o.strategy.Generate(
		ctx,
		userInput,
		strategy.ClientProfile{Alias: sctx.Client.Alias, Archetype: string(deterministicArchetype.Key)},
		historyLines(sctx.Interactions),
		&analyzerOut.CumulativePsychology,
		&holisticProfile,
		analyzerOut.CustomerArchetype,
	)
	response.SalesIndicators = &salesIndicators

	// APPEND_INTERACTION
	interaction, err := o.store.AppendInteraction(ctx, session.ID, store.NewInteraction{
		UserInput:           userInput,
		AIResponse:          response,
		ParentInteractionID: parentInteractionID,
	})
	if err != nil {
		return model.Interaction{}, NewFatalError(fmt.Errorf("appending interaction: %w", err))
	}

	return interaction, nil
}

// appendFallbackTurn handles the FALLBACK_RESP path: the session has no
// client yet, so psychology/archetype/synthesis are skipped entirely but
// the turn still produces and persists an interaction.
func (o *Orchestrator) appendFallbackTurn(ctx context.Context, sessionID int64, userInput string, parentInteractionID *int64) (model.Interaction, error) {
	response := o.strategy.Generate(ctx, userInput, strategy.ClientProfile{}, nil, nil, nil, nil)

	interaction, err := o.store.AppendInteraction(ctx, sessionID, store.NewInteraction{
		UserInput:           userInput,
		AIResponse:          response,
		ParentInteractionID: parentInteractionID,
	})
	if err != nil {
		return model.Interaction{}, NewFatalError(fmt.Errorf("appending interaction: %w", err))
	}

	return interaction, nil
}
