// Package pgstore is the Postgres-backed SessionStore/ClientStore
// (ground: core/db/db.go's transaction wrapper; hand-written SQL
// because no sqlc codegen can run without the Go toolchain, so the
// teacher's generated-Queries indirection doesn't exist here).
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/core/db"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/store"
	"github.com/jackc/pgx/v5"
)

type Store struct {
	db *db.DB
}

func New(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) GetSessionContext(ctx context.Context, sessionID int64) (model.SessionContext, error) {
	sess, err := scanSession(s.db.Pool().QueryRow(ctx, selectSessionSQL, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SessionContext{}, store.ErrNotFound
		}
		return model.SessionContext{}, fmt.Errorf("pgstore: get session: %w", err)
	}

	rows, err := s.db.Pool().Query(ctx, selectInteractionsSQL, sessionID)
	if err != nil {
		return model.SessionContext{}, fmt.Errorf("pgstore: list interactions: %w", err)
	}
	defer rows.Close()

	interactions, err := scanInteractions(rows)
	if err != nil {
		return model.SessionContext{}, fmt.Errorf("pgstore: scan interactions: %w", err)
	}

	var client *model.Client
	if sess.ClientID != nil {
		c, err := scanClient(s.db.Pool().QueryRow(ctx, selectClientSQL, *sess.ClientID))
		if err == nil {
			client = &c
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return model.SessionContext{}, fmt.Errorf("pgstore: get client: %w", err)
		}
	}

	return model.SessionContext{Session: sess, Interactions: interactions, Client: client}, nil
}

// PersistAnalysis satisfies the "atomic single-row update" requirement via
// a SELECT ... FOR UPDATE within a transaction, serializing concurrent
// writers on the same session row (spec.md §4.C3's ordering guarantee).
func (s *Store) PersistAnalysis(ctx context.Context, sessionID int64, update store.AnalysisUpdate) error {
	return s.db.WithTx(ctx, func(q db.Querier) error {
		var exists bool
		row := q.QueryRow(ctx, `select exists(select 1 from sessions where id = $1 for update)`, sessionID)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("locking session row: %w", err)
		}
		if !exists {
			return store.ErrNotFound
		}

		psych, err := json.Marshal(update.CumulativePsychology)
		if err != nil {
			return err
		}
		questions, err := json.Marshal(update.ActiveClarifyingQuestions)
		if err != nil {
			return err
		}
		archetype, err := marshalNullable(update.CustomerArchetype)
		if err != nil {
			return err
		}
		indicators, err := marshalNullable(update.SalesIndicators)
		if err != nil {
			return err
		}
		holistic, err := marshalNullable(update.HolisticPsychometricProfile)
		if err != nil {
			return err
		}

		_, err = q.Exec(ctx, updateAnalysisSQL,
			psych, update.PsychologyConfidence, questions, archetype, indicators, holistic,
			update.PsychologyUpdatedAt, sessionID)
		return err
	})
}

func (s *Store) RecordClarificationAnswer(ctx context.Context, sessionID int64, questionID, answer string) (model.SessionContext, error) {
	err := s.db.WithTx(ctx, func(q db.Querier) error {
		var questionsRaw, psychRaw []byte
		row := q.QueryRow(ctx, `select active_clarifying_questions, cumulative_psychology from sessions where id = $1 for update`, sessionID)
		if err := row.Scan(&questionsRaw, &psychRaw); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return store.ErrNotFound
			}
			return err
		}

		var questions []model.ClarifyingQuestion
		if err := json.Unmarshal(questionsRaw, &questions); err != nil {
			return err
		}
		var psych model.CumulativePsychology
		if err := json.Unmarshal(psychRaw, &psych); err != nil {
			return err
		}

		var matched *model.ClarifyingQuestion
		remaining := make([]model.ClarifyingQuestion, 0, len(questions))
		for _, question := range questions {
			if question.ID == questionID {
				cp := question
				matched = &cp
				continue
			}
			remaining = append(remaining, question)
		}

		target, text := "", questionID
		if matched != nil {
			target, text = matched.PsychologicalTarget, matched.Question
		}
		psych.Observations = append(psych.Observations, model.Observation{
			Question: text,
			Answer:   answer,
			Ts:       time.Now(),
			Target:   target,
		})

		newQuestions, err := json.Marshal(remaining)
		if err != nil {
			return err
		}
		newPsych, err := json.Marshal(psych)
		if err != nil {
			return err
		}

		_, err = q.Exec(ctx, `update sessions set active_clarifying_questions = $1, cumulative_psychology = $2 where id = $3`,
			newQuestions, newPsych, sessionID)
		return err
	})
	if err != nil {
		return model.SessionContext{}, err
	}

	return s.GetSessionContext(ctx, sessionID)
}

func (s *Store) AppendInteraction(ctx context.Context, sessionID int64, in store.NewInteraction) (model.Interaction, error) {
	aiResponse, err := json.Marshal(in.AIResponse)
	if err != nil {
		return model.Interaction{}, err
	}

	interaction := model.Interaction{
		ID:                  id.New(),
		SessionID:           sessionID,
		Ts:                  time.Now(),
		UserInput:           in.UserInput,
		AIResponse:          in.AIResponse,
		ParentInteractionID: in.ParentInteractionID,
	}

	_, err = s.db.Pool().Exec(ctx, insertInteractionSQL,
		interaction.ID, sessionID, interaction.Ts, in.UserInput, aiResponse, in.ParentInteractionID)
	if err != nil {
		var pgErr interface{ SQLState() string }
		if errors.As(err, &pgErr) && pgErr.SQLState() == "23503" {
			return model.Interaction{}, store.ErrNotFound
		}
		return model.Interaction{}, fmt.Errorf("pgstore: append interaction: %w", err)
	}

	return interaction, nil
}

func (s *Store) AttachFeedback(ctx context.Context, interactionID int64, feedback model.Feedback) error {
	tag, err := s.db.Pool().Exec(ctx,
		`update interactions set feedback = feedback || $1::jsonb where id = $2`,
		mustMarshal([]model.Feedback{feedback}), interactionID)
	if err != nil {
		return fmt.Errorf("pgstore: attach feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, clientID *int64, status model.SessionStatus) (model.Session, error) {
	sess := model.Session{
		ID:                   id.New(),
		ClientID:             clientID,
		StartTs:              time.Now(),
		Status:               status,
		PsychologyUpdatedAt:  time.Now(),
		ActiveClarifyingQuestions: []model.ClarifyingQuestion{},
	}

	_, err := s.db.Pool().Exec(ctx, insertSessionSQL,
		sess.ID, sess.ClientID, sess.StartTs, sess.Status,
		mustMarshal(sess.CumulativePsychology), 0, mustMarshal(sess.ActiveClarifyingQuestions),
		sess.PsychologyUpdatedAt)
	if err != nil {
		return model.Session{}, fmt.Errorf("pgstore: create session: %w", err)
	}

	return sess, nil
}

func (s *Store) EndSession(ctx context.Context, sessionID int64) (model.Session, error) {
	now := time.Now()
	tag, err := s.db.Pool().Exec(ctx, `update sessions set end_ts = $1, status = $2 where id = $3`,
		now, model.SessionCompleted, sessionID)
	if err != nil {
		return model.Session{}, fmt.Errorf("pgstore: end session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Session{}, store.ErrNotFound
	}
	return scanSession(s.db.Pool().QueryRow(ctx, selectSessionSQL, sessionID))
}

func (s *Store) DeleteSession(ctx context.Context, sessionID int64) error {
	tag, err := s.db.Pool().Exec(ctx, `delete from sessions where id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("pgstore: delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListInteractions(ctx context.Context, sessionID int64, page, pageSize int) ([]model.Interaction, int, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	var total int
	if err := s.db.Pool().QueryRow(ctx, `select count(*) from interactions where session_id = $1`, sessionID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgstore: count interactions: %w", err)
	}

	rows, err := s.db.Pool().Query(ctx, selectInteractionsPageSQL, sessionID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("pgstore: list interactions: %w", err)
	}
	defer rows.Close()

	interactions, err := scanInteractions(rows)
	if err != nil {
		return nil, 0, err
	}
	return interactions, total, nil
}

func (s *Store) CreateClient(ctx context.Context, c model.Client) (model.Client, error) {
	c.ID = id.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	_, err := s.db.Pool().Exec(ctx, insertClientSQL, c.ID, c.Alias, c.Archetype, c.Notes, c.Tags, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Client{}, fmt.Errorf("pgstore: create client: %w", err)
	}
	return c, nil
}

func (s *Store) GetClient(ctx context.Context, clientID int64) (model.Client, error) {
	c, err := scanClient(s.db.Pool().QueryRow(ctx, selectClientSQL, clientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Client{}, store.ErrNotFound
	}
	return c, err
}

func (s *Store) ListClients(ctx context.Context, skip, limit int) ([]model.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Pool().Query(ctx, `select id, alias, archetype, notes, tags, created_at, updated_at from clients order by created_at desc limit $1 offset $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list clients: %w", err)
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Alias, &c.Archetype, &c.Notes, &c.Tags, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ListSessionsForClient(ctx context.Context, clientID int64, page, pageSize int, onlyActive bool) ([]model.Session, int, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	whereActive := ""
	if onlyActive {
		whereActive = " and status = 'active'"
	}

	var total int
	countSQL := `select count(*) from sessions where client_id = $1` + whereActive
	if err := s.db.Pool().QueryRow(ctx, countSQL, clientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgstore: count sessions: %w", err)
	}

	listSQL := selectSessionsForClientSQL + whereActive + ` order by start_ts desc limit $2 offset $3`
	rows, err := s.db.Pool().Query(ctx, listSQL, clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("pgstore: list sessions: %w", err)
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		sess, err := scanSessionRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, sess)
	}
	return out, total, rows.Err()
}

func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("pgstore: marshal invariant violated: %v", err))
	}
	return b
}

var _ store.SessionStore = (*Store)(nil)
var _ store.ClientStore = (*Store)(nil)
