package pgstore

import (
	"encoding/json"

	"copilot.dev/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const selectSessionSQL = `
select id, client_id, start_ts, end_ts, status, cumulative_psychology, psychology_confidence,
       active_clarifying_questions, customer_archetype, holistic_psychometric_profile,
       sales_indicators, psychology_updated_at
from sessions where id = $1`

const selectSessionsForClientSQL = `
select id, client_id, start_ts, end_ts, status, cumulative_psychology, psychology_confidence,
       active_clarifying_questions, customer_archetype, holistic_psychometric_profile,
       sales_indicators, psychology_updated_at
from sessions where client_id = $1`

const insertSessionSQL = `
insert into sessions (id, client_id, start_ts, status, cumulative_psychology, psychology_confidence,
                       active_clarifying_questions, psychology_updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateAnalysisSQL = `
update sessions
set cumulative_psychology = $1, psychology_confidence = $2, active_clarifying_questions = $3,
    customer_archetype = $4, sales_indicators = $5, holistic_psychometric_profile = $6,
    psychology_updated_at = $7
where id = $8`

const selectInteractionsSQL = `
select id, session_id, ts, user_input, ai_response, feedback, parent_interaction_id
from interactions where session_id = $1 order by ts asc`

const selectInteractionsPageSQL = `
select id, session_id, ts, user_input, ai_response, feedback, parent_interaction_id
from interactions where session_id = $1 order by ts asc limit $2 offset $3`

const insertInteractionSQL = `
insert into interactions (id, session_id, ts, user_input, ai_response, parent_interaction_id)
values ($1, $2, $3, $4, $5, $6)`

const selectClientSQL = `
select id, alias, archetype, notes, tags, created_at, updated_at from clients where id = $1`

const insertClientSQL = `
insert into clients (id, alias, archetype, notes, tags, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (model.Session, error) {
	var sess model.Session
	var psychRaw, questionsRaw []byte
	var archetypeRaw, holisticRaw, indicatorsRaw []byte

	err := row.Scan(&sess.ID, &sess.ClientID, &sess.StartTs, &sess.EndTs, &sess.Status,
		&psychRaw, &sess.PsychologyConfidence, &questionsRaw, &archetypeRaw, &holisticRaw,
		&indicatorsRaw, &sess.PsychologyUpdatedAt)
	if err != nil {
		return model.Session{}, err
	}

	if err := json.Unmarshal(psychRaw, &sess.CumulativePsychology); err != nil {
		return model.Session{}, err
	}
	if err := json.Unmarshal(questionsRaw, &sess.ActiveClarifyingQuestions); err != nil {
		return model.Session{}, err
	}
	if len(archetypeRaw) > 0 && string(archetypeRaw) != "null" {
		var a model.CustomerArchetype
		if err := json.Unmarshal(archetypeRaw, &a); err != nil {
			return model.Session{}, err
		}
		sess.CustomerArchetype = &a
	}
	if len(holisticRaw) > 0 && string(holisticRaw) != "null" {
		var h model.HolisticProfile
		if err := json.Unmarshal(holisticRaw, &h); err != nil {
			return model.Session{}, err
		}
		sess.HolisticPsychometricProfile = &h
	}
	if len(indicatorsRaw) > 0 && string(indicatorsRaw) != "null" {
		var ind model.SalesIndicators
		if err := json.Unmarshal(indicatorsRaw, &ind); err != nil {
			return model.Session{}, err
		}
		sess.SalesIndicators = &ind
	}

	return sess, nil
}

func scanSessionRow(rows pgx.Rows) (model.Session, error) {
	return scanSession(rows)
}

func scanInteractions(rows pgx.Rows) ([]model.Interaction, error) {
	var out []model.Interaction
	for rows.Next() {
		var in model.Interaction
		var aiResponseRaw, feedbackRaw []byte
		if err := rows.Scan(&in.ID, &in.SessionID, &in.Ts, &in.UserInput, &aiResponseRaw, &feedbackRaw, &in.ParentInteractionID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(aiResponseRaw, &in.AIResponse); err != nil {
			return nil, err
		}
		if len(feedbackRaw) > 0 {
			if err := json.Unmarshal(feedbackRaw, &in.Feedback); err != nil {
				return nil, err
			}
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func scanClient(row rowScanner) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.Alias, &c.Archetype, &c.Notes, &c.Tags, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
