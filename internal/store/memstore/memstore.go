// Package memstore is an in-process, mutex-guarded SessionStore/ClientStore
// used by pipeline unit tests, generalized from the teacher's test-double
// pattern (ground: internal/brain/explore_mock.go's mock-mode approach of
// swapping a real collaborator for a synchronous in-memory stand-in).
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/store"
)

type Store struct {
	mu           sync.Mutex
	sessions     map[int64]*model.Session
	interactions map[int64][]*model.Interaction
	clients      map[int64]*model.Client
}

func New() *Store {
	return &Store{
		sessions:     make(map[int64]*model.Session),
		interactions: make(map[int64][]*model.Interaction),
		clients:      make(map[int64]*model.Client),
	}
}

// SeedSession inserts a session directly, for test setup.
func (s *Store) SeedSession(sess model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	s.sessions[sess.ID] = &cp
}

func (s *Store) GetSessionContext(_ context.Context, sessionID int64) (model.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.SessionContext{}, store.ErrNotFound
	}

	interactions := make([]model.Interaction, 0, len(s.interactions[sessionID]))
	for _, in := range s.interactions[sessionID] {
		interactions = append(interactions, *in)
	}
	sort.Slice(interactions, func(i, j int) bool { return interactions[i].Ts.Before(interactions[j].Ts) })

	var client *model.Client
	if sess.ClientID != nil {
		if c, ok := s.clients[*sess.ClientID]; ok {
			cp := *c
			client = &cp
		}
	}

	return model.SessionContext{Session: *sess, Interactions: interactions, Client: client}, nil
}

func (s *Store) PersistAnalysis(_ context.Context, sessionID int64, update store.AnalysisUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return store.ErrNotFound
	}

	sess.CumulativePsychology = update.CumulativePsychology
	sess.PsychologyConfidence = update.PsychologyConfidence
	sess.ActiveClarifyingQuestions = update.ActiveClarifyingQuestions
	sess.CustomerArchetype = update.CustomerArchetype
	sess.SalesIndicators = update.SalesIndicators
	sess.HolisticPsychometricProfile = update.HolisticPsychometricProfile
	sess.PsychologyUpdatedAt = update.PsychologyUpdatedAt

	return nil
}

func (s *Store) RecordClarificationAnswer(_ context.Context, sessionID int64, questionID, answer string) (model.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.SessionContext{}, store.ErrNotFound
	}

	var question *model.ClarifyingQuestion
	remaining := make([]model.ClarifyingQuestion, 0, len(sess.ActiveClarifyingQuestions))
	for _, q := range sess.ActiveClarifyingQuestions {
		if q.ID == questionID {
			cp := q
			question = &cp
			continue
		}
		remaining = append(remaining, q)
	}
	sess.ActiveClarifyingQuestions = remaining

	target := ""
	questionText := questionID
	if question != nil {
		target = question.PsychologicalTarget
		questionText = question.Question
	}

	sess.CumulativePsychology.Observations = append(sess.CumulativePsychology.Observations, model.Observation{
		Question: questionText,
		Answer:   answer,
		Ts:       time.Now(),
		Target:   target,
	})

	interactions := make([]model.Interaction, 0, len(s.interactions[sessionID]))
	for _, in := range s.interactions[sessionID] {
		interactions = append(interactions, *in)
	}
	sort.Slice(interactions, func(i, j int) bool { return interactions[i].Ts.Before(interactions[j].Ts) })

	var client *model.Client
	if sess.ClientID != nil {
		if c, ok := s.clients[*sess.ClientID]; ok {
			cp := *c
			client = &cp
		}
	}

	return model.SessionContext{Session: *sess, Interactions: interactions, Client: client}, nil
}

func (s *Store) AppendInteraction(_ context.Context, sessionID int64, in store.NewInteraction) (model.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return model.Interaction{}, store.ErrNotFound
	}

	interaction := &model.Interaction{
		ID:                  id.New(),
		SessionID:           sessionID,
		Ts:                  time.Now(),
		UserInput:           in.UserInput,
		AIResponse:          in.AIResponse,
		ParentInteractionID: in.ParentInteractionID,
	}
	s.interactions[sessionID] = append(s.interactions[sessionID], interaction)

	return *interaction, nil
}

func (s *Store) AttachFeedback(_ context.Context, interactionID int64, feedback model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range s.interactions {
		for _, in := range list {
			if in.ID == interactionID {
				in.Feedback = append(in.Feedback, feedback)
				return nil
			}
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateSession(_ context.Context, clientID *int64, status model.SessionStatus) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &model.Session{
		ID:        id.New(),
		ClientID:  clientID,
		StartTs:   time.Now(),
		Status:    status,
		PsychologyUpdatedAt: time.Now(),
	}
	s.sessions[sess.ID] = sess
	return *sess, nil
}

func (s *Store) EndSession(_ context.Context, sessionID int64) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.Session{}, store.ErrNotFound
	}
	now := time.Now()
	sess.EndTs = &now
	sess.Status = model.SessionCompleted
	return *sess, nil
}

func (s *Store) DeleteSession(_ context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.interactions, sessionID)
	return nil
}

func (s *Store) ListInteractions(_ context.Context, sessionID int64, page, pageSize int) ([]model.Interaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.Interaction, 0, len(s.interactions[sessionID]))
	for _, in := range s.interactions[sessionID] {
		all = append(all, *in)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Ts.Before(all[j].Ts) })

	total := len(all)
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return []model.Interaction{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *Store) CreateClient(_ context.Context, c model.Client) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = id.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.clients[c.ID] = &c
	return c, nil
}

func (s *Store) GetClient(_ context.Context, clientID int64) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[clientID]
	if !ok {
		return model.Client{}, store.ErrNotFound
	}
	return *c, nil
}

func (s *Store) ListClients(_ context.Context, skip, limit int) ([]model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.Client, 0, len(s.clients))
	for _, c := range s.clients {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	if skip >= len(all) {
		return []model.Client{}, nil
	}
	end := skip + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (s *Store) ListSessionsForClient(_ context.Context, clientID int64, page, pageSize int, onlyActive bool) ([]model.Session, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []model.Session
	for _, sess := range s.sessions {
		if sess.ClientID == nil || *sess.ClientID != clientID {
			continue
		}
		if onlyActive && sess.Status != model.SessionActive {
			continue
		}
		all = append(all, *sess)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTs.Before(all[j].StartTs) })

	total := len(all)
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return []model.Session{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

var (
	_ store.SessionStore = (*Store)(nil)
	_ store.ClientStore  = (*Store)(nil)
)
