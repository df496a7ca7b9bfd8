package memstore

import (
	"context"
	"testing"

	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/store"
	"github.com/stretchr/testify/require"
)

func TestClarificationRemovesQuestionAndAppendsObservation(t *testing.T) {
	s := New()
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, nil, model.SessionActive)
	require.NoError(t, err)

	err = s.PersistAnalysis(ctx, sess.ID, store.AnalysisUpdate{
		ActiveClarifyingQuestions: []model.ClarifyingQuestion{
			{ID: "q1", Question: "Czy klient jest zadowolony?", OptionA: "confirms", OptionB: "denies", PsychologicalTarget: "agreeableness"},
		},
	})
	require.NoError(t, err)

	updated, err := s.RecordClarificationAnswer(ctx, sess.ID, "q1", "confirms")
	require.NoError(t, err)

	for _, q := range updated.Session.ActiveClarifyingQuestions {
		require.NotEqual(t, "q1", q.ID)
	}
	require.Len(t, updated.Session.CumulativePsychology.Observations, 1)
	require.Equal(t, "confirms", updated.Session.CumulativePsychology.Observations[0].Answer)
}

func TestAppendInteractionRequiresExistingSession(t *testing.T) {
	s := New()
	_, err := s.AppendInteraction(context.Background(), 999, store.NewInteraction{UserInput: "hi"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetSessionContextOrdersInteractionsByTime(t *testing.T) {
	s := New()
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, nil, model.SessionActive)
	require.NoError(t, err)

	_, err = s.AppendInteraction(ctx, sess.ID, store.NewInteraction{UserInput: "first"})
	require.NoError(t, err)
	_, err = s.AppendInteraction(ctx, sess.ID, store.NewInteraction{UserInput: "second"})
	require.NoError(t, err)

	full, err := s.GetSessionContext(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, full.Interactions, 2)
	require.Equal(t, "first", full.Interactions[0].UserInput)
	require.Equal(t, "second", full.Interactions[1].UserInput)
}
