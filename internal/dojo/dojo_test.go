package dojo

import (
	"context"
	"testing"

	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/llmgw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatReturnsConfirmationWithStructuredData(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{
		"response": "I've drafted a nugget about Supercharger etiquette, approve it?",
		"response_type": "confirmation",
		"structured_data": {"title": "Supercharger etiquette", "content": "Move your car once charging completes above 80%.", "knowledge_type": "general", "tags": ["charging"]},
		"confidence_level": 88,
		"suggested_follow_up": ["Approve and save", "Cancel", "Edit"]
	}`}}

	svc := New(fake, knowledge.NewMemoryStore())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Sellers should remind customers to move their car once charged."})

	assert.Equal(t, ResponseConfirmation, resp.ResponseType)
	require.NotNil(t, resp.StructuredData)
	assert.Equal(t, "Supercharger etiquette", resp.StructuredData["title"])
	assert.Equal(t, 88, resp.ConfidenceLevel)
}

func TestChatAsksClarifyingQuestion(t *testing.T) {
	fake := &llmgw.Fake{Responses: []string{`{"response": "Which trim does this apply to?", "response_type": "question", "confidence_level": 40}`}}

	svc := New(fake, knowledge.NewMemoryStore())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "The range is lower in winter."})

	assert.Equal(t, ResponseQuestion, resp.ResponseType)
	assert.Nil(t, resp.StructuredData)
}

func TestChatReturnsErrorResponseOnLLMFailure(t *testing.T) {
	fake := &llmgw.Fake{Err: llmgw.ErrLLMUnavailable}

	svc := New(fake, knowledge.NewMemoryStore())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "hello"})

	assert.Equal(t, ResponseError, resp.ResponseType)
	assert.Equal(t, 0, resp.ConfidenceLevel)
}

func TestConfirmPersistsNuggetWhenConfirmed(t *testing.T) {
	store := knowledge.NewMemoryStore()
	svc := New(&llmgw.Fake{}, store)

	resp, err := svc.Confirm(context.Background(), ConfirmRequest{
		SessionID: "dojo_abc123",
		Confirmed: true,
		StructuredData: map[string]any{
			"title":   "Supercharger etiquette",
			"content": "Move your car once charging completes above 80%.",
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.NotEmpty(t, resp.NuggetID)

	all, err := store.GetAll(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Supercharger etiquette", all[0].Title)
}

func TestConfirmIsNoOpWhenDeclined(t *testing.T) {
	store := knowledge.NewMemoryStore()
	svc := New(&llmgw.Fake{}, store)

	resp, err := svc.Confirm(context.Background(), ConfirmRequest{Confirmed: false})
	require.NoError(t, err)
	assert.False(t, resp.Saved)

	all, err := store.GetAll(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}
