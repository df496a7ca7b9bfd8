// Package dojo implements the expert-in-the-loop training channel: an
// expert converses with the model to teach it new domain knowledge, and
// approves each structured nugget before it lands in the Knowledge
// Retriever (C2).
package dojo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/llmparse"
	"copilot.dev/backend/internal/model"
)

// ResponseType mirrors the three conversational modes the model can take
// plus the error path the HTTP layer falls back to on failure.
type ResponseType string

const (
	ResponseQuestion     ResponseType = "question"
	ResponseConfirmation ResponseType = "confirmation"
	ResponseStatus       ResponseType = "status"
	ResponseError        ResponseType = "error"
)

// ChatRequest is one turn of the training conversation.
type ChatRequest struct {
	Message        string
	TrainingMode   string // knowledge_update, error_correction, general_chat
	ClientContext  map[string]any
	ConversationHistory []string // "expert: ..."/"assistant: ..." lines, oldest first
}

// ChatResponse is what the expert's console renders back.
type ChatResponse struct {
	Response          string
	ResponseType       ResponseType
	StructuredData     map[string]any
	ConfidenceLevel    int
	SuggestedFollowUp  []string
}

// ConfirmRequest carries the expert's verdict on a StructuredData block a
// prior Chat call proposed.
type ConfirmRequest struct {
	SessionID      string
	StructuredData map[string]any
	Confirmed      bool
}

// ConfirmResponse reports whether the nugget was persisted.
type ConfirmResponse struct {
	Saved    bool
	NuggetID string
	Message  string
}

// Service is the dojo training collaborator (spec.md §6 /dojo/chat and
// /dojo/confirm).
type Service struct {
	gateway   llmgw.Gateway
	knowledge knowledge.Retriever
}

func New(gateway llmgw.Gateway, retriever knowledge.Retriever) *Service {
	return &Service{gateway: gateway, knowledge: retriever}
}

// Chat runs one exchange of the training dialogue. Unlike the main
// pipeline's analyzers, dojo never falls back to a canned profile on LLM
// failure — it surfaces the failure as ResponseError so the expert can
// retry, matching the training conversation's synchronous, human-driven
// nature.
func (s *Service) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	mode := req.TrainingMode
	if mode == "" {
		mode = "knowledge_update"
	}

	systemPrompt := buildSystemPrompt(mode, req.ClientContext)
	userPrompt := buildUserPrompt(req.Message, req.ConversationHistory)

	result, err := s.gateway.Generate(ctx, systemPrompt, userPrompt, "dojo", false)
	if err != nil {
		slog.WarnContext(ctx, "dojo: llm call failed", "error", err)
		return ChatResponse{
			Response:          "Sorry, something went wrong processing that. Please try again.",
			ResponseType:      ResponseError,
			ConfidenceLevel:   0,
			SuggestedFollowUp: []string{"Try again", "Rephrase the message"},
		}
	}

	jsonBody, ok := llmparse.ExtractJSON(result.Content)
	if !ok {
		slog.WarnContext(ctx, "dojo: no JSON envelope in llm response")
		return fallbackStatus(result.Content)
	}

	var raw rawDojoResponse
	if err := json.Unmarshal([]byte(jsonBody), &raw); err != nil {
		slog.WarnContext(ctx, "dojo: failed to parse llm response", "error", err)
		return fallbackStatus(result.Content)
	}

	return raw.toResponse()
}

// Confirm persists the structured nugget the expert approved in a prior
// Chat turn. A declined confirmation is a no-op, not an error.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (ConfirmResponse, error) {
	if !req.Confirmed {
		return ConfirmResponse{Saved: false, Message: "Discarded by expert."}, nil
	}

	nugget := nuggetFromStructuredData(req.StructuredData)

	ids, err := s.knowledge.BulkUpsert(ctx, []model.KnowledgeNugget{nugget})
	if err != nil {
		return ConfirmResponse{}, fmt.Errorf("dojo: saving knowledge nugget: %w", err)
	}
	if len(ids) == 0 {
		return ConfirmResponse{}, fmt.Errorf("dojo: knowledge store returned no id")
	}

	return ConfirmResponse{
		Saved:    true,
		NuggetID: ids[0],
		Message:  fmt.Sprintf("Knowledge saved (id: %s).", ids[0]),
	}, nil
}

func fallbackStatus(raw string) ChatResponse {
	text := strings.TrimSpace(raw)
	if text == "" {
		text = "Understood."
	}
	return ChatResponse{Response: text, ResponseType: ResponseStatus, ConfidenceLevel: 60}
}

func nuggetFromStructuredData(data map[string]any) model.KnowledgeNugget {
	get := func(key string) string {
		v, _ := data[key].(string)
		return v
	}

	tags := []string{}
	if raw, ok := data["tags"].([]any); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
	}

	title := get("title")
	if title == "" {
		title = "Knowledge from AI Dojo"
	}
	source := get("source")
	if source == "" {
		source = "AI Dojo"
	}
	knowledgeType := model.KnowledgeType(get("knowledge_type"))
	if knowledgeType == "" {
		knowledgeType = model.KnowledgeGeneral
	}

	return model.KnowledgeNugget{
		Content:   get("content"),
		Title:     title,
		Type:      knowledgeType,
		Archetype: get("archetype"),
		Tags:      tags,
		Source:    source,
		CreatedAt: time.Now(),
	}
}
