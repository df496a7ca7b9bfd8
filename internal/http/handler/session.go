package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"copilot.dev/backend/internal/http/dto"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/pipeline"
	"copilot.dev/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// tokenPace is the minimum delay between streamed tokens, per spec.md
// §6's server-sent-events requirement of a human-readable typing cadence.
const tokenPace = 120 * time.Millisecond

type SessionHandler struct {
	sessions store.SessionStore
	orch     *pipeline.Orchestrator
}

func NewSessionHandler(sessions store.SessionStore, orch *pipeline.Orchestrator) *SessionHandler {
	return &SessionHandler{sessions: sessions, orch: orch}
}

func (h *SessionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	sctx, err := h.sessions.GetSessionContext(ctx, id)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	includeClient := c.Query("include_client") == "true"
	includeInteractions := c.Query("include_interactions") == "true"

	resp := gin.H{"session": sctx.Session}
	if includeClient {
		resp["client"] = sctx.Client
	}
	if includeInteractions {
		resp["interactions"] = sctx.Interactions
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) End(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	// summary/outcome are accepted for API-contract compatibility
	// (spec.md §6) but the session store persists only lifecycle state;
	// free-text wrap-up notes belong on the client's Notes field.
	var req dto.EndSessionRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}

	session, err := h.sessions.EndSession(ctx, id)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	if err := h.sessions.DeleteSession(ctx, id); err != nil {
		writeStoreError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) CreateInteraction(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	var req dto.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	interaction, err := h.runTurn(ctx, sessionID, req)
	if err != nil {
		writeTurnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interaction)
}

func (h *SessionHandler) ListInteractions(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)

	interactions, total, err := h.sessions.ListInteractions(ctx, sessionID, page, pageSize)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedInteractions{Items: interactions, Total: total, Page: page, PageSize: pageSize})
}

// StreamInteraction runs the same pipeline turn as CreateInteraction but
// streams the quick response back token by token over Server-Sent Events,
// ending with a stream_end event carrying the full StrategyResponse.
func (h *SessionHandler) StreamInteraction(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid session id"})
		return
	}

	var req dto.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	interaction, err := h.runTurn(ctx, sessionID, req)
	if err != nil {
		writeTurnError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	tokens := strings.Fields(interaction.AIResponse.QuickResponse.Text)
	ticker := time.NewTicker(tokenPace)
	defer ticker.Stop()

	i := 0
	c.Stream(func(w gin.ResponseWriter) bool {
		if i >= len(tokens) {
			sendSSE(w, "stream_end", interaction.AIResponse)
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			sendSSE(w, "token", gin.H{"token": tokens[i]})
			i++
			return true
		}
	})
}

// runTurn dispatches to AnswerClarifyingQuestion when the caller is
// resolving a previously suggested clarifying question, otherwise treats
// the body as a fresh seller observation.
func (h *SessionHandler) runTurn(ctx context.Context, sessionID int64, req dto.CreateInteractionRequest) (model.Interaction, error) {
	if req.ClarifyingAnswer != nil {
		return h.orch.AnswerClarifyingQuestion(ctx, sessionID, req.ClarifyingAnswer.QuestionID, req.ClarifyingAnswer.Answer)
	}
	return h.orch.ProcessObservation(ctx, sessionID, req.UserInput, req.ParentInteractionID)
}

func sendSSE(w gin.ResponseWriter, event string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", body)
	w.Flush()
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	slog.ErrorContext(c.Request.Context(), "store operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

func writeTurnError(c *gin.Context, err error) {
	var turnErr *pipeline.TurnError
	if errors.As(err, &turnErr) {
		if errors.Is(turnErr, pipeline.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "session not found"})
			return
		}
		if turnErr.Retryable {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "pipeline temporarily unavailable, retry"})
			return
		}
	}
	slog.ErrorContext(c.Request.Context(), "pipeline turn failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
