package handler

import (
	"net/http"

	"copilot.dev/backend/internal/http/dto"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/store"
	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	sessions store.SessionStore
}

func NewInteractionHandler(sessions store.SessionStore) *InteractionHandler {
	return &InteractionHandler{sessions: sessions}
}

func (h *InteractionHandler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()
	interactionID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid interaction id"})
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	feedback := model.Feedback{SuggestionID: req.SuggestionID, SuggestionType: req.SuggestionType, Score: req.Score}
	if err := h.sessions.AttachFeedback(ctx, interactionID, feedback); err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}
