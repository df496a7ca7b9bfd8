package handler

import (
	"net/http"

	"copilot.dev/backend/internal/dojo"
	"copilot.dev/backend/internal/http/dto"
	"github.com/gin-gonic/gin"
)

type DojoHandler struct {
	service *dojo.Service
}

func NewDojoHandler(service *dojo.Service) *DojoHandler {
	return &DojoHandler{service: service}
}

func (h *DojoHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DojoChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp := h.service.Chat(ctx, dojo.ChatRequest{
		Message:       req.Message,
		TrainingMode:  req.TrainingMode,
		ClientContext: req.ClientContext,
	})

	c.JSON(http.StatusOK, dto.DojoChatResponse{
		Response:          resp.Response,
		ResponseType:      string(resp.ResponseType),
		StructuredData:    resp.StructuredData,
		ConfidenceLevel:   resp.ConfidenceLevel,
		SuggestedFollowUp: resp.SuggestedFollowUp,
	})
}

func (h *DojoHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DojoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp, err := h.service.Confirm(ctx, dojo.ConfirmRequest{
		SessionID:      req.SessionID,
		StructuredData: req.StructuredData,
		Confirmed:      req.Confirmed,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to save knowledge"})
		return
	}

	c.JSON(http.StatusOK, dto.DojoConfirmResponse{Saved: resp.Saved, NuggetID: resp.NuggetID, Message: resp.Message})
}
