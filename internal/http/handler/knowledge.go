package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"copilot.dev/backend/internal/http/dto"
	"copilot.dev/backend/internal/knowledge"
	"copilot.dev/backend/internal/model"
	"github.com/gin-gonic/gin"
)

// knowledgeScanLimit bounds the in-handler GET /knowledge scan — see
// DESIGN.md's open-question note on Retriever.GetAll lacking native
// pagination/filtering.
const knowledgeScanLimit = 5000

type KnowledgeHandler struct {
	retriever knowledge.Retriever
}

func NewKnowledgeHandler(retriever knowledge.Retriever) *KnowledgeHandler {
	return &KnowledgeHandler{retriever: retriever}
}

func (h *KnowledgeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateNuggetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ids, err := h.retriever.BulkUpsert(ctx, []model.KnowledgeNugget{nuggetFromRequest(req)})
	if err != nil {
		h.writeUpsertError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": ids[0]})
}

func (h *KnowledgeHandler) BulkCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkNuggetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if len(req.Items) > dto.MaxBulkNuggets {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("bulk request exceeds the %d item cap", dto.MaxBulkNuggets)})
		return
	}

	nuggets := make([]model.KnowledgeNugget, len(req.Items))
	for i, item := range req.Items {
		nuggets[i] = nuggetFromRequest(item)
	}

	ids, err := h.retriever.BulkUpsert(ctx, nuggets)
	if err != nil {
		h.writeUpsertError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkNuggetsResponse{
		SuccessCount: len(ids),
		ErrorCount:   0,
		CreatedIDs:   ids,
	})
}

func (h *KnowledgeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 20)
	knowledgeType := c.Query("knowledge_type")
	archetype := c.Query("archetype")
	search := c.Query("search")

	// GetAll has no native pagination/filtering; the vector stores only
	// index for similarity search, not relational predicates, so the
	// filter/page pass runs in-handler over a generously capped scan.
	all, err := h.retriever.GetAll(ctx, knowledgeScanLimit)
	if err != nil {
		slog.ErrorContext(ctx, "list knowledge failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list knowledge"})
		return
	}

	filtered := make([]model.KnowledgeNugget, 0, len(all))
	for _, n := range all {
		if knowledgeType != "" && string(n.Type) != knowledgeType {
			continue
		}
		if archetype != "" && n.Archetype != archetype {
			continue
		}
		if search != "" && !containsFold(n.Content, search) && !containsFold(n.Title, search) {
			continue
		}
		filtered = append(filtered, n)
	}

	total := len(filtered)
	start := (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, dto.PaginatedNuggets{Items: filtered[start:end], Total: total, Page: page, PageSize: size})
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 3
	}

	results, err := h.retriever.Search(ctx, req.Query, req.Archetype, req.KnowledgeType, limit)
	if err != nil {
		slog.ErrorContext(ctx, "search knowledge failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to search knowledge"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *KnowledgeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid knowledge id"})
		return
	}

	if err := h.retriever.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "delete knowledge failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete knowledge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *KnowledgeHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	health, err := h.retriever.Health(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:           health.Status,
		CollectionExists: &health.CollectionExists,
		DocumentCount:    &health.DocumentCount,
	})
}

func (h *KnowledgeHandler) writeUpsertError(c *gin.Context, err error) {
	if errors.Is(err, knowledge.ErrDimensionMismatch) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "embedding dimension mismatch"})
		return
	}
	slog.ErrorContext(c.Request.Context(), "knowledge upsert failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to save knowledge"})
}

func nuggetFromRequest(req dto.CreateNuggetRequest) model.KnowledgeNugget {
	knowledgeType := model.KnowledgeType(req.KnowledgeType)
	if knowledgeType == "" {
		knowledgeType = model.KnowledgeGeneral
	}
	return model.KnowledgeNugget{
		Content:   req.Content,
		Title:     req.Title,
		Type:      knowledgeType,
		Archetype: req.Archetype,
		Tags:      req.Tags,
		Source:    req.Source,
		CreatedAt: time.Now(),
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
