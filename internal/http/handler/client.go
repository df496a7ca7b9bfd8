package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"copilot.dev/backend/internal/http/dto"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/store"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clients  store.ClientStore
	sessions store.SessionStore
}

func NewClientHandler(clients store.ClientStore, sessions store.SessionStore) *ClientHandler {
	return &ClientHandler{clients: clients, sessions: sessions}
}

func (h *ClientHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	client, err := h.clients.CreateClient(ctx, model.Client{
		Archetype: req.Archetype,
		Tags:      req.Tags,
		Notes:     req.Notes,
		Alias:     req.Alias,
	})
	if err != nil {
		slog.ErrorContext(ctx, "create client failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 20)

	clients, err := h.clients.ListClients(ctx, skip, limit)
	if err != nil {
		slog.ErrorContext(ctx, "list clients failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid client id"})
		return
	}

	client, err := h.clients.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "client not found"})
			return
		}
		slog.ErrorContext(ctx, "get client failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	clientID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid client id"})
		return
	}

	// Body is optional: {session_type?, notes?} per spec.md §6.
	var req dto.CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
	}

	if _, err := h.clients.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to verify client"})
		return
	}

	session, err := h.sessions.CreateSession(ctx, &clientID, model.SessionActive)
	if err != nil {
		slog.ErrorContext(ctx, "create session failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *ClientHandler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	clientID, ok := pathInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid client id"})
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)
	onlyActive := c.Query("only_active") == "true"

	sessions, total, err := h.clients.ListSessionsForClient(ctx, clientID, page, pageSize, onlyActive)
	if err != nil {
		slog.ErrorContext(ctx, "list sessions failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedSessions{Items: sessions, Total: total, Page: page, PageSize: pageSize})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func pathInt64(c *gin.Context, key string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(key), 10, 64)
	return v, err == nil
}
