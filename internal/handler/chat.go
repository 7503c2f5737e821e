package handler

import (
	"context"
	"net/http"

	"placesbot/internal/model"

	"github.com/gin-gonic/gin"
)

// ChatService is the conversation pipeline consumed by the chat endpoints
type ChatService interface {
	Turn(ctx context.Context, req model.ChatRequest) model.ChatResponse
	History(sessionID string) ([]model.Message, bool)
}

// ChatHandler handles assistant conversation HTTP requests
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Turn handles POST /api/v1/chat
func (h *ChatHandler) Turn(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp := h.chat.Turn(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/v1/chat/:session_id/history
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, ok := h.chat.History(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, model.HistoryResponse{SessionID: sessionID, Messages: messages})
}
