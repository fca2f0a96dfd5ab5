package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wellbot/internal/chat"
	"wellbot/internal/models"
	"wellbot/internal/responder"
)

type ChatHandler interface {
	SendMessage(c *gin.Context)
	GetHistory(c *gin.Context)
}

type chatHandler struct {
	pipeline *chat.Pipeline
	sessions *chat.SessionStore
	logger   *zap.Logger
}

func NewChatHandler(pipeline *chat.Pipeline, sessions *chat.SessionStore, logger *zap.Logger) ChatHandler {
	return &chatHandler{pipeline: pipeline, sessions: sessions, logger: logger}
}

type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
}

// SendMessage handles POST /api/chat
func (h *chatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for chat message", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.UserIdentity{Name: req.Name, Contact: req.Contact}
	// Authenticated sessions carry the account's name over any
	// body-supplied one.
	if name, ok := c.Get("name"); ok {
		if s, _ := name.(string); s != "" {
			user.Name = s
		}
	}

	entry := h.pipeline.Process(c.Request.Context(), req.SessionID, req.Message, user)

	response := gin.H{
		"session_id":   entry.Message.SessionID,
		"reply":        entry.Reply,
		"mode":         entry.Mode,
		"risk_score":   entry.Assessment.RiskScore,
		"crisis_level": entry.Assessment.CrisisLevel,
		"sentiment":    entry.Assessment.SentimentLabel,
		"state":        entry.State,
	}
	if entry.AlertState != "" {
		response["alert_state"] = entry.AlertState
	}
	if entry.Mode == models.ModeCrisis {
		response["resources"] = responder.EmergencyResources
	}

	c.JSON(http.StatusOK, response)
}

// GetHistory handles GET /api/chat/:session_id/history
func (h *chatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "history": h.sessions.History(sessionID)})
}
