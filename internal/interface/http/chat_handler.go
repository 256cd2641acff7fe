package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/application"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/middleware"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/response"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/validation"
)

type ChatHandler struct {
	Svc *application.ChatService
}

func NewChatHandler(svc *application.ChatService) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Relay POST /api/chat
// Forwards the authenticated user's message to the assistant backend. When
// the upstream fails the client gets the fixed fallback reply; provider error
// details stay in server logs.
func (h *ChatHandler) Relay(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	reply, err := h.Svc.Relay(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Message)
	if err != nil {
		if errors.Is(err, application.ErrMessageTooLong) {
			response.Err(c, http.StatusBadRequest, "message too long")
			return
		}
		response.JSON(c, http.StatusInternalServerError, gin.H{"reply": application.FallbackReply})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"reply": reply})
}
