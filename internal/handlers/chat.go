package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsemind/pulsemind-backend/internal/requestdata"
	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := ch.chatService.RecentMessages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}

func (ch *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	msg, err := ch.chatService.PostMessage(c.Request.Context(), rd.UserID, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
