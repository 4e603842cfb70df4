package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/requestdata"
	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type ModerationHandler struct {
	moderationService services.ModerationService
}

func NewModerationHandler(moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Flag files a manual report against someone else's content.
func (mh *ModerationHandler) Flag(c *gin.Context) {
	var req struct {
		ContentType string `json:"content_type"`
		ContentID   string `json:"content_id"`
		AuthorID    string `json:"author_id"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	flag, err := mh.moderationService.FlagManually(c.Request.Context(), rd.UserID, req.ContentType, contentID, authorID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"flag": flag})
}

func (mh *ModerationHandler) Queue(c *gin.Context) {
	flags, err := mh.moderationService.PendingQueue(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"flags": flags})
}

func (mh *ModerationHandler) Review(c *gin.Context) {
	flagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag id"})
		return
	}
	var req struct {
		Status string `json:"status"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	flag, err := mh.moderationService.Review(c.Request.Context(), rd.UserID, flagID, req.Status, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"flag": flag})
}
