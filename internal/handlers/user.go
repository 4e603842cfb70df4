package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/requestdata"
	"github.com/pulsemind/pulsemind-backend/internal/services"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
)

type UserHandler struct {
	userService       services.UserService
	engagementService services.EngagementService
}

func NewUserHandler(userService services.UserService, engagementService services.EngagementService) *UserHandler {
	return &UserHandler{userService: userService, engagementService: engagementService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) Readiness(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	report, err := uh.userService.Readiness(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}

func (uh *UserHandler) TrackEngagement(c *gin.Context) {
	var req struct {
		Action    string   `json:"action"`
		MoodScore *float64 `json:"mood_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	result, err := uh.engagementService.TrackEngagement(
		c.Request.Context(),
		rd.UserID,
		req.Action,
		trust.EngagementPayload{MoodScore: req.MoodScore},
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (uh *UserHandler) EngagementHistory(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	events, err := uh.engagementService.History(c.Request.Context(), rd.UserID, 50)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

// AdjustReputation applies community feedback to another user, never to
// yourself.
func (uh *UserHandler) AdjustReputation(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id"`
		Positive bool   `json:"positive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if targetID == rd.UserID {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("you cannot rate yourself"))
		return
	}
	user, err := uh.userService.AdjustReputation(c.Request.Context(), targetID, req.Positive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}
