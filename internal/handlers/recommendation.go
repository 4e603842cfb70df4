package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/requestdata"
	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (rh *RecommendationHandler) List(c *gin.Context) {
	recs, err := rh.recommendationService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recs})
}

func (rh *RecommendationHandler) Create(c *gin.Context) {
	var req struct {
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	rec, err := rh.recommendationService.Create(c.Request.Context(), rd.UserID, req.Type, req.Title, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recommendation": rec})
}

func (rh *RecommendationHandler) React(c *gin.Context) {
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendation id"})
		return
	}
	var req struct {
		Like bool `json:"like"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	rec, err := rh.recommendationService.React(c.Request.Context(), recID, rd.UserID, req.Like)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendation": rec})
}
