package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/requestdata"
	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (eh *EventHandler) List(c *gin.Context) {
	events, err := eh.eventService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

func (eh *EventHandler) Create(c *gin.Context) {
	var req services.CreateEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	event, err := eh.eventService.Create(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

func (eh *EventHandler) Join(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	participant, err := eh.eventService.Join(c.Request.Context(), eventID, rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant": participant})
}

func (eh *EventHandler) RespondToJoin(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	participant, err := eh.eventService.RespondToJoin(c.Request.Context(), eventID, participantID, rd.UserID, req.Accept)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"participant": participant})
}

func (eh *EventHandler) MyEvents(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	out, err := eh.eventService.MyEvents(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}

func (eh *EventHandler) React(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
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
	event, err := eh.eventService.React(c.Request.Context(), eventID, rd.UserID, req.Like)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"event": event})
}
