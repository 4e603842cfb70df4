package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps the service error vocabulary onto status codes.
// A moderation rejection is a 400 that carries the flagged terms back to
// the submitter.
func respondServiceError(c *gin.Context, err error) {
	if rejected, ok := services.AsContentRejected(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "content rejected by moderation",
			"toxicity_score": rejected.Score,
			"flagged_terms":  rejected.FlaggedTerms,
		})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondError(c, http.StatusBadRequest, "bad_request", err)
}
