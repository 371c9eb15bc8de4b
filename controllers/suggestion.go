package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
	"github.com/bst-coder/irrigation-last/services"
)

// SuggestionEngine is what the handler needs from the suggestion service.
type SuggestionEngine interface {
	Evaluate(userID uint) ([]models.Suggestion, error)
	Acknowledge(suggestionID string, userID uint) (*models.AckRecord, error)
}

type SuggestionController struct {
	engine SuggestionEngine
}

func NewSuggestionController(engine SuggestionEngine) *SuggestionController {
	return &SuggestionController{engine: engine}
}

type ackRequest struct {
	SuggestionID string `json:"suggestionId"`
}

// List recomputes the caller's suggestions from live sensor data.
func (ctl *SuggestionController) List(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	suggestions, err := ctl.engine.Evaluate(userID)
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
		"timestamp":   time.Now(),
	})
}

// Acknowledge appends an audit record for the suggestion. It does not
// suppress regeneration: a still-true condition re-emits the same id on
// the next evaluation.
func (ctl *SuggestionController) Acknowledge(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var req ackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.InvalidInput("Suggestion ID required"))
		return
	}

	// The engine owns the missing-id rule; the handler only maps it.
	if _, err := ctl.engine.Acknowledge(req.SuggestionID, userID); err != nil {
		if errors.Is(err, services.ErrMissingSuggestionID) {
			httperr.Write(c, httperr.InvalidInput("Suggestion ID required"))
			return
		}
		httperr.Write(c, httperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Suggestion acknowledged",
		"timestamp": time.Now(),
	})
}
