package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
)

// Converser is what the handler needs from the chat service.
type Converser interface {
	Converse(ctx context.Context, userID uint, message string) (string, []models.Suggestion, error)
}

type ChatController struct {
	chat Converser
	hub  *Hub
}

func NewChatController(chat Converser, hub *Hub) *ChatController {
	return &ChatController{chat: chat, hub: hub}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Send relays the user's message to the assistant and returns the reply
// along with any keyword-derived suggestion.
func (ctl *ChatController) Send(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		httperr.Write(c, httperr.InvalidInput("Message required"))
		return
	}

	reply, suggestions, err := ctl.chat.Converse(c.Request.Context(), userID, req.Message)
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	for _, s := range suggestions {
		if s.Type == models.SuggestionCritical {
			ctl.hub.NotifyCritical(userID, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"response":    reply,
		"suggestions": suggestions,
		"timestamp":   time.Now(),
	})
}
