package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

// SendChat appends a chat message and a pending assistant placeholder. The
// placeholder resolves asynchronously; clients poll GetChat and swap the
// message with the matching id when pending turns false.
func (h *Handler) SendChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.SessionFrom(c)
	userMsg, placeholder := h.sessions.SendChat(sess, req.Message)

	c.JSON(http.StatusAccepted, models.ChatResponse{
		Message:     userMsg,
		Placeholder: placeholder,
	})
}

// GetChat returns the session's chat transcript.
func (h *Handler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.ChatTranscript(middleware.SessionFrom(c)))
}
