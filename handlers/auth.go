package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
	"github.com/itsrohitnegi1/indian-railways-booking-app/utils"
)

// Login performs the simulated login. Whatever credentials arrive, the demo
// user is signed in and a bearer token is issued.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	_ = c.ShouldBindJSON(&req) // credentials are ignored, the login is simulated

	sess := middleware.SessionFrom(c)
	user := h.sessions.Login(sess)

	token, err := utils.GenerateToken(h.jwtSecret, user)
	if err != nil {
		h.logger.WithError(err).Error("failed to sign login token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{User: user, Token: token})
}

// Logout clears the session user and returns the session to the home page.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Logout(middleware.SessionFrom(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession returns a read-only snapshot of the whole session state.
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Snapshot(middleware.SessionFrom(c)))
}
