package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
)

// GetStations returns the station registry
func (h *Handler) GetStations(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.All())
}

// GetClasses returns the ordered fare class enumeration
func (h *Handler) GetClasses(c *gin.Context) {
	c.JSON(http.StatusOK, models.TrainClasses)
}

// SearchTrains starts an asynchronous route search for the session. The
// response only acknowledges the search; clients poll GetSearchResults until
// loading turns false.
func (h *Handler) SearchTrains(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.SessionFrom(c)
	h.sessions.Search(sess, services.SearchQuery{From: req.From, To: req.To, Date: req.Date})

	c.JSON(http.StatusAccepted, models.SearchResponse{Loading: true})
}

// GetSearchResults returns the current search state: either still loading or
// the listings of the most recent query.
func (h *Handler) GetSearchResults(c *gin.Context) {
	view := h.sessions.Snapshot(middleware.SessionFrom(c))
	c.JSON(http.StatusOK, models.SearchResponse{Loading: view.Loading, Trains: view.Trains})
}
