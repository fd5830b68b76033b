package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
)

// CreateDraft opens a booking draft for a train and class from the current
// results. Unauthenticated callers get a 401; the client shows the login
// overlay and re-invokes after logging in (the booking is not auto-resumed).
func (h *Handler) CreateDraft(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.sessions.Book(sess, req.TrainID, req.Class); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.sessions.Snapshot(sess).Draft)
}

// GetDraft returns the current draft with the computed total fare.
func (h *Handler) GetDraft(c *gin.Context) {
	view := h.sessions.Snapshot(middleware.SessionFrom(c))
	if view.Draft == nil {
		respondError(c, services.ErrNoDraft)
		return
	}

	fare, err := h.bookings.PriceFor(&view.Draft.Train, view.Draft.Class)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":      view.Draft,
		"total_fare": fare * len(view.Draft.Passengers),
	})
}

// CancelDraft discards the draft and returns to the search results.
func (h *Handler) CancelDraft(c *gin.Context) {
	if err := h.sessions.Back(middleware.SessionFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddPassenger appends a default passenger row to the draft.
func (h *Handler) AddPassenger(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if err := h.sessions.AddPassenger(sess); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Snapshot(sess).Draft)
}

// UpdatePassenger applies typed field updates to one passenger row.
func (h *Handler) UpdatePassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}

	var update models.PassengerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.sessions.UpdatePassenger(sess, index, update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Snapshot(sess).Draft)
}

// RemovePassenger removes one passenger row. Removing the last row is
// rejected and leaves the draft unchanged.
func (h *Handler) RemovePassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.sessions.RemovePassenger(sess, index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Snapshot(sess).Draft)
}

// ConfirmBooking turns the draft into a confirmed booking.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	booking, err := h.sessions.ConfirmBooking(sess)
	if err != nil {
		h.logger.WithError(err).Warn("booking rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Booking confirmed",
		Booking: booking,
	})
}

// Dashboard lists the session's booking history, most recent first.
func (h *Handler) Dashboard(c *gin.Context) {
	bookings, err := h.sessions.Dashboard(middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
