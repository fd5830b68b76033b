package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
)

// Handler bundles the HTTP surface over the session orchestration.
type Handler struct {
	registry  *services.StationRegistry
	sessions  *services.SessionService
	bookings  *services.BookingService
	jwtSecret string
	logger    *logrus.Logger
}

// New creates the API handler.
func New(registry *services.StationRegistry, sessions *services.SessionService, bookings *services.BookingService, jwtSecret string, logger *logrus.Logger) *Handler {
	return &Handler{
		registry:  registry,
		sessions:  sessions,
		bookings:  bookings,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// respondError maps service errors onto HTTP statuses. Validation failures
// stay 4xx; a broken listing invariant is the one 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrLoginRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrTrainNotFound), errors.Is(err, services.ErrNoDraft):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrClassUnavailable):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnknownClass):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
