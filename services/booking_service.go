package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

var (
	// ErrNoPassengers rejects a booking without at least one passenger.
	ErrNoPassengers = errors.New("booking requires at least one passenger")

	// ErrClassUnavailable rejects booking a waitlisted (zero-seat) class.
	ErrClassUnavailable = errors.New("selected class has no seats available")

	// ErrUnknownClass means the class is missing from the train's
	// availability. Every listing carries every class, so this indicates a
	// corrupted listing; the operation is refused rather than guessing a fare.
	ErrUnknownClass = errors.New("selected class is not offered on this train")
)

// BookingService computes fares and builds booking records. It never touches
// seat inventory: listings are synthetic and each booking stands alone.
type BookingService struct {
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

// NewBookingService creates a booking service.
func NewBookingService(logger *logrus.Logger) *BookingService {
	return &BookingService{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// PriceFor returns the per-passenger fare for the class on the given train.
func (s *BookingService) PriceFor(train *models.Train, class models.TrainClass) (int, error) {
	sa, ok := train.AvailabilityFor(class)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"train": train.TrainNumber,
			"class": class,
		}).Error("train listing is missing a fare class")
		return 0, ErrUnknownClass
	}
	return sa.Fare, nil
}

// ConfirmBooking validates the selection and produces a Confirmed booking.
// The total fare is always fare(class) x passenger count, and the train is
// deep-copied so the booking survives the listings being regenerated.
func (s *BookingService) ConfirmBooking(train *models.Train, class models.TrainClass, passengers []models.Passenger, date string) (*models.Booking, error) {
	if len(passengers) == 0 {
		return nil, ErrNoPassengers
	}

	sa, ok := train.AvailabilityFor(class)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"train": train.TrainNumber,
			"class": class,
		}).Error("train listing is missing a fare class")
		return nil, ErrUnknownClass
	}
	if sa.Waitlisted() {
		return nil, ErrClassUnavailable
	}

	pax := make([]models.Passenger, len(passengers))
	copy(pax, passengers)

	booking := &models.Booking{
		ID:          s.newID(),
		Train:       train.Clone(),
		Passengers:  pax,
		BookedClass: class,
		Date:        date,
		TotalFare:   sa.Fare * len(pax),
		Status:      models.BookingConfirmed,
		CreatedAt:   s.now(),
	}

	s.logger.WithFields(logrus.Fields{
		"booking":    booking.ID,
		"train":      train.TrainNumber,
		"class":      class,
		"passengers": len(pax),
		"total_fare": booking.TotalFare,
	}).Info("booking confirmed")

	return booking, nil
}
