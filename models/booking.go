package models

import "time"

// Gender of a passenger.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether the gender is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Passenger represents one traveller on a booking
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

// BookingStatus is the lifecycle state of a booking. Bookings are created
// Confirmed; Cancelled is reserved for a future cancellation flow.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking is a confirmed reservation. The train is a deep snapshot taken at
// confirmation time, so later searches never rewrite booking history.
type Booking struct {
	ID          string        `json:"id"`
	Train       Train         `json:"train"`
	Passengers  []Passenger   `json:"passengers"`
	BookedClass TrainClass    `json:"booked_class"`
	Date        string        `json:"date"`
	TotalFare   int           `json:"total_fare"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BookRequest selects a train and class from the current search results
type BookRequest struct {
	TrainID string     `json:"train_id" binding:"required"`
	Class   TrainClass `json:"class" binding:"required"`
}

// PassengerUpdate carries typed field updates for one passenger row. Only
// non-nil fields are applied.
type PassengerUpdate struct {
	Name   *string `json:"name,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Gender *Gender `json:"gender,omitempty"`
}

// BookingResponse represents a booking confirmation response
type BookingResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Booking *Booking `json:"booking,omitempty"`
}
