package models

// TrainClass is a travel-comfort tier with its own seat pool and fare.
// The values are display labels and must match the UI exactly.
type TrainClass string

const (
	ClassSleeper TrainClass = "Sleeper (SL)"
	ClassAC3     TrainClass = "AC 3 Tier (3A)"
	ClassAC2     TrainClass = "AC 2 Tier (2A)"
	ClassAC1     TrainClass = "AC 1st Class (1A)"
	ClassGeneral TrainClass = "General (GN)"
)

// TrainClasses lists every class in fare order. The position index drives
// the base-fare multiplier, so the order is part of the pricing contract.
var TrainClasses = []TrainClass{
	ClassSleeper,
	ClassAC3,
	ClassAC2,
	ClassAC1,
	ClassGeneral,
}

// Index returns the position of the class in the fare ordering, or -1 for
// an unknown class.
func (tc TrainClass) Index() int {
	for i, c := range TrainClasses {
		if c == tc {
			return i
		}
	}
	return -1
}

// Valid reports whether the class is one of the known fare classes.
func (tc TrainClass) Valid() bool {
	return tc.Index() >= 0
}

// SeatAvailability is the per-class seat count and fare on one train listing.
type SeatAvailability struct {
	Class TrainClass `json:"class"`
	Seats int        `json:"seats"`
	Fare  int        `json:"fare"`
}

// Waitlisted reports whether the class has no seats left. A waitlisted class
// is shown but cannot be booked.
func (sa SeatAvailability) Waitlisted() bool {
	return sa.Seats == 0
}

// Train is one generated listing for a route search. Listings are ephemeral:
// a new search discards the previous ones.
type Train struct {
	ID            string             `json:"id"`
	TrainNumber   string             `json:"train_number"`
	TrainName     string             `json:"train_name"`
	From          string             `json:"from"`
	FromCode      string             `json:"from_code"`
	To            string             `json:"to"`
	ToCode        string             `json:"to_code"`
	DepartureTime string             `json:"departure_time"`
	ArrivalTime   string             `json:"arrival_time"`
	Duration      string             `json:"duration"`
	Availability  []SeatAvailability `json:"availability"`
}

// AvailabilityFor returns the seat availability entry for the given class.
func (t *Train) AvailabilityFor(class TrainClass) (SeatAvailability, bool) {
	for _, sa := range t.Availability {
		if sa.Class == class {
			return sa, true
		}
	}
	return SeatAvailability{}, false
}

// Clone returns a deep copy of the listing, so booking snapshots stay
// independent of later searches.
func (t *Train) Clone() Train {
	clone := *t
	clone.Availability = make([]SeatAvailability, len(t.Availability))
	copy(clone.Availability, t.Availability)
	return clone
}

// SearchRequest represents a route search query
type SearchRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
	Date string `json:"date" binding:"required"`
}

// SearchResponse represents the state of the current search
type SearchResponse struct {
	Loading bool    `json:"loading"`
	Trains  []Train `json:"trains"`
}
