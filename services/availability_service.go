package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

// quarterHours are the minute values departure and duration snap to.
var quarterHours = []int{0, 15, 30, 45}

// AvailabilityGenerator produces synthetic train listings for a route query.
// There is no real inventory behind it: every call regenerates from scratch.
type AvailabilityGenerator struct {
	registry *StationRegistry
	logger   *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAvailabilityGenerator creates a generator seeded from the clock.
func NewAvailabilityGenerator(registry *StationRegistry, logger *logrus.Logger) *AvailabilityGenerator {
	return &AvailabilityGenerator{
		registry: registry,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed replaces the random source so tests can make generation deterministic.
func (g *AvailabilityGenerator) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = rand.New(rand.NewSource(seed))
}

// Generate returns 3-7 candidate trains between the two station codes.
// Unknown codes or an origin equal to the destination yield an empty result,
// not an error: the UI renders that as "no trains found".
func (g *AvailabilityGenerator) Generate(fromCode, toCode, date string) []models.Train {
	if strings.EqualFold(fromCode, toCode) {
		return nil
	}

	from, ok := g.registry.ByCode(fromCode)
	if !ok {
		g.logger.WithField("code", fromCode).Warn("unknown origin station")
		return nil
	}
	to, ok := g.registry.ByCode(toCode)
	if !ok {
		g.logger.WithField("code", toCode).Warn("unknown destination station")
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	count := g.rng.Intn(5) + 3
	trains := make([]models.Train, 0, count)
	for i := 0; i < count; i++ {
		trains = append(trains, g.makeTrain(from, to))
	}

	g.logger.WithFields(logrus.Fields{
		"from":  from.Code,
		"to":    to.Code,
		"date":  date,
		"count": count,
	}).Info("generated train listings")

	return trains
}

func (g *AvailabilityGenerator) makeTrain(from, to models.Station) models.Train {
	// Departures run 05:00-22:45 in 15-minute steps.
	depHour := g.rng.Intn(18) + 5
	depMinute := quarterHours[g.rng.Intn(4)]

	// Trips take between 4h and 13h45m.
	durHours := g.rng.Intn(10) + 4
	durMinutes := quarterHours[g.rng.Intn(4)]

	// Arrival wraps past midnight with no day marker; only the clock time is
	// shown, matching the departure/arrival display format.
	departure := time.Date(2000, 1, 1, depHour, depMinute, 0, 0, time.UTC)
	arrival := departure.Add(time.Duration(durHours)*time.Hour + time.Duration(durMinutes)*time.Minute)

	availability := make([]models.SeatAvailability, 0, len(models.TrainClasses))
	for idx, class := range models.TrainClasses {
		seats := 0
		if g.rng.Float64() > 0.2 {
			seats = g.rng.Intn(150)
		}
		availability = append(availability, models.SeatAvailability{
			Class: class,
			Seats: seats,
			Fare:  (idx+1)*250 + g.rng.Intn(200),
		})
	}

	return models.Train{
		ID:            uuid.NewString(),
		TrainNumber:   strconv.Itoa(g.rng.Intn(90000) + 10000),
		TrainName:     fmt.Sprintf("%s - %s Express", firstWord(from.Name), firstWord(to.Name)),
		From:          from.Name,
		FromCode:      from.Code,
		To:            to.Name,
		ToCode:        to.Code,
		DepartureTime: departure.Format("15:04"),
		ArrivalTime:   arrival.Format("15:04"),
		Duration:      fmt.Sprintf("%dh %dm", durHours, durMinutes),
		Availability:  availability,
	}
}

func firstWord(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
