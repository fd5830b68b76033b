package services

import (
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seededGenerator(seed int64) *AvailabilityGenerator {
	g := NewAvailabilityGenerator(NewStationRegistry(defaultStations), testLogger())
	g.Seed(seed)
	return g
}

func TestGenerateListingInvariants(t *testing.T) {
	trainNumber := regexp.MustCompile(`^[1-9]\d{4}$`)

	for seed := int64(1); seed <= 20; seed++ {
		g := seededGenerator(seed)
		trains := g.Generate("NDLS", "MMCT", "2024-01-01")

		if len(trains) < 3 || len(trains) > 7 {
			t.Fatalf("seed %d: got %d trains, want 3-7", seed, len(trains))
		}

		seen := make(map[string]bool)
		for _, train := range trains {
			if train.ID == "" || seen[train.ID] {
				t.Fatalf("seed %d: duplicate or empty train id %q", seed, train.ID)
			}
			seen[train.ID] = true

			if !trainNumber.MatchString(train.TrainNumber) {
				t.Errorf("seed %d: train number %q is not a 5-digit string", seed, train.TrainNumber)
			}
			if train.TrainName != "New - Mumbai Express" {
				t.Errorf("seed %d: train name = %q", seed, train.TrainName)
			}
			if train.FromCode != "NDLS" || train.ToCode != "MMCT" {
				t.Errorf("seed %d: route %s -> %s", seed, train.FromCode, train.ToCode)
			}

			dep, err := time.Parse("15:04", train.DepartureTime)
			if err != nil {
				t.Fatalf("seed %d: bad departure time %q: %v", seed, train.DepartureTime, err)
			}
			if _, err := time.Parse("15:04", train.ArrivalTime); err != nil {
				t.Fatalf("seed %d: bad arrival time %q: %v", seed, train.ArrivalTime, err)
			}
			if dep.Hour() < 5 || dep.Hour() > 22 {
				t.Errorf("seed %d: departure hour %d outside 05-22", seed, dep.Hour())
			}
			if dep.Minute()%15 != 0 {
				t.Errorf("seed %d: departure minute %d not quantized", seed, dep.Minute())
			}

			if len(train.Availability) != len(models.TrainClasses) {
				t.Fatalf("seed %d: %d availability entries, want %d", seed, len(train.Availability), len(models.TrainClasses))
			}
			for i, sa := range train.Availability {
				if sa.Class != models.TrainClasses[i] {
					t.Errorf("seed %d: availability[%d] = %q, want %q", seed, i, sa.Class, models.TrainClasses[i])
				}
				if sa.Seats < 0 || sa.Seats >= 150 {
					t.Errorf("seed %d: seats %d out of range", seed, sa.Seats)
				}
				base := (i + 1) * 250
				if sa.Fare < base || sa.Fare >= base+200 {
					t.Errorf("seed %d: class %q fare %d outside [%d,%d)", seed, sa.Class, sa.Fare, base, base+200)
				}
			}
		}
	}
}

func TestGenerateSameOriginAndDestination(t *testing.T) {
	g := seededGenerator(1)

	if trains := g.Generate("NDLS", "NDLS", "2024-01-01"); len(trains) != 0 {
		t.Fatalf("got %d trains for NDLS -> NDLS, want none", len(trains))
	}
	if trains := g.Generate("ndls", "NDLS", "2024-01-01"); len(trains) != 0 {
		t.Fatalf("same-station check should be case-insensitive")
	}
}

func TestGenerateUnknownStation(t *testing.T) {
	g := seededGenerator(1)

	if trains := g.Generate("XXXX", "MMCT", "2024-01-01"); len(trains) != 0 {
		t.Fatalf("unknown origin should yield no trains")
	}
	if trains := g.Generate("NDLS", "XXXX", "2024-01-01"); len(trains) != 0 {
		t.Fatalf("unknown destination should yield no trains")
	}
}

func TestGenerateSeededDeterminism(t *testing.T) {
	a := seededGenerator(42).Generate("HWH", "MAS", "2024-06-01")
	b := seededGenerator(42).Generate("HWH", "MAS", "2024-06-01")

	if len(a) != len(b) {
		t.Fatalf("same seed produced %d and %d trains", len(a), len(b))
	}
	for i := range a {
		if a[i].TrainNumber != b[i].TrainNumber || a[i].DepartureTime != b[i].DepartureTime {
			t.Fatalf("same seed diverged at train %d: %+v vs %+v", i, a[i], b[i])
		}
		for j := range a[i].Availability {
			if a[i].Availability[j] != b[i].Availability[j] {
				t.Fatalf("same seed diverged in availability: %+v vs %+v", a[i].Availability[j], b[i].Availability[j])
			}
		}
	}
}
