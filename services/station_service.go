package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

// defaultStations is the built-in registry used when no stations file is
// configured.
var defaultStations = []models.Station{
	{Name: "New Delhi", Code: "NDLS"},
	{Name: "Mumbai Central", Code: "MMCT"},
	{Name: "Howrah Junction", Code: "HWH"},
	{Name: "Chennai Central", Code: "MAS"},
	{Name: "Bengaluru City", Code: "SBC"},
	{Name: "Pune Junction", Code: "PUNE"},
	{Name: "Hyderabad Deccan", Code: "HYB"},
	{Name: "Ahmedabad Junction", Code: "ADI"},
	{Name: "Jaipur Junction", Code: "JP"},
	{Name: "Lucknow Charbagh", Code: "LKO"},
}

// StationRegistry is the static lookup table of stations. Loaded once at
// startup and immutable afterwards.
type StationRegistry struct {
	stations []models.Station
	byCode   map[string]models.Station
}

// NewStationRegistry builds a registry from the given station list.
func NewStationRegistry(stations []models.Station) *StationRegistry {
	byCode := make(map[string]models.Station, len(stations))
	for _, s := range stations {
		byCode[strings.ToUpper(s.Code)] = s
	}
	return &StationRegistry{stations: stations, byCode: byCode}
}

// LoadStationRegistry loads stations from a YAML file, or returns the
// built-in table when path is empty.
func LoadStationRegistry(path string) (*StationRegistry, error) {
	if path == "" {
		return NewStationRegistry(defaultStations), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stations file: %w", err)
	}

	var file struct {
		Stations []models.Station `yaml:"stations"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing stations file: %w", err)
	}
	if len(file.Stations) == 0 {
		return nil, fmt.Errorf("stations file %s defines no stations", path)
	}
	for _, s := range file.Stations {
		if s.Name == "" || s.Code == "" {
			return nil, fmt.Errorf("stations file %s: every station needs a name and a code", path)
		}
	}

	return NewStationRegistry(file.Stations), nil
}

// All returns the stations in registry order.
func (r *StationRegistry) All() []models.Station {
	out := make([]models.Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// ByCode looks up a station by its code, case-insensitively.
func (r *StationRegistry) ByCode(code string) (models.Station, bool) {
	s, ok := r.byCode[strings.ToUpper(code)]
	return s, ok
}
