package allocation

import (
	"math"
	"time"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
)

const (
	baseImportance  = 1.0
	majorCityWeight = 0.5
	// travelDays reserved between two consecutive cities
	travelDays = 1
)

// CityNightsAllocation is the stay assigned to one city
type CityNightsAllocation struct {
	City          models.CityDestination `json:"city"`
	Nights        int                    `json:"nights"`
	ArrivalDate   time.Time              `json:"arrival_date"`
	DepartureDate time.Time              `json:"departure_date"`
}

// Allocator splits a date range into per-city stays
type Allocator interface {
	Allocate(cities []models.CityDestination, startDate, endDate time.Time, prefs models.TripPreferences) []CityNightsAllocation
}

type nightAllocator struct {
	isMajor func(models.CityDestination) bool
}

// NewNightAllocator creates an allocator that weights catalog major cities higher
func NewNightAllocator() Allocator {
	return &nightAllocator{isMajor: catalog.IsMajorCity}
}

// Allocate assigns nights proportionally to importance, clamps them to the
// preference bounds and floors them at one. The sum may exceed the available
// nights for tight ranges; that slack is left in place.
func (a *nightAllocator) Allocate(cities []models.CityDestination, startDate, endDate time.Time, prefs models.TripPreferences) []CityNightsAllocation {
	if len(cities) == 0 {
		return []CityNightsAllocation{}
	}
	prefs = prefs.WithDefaults()

	totalNights := DaysBetween(startDate, endDate)
	availableNights := max(0, totalNights-(len(cities)-1)*travelDays)

	scores := make([]float64, len(cities))
	var totalScore float64
	for i, c := range cities {
		scores[i] = a.importance(c)
		totalScore += scores[i]
	}

	allocations := make([]CityNightsAllocation, len(cities))
	arrival := StartOfDay(startDate)
	for i, c := range cities {
		share := int(math.Round(scores[i] / totalScore * float64(availableNights)))
		nights := max(1, clamp(share, prefs.MinNightsPerCity, prefs.MaxNightsPerCity))

		departure := AddDays(arrival, nights)
		allocations[i] = CityNightsAllocation{
			City:          c,
			Nights:        nights,
			ArrivalDate:   arrival,
			DepartureDate: departure,
		}
		arrival = AddDays(departure, travelDays)
	}

	return allocations
}

func (a *nightAllocator) importance(c models.CityDestination) float64 {
	score := baseImportance
	if a.isMajor(c) {
		score += majorCityWeight
	}
	return score
}

// TotalNights sums the nights of an allocation
func TotalNights(allocations []CityNightsAllocation) int {
	total := 0
	for _, a := range allocations {
		total += a.Nights
	}
	return total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
