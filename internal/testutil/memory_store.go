package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/models"
)

// MemoryStore is an in-memory database.DataStore for testing
type MemoryStore struct {
	trips *MemoryTripRepository
	// HealthErr is returned by HealthCheck when set
	HealthErr error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: &MemoryTripRepository{trips: make(map[string]*models.MultiCityTrip)}}
}

func (s *MemoryStore) Close() error                          { return nil }
func (s *MemoryStore) HealthCheck(ctx context.Context) error { return s.HealthErr }
func (s *MemoryStore) Trips() database.TripRepository        { return s.trips }

// MemoryTripRepository keeps deep copies of saved trips
type MemoryTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*models.MultiCityTrip
}

func (r *MemoryTripRepository) List(ctx context.Context, limit, offset int) ([]models.TripSummary, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.TripSummary, 0, len(r.trips))
	for _, t := range r.trips {
		summaries = append(summaries, t.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].LastModifiedAt.Equal(summaries[j].LastModifiedAt) {
			return summaries[i].LastModifiedAt.After(summaries[j].LastModifiedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})

	total := len(summaries)
	if offset >= total {
		return []models.TripSummary{}, total, nil
	}
	end := min(total, offset+limit)
	return summaries[offset:end], total, nil
}

func (r *MemoryTripRepository) Get(ctx context.Context, id string) (*models.MultiCityTrip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryTripRepository) Save(ctx context.Context, trip *models.MultiCityTrip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = trip.Clone()
	return nil
}

func (r *MemoryTripRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

// Count returns the number of stored trips
func (r *MemoryTripRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trips)
}

// SampleTrip builds a small fixed two-city trip suitable for persistence tests
func SampleTrip(id string) *models.MultiCityTrip {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	paris := models.CityDestination{
		ID: "paris", Name: "Paris", Country: "France", CountryCode: "FR",
		Coordinates: models.Coordinates{Lat: 48.8566, Lng: 2.3522},
		Timezone:    "Europe/Paris", Currency: "EUR", Language: "fr",
		AirportCodes: []string{"CDG", "ORY"}, StationCodes: []string{"FRPLY"},
	}
	rome := models.CityDestination{
		ID: "rome", Name: "Rome", Country: "Italy", CountryCode: "IT",
		Coordinates: models.Coordinates{Lat: 41.9028, Lng: 12.4964},
		Timezone:    "Europe/Rome", Currency: "EUR", Language: "it",
		AirportCodes: []string{"FCO"}, StationCodes: []string{"ITRMT"},
	}
	leg := models.InterCityLeg{
		ID:              "leg-1",
		Mode:            models.TransportTrain,
		From:            paris,
		To:              rome,
		DepartureTime:   day(3).Add(15 * time.Hour),
		ArrivalTime:     day(3).Add(15*time.Hour + 583*time.Minute),
		DurationMinutes: 583,
		DistanceKm:      1105.28,
		Price:           models.Money{Amount: 175.79, Currency: models.ReportingCurrency},
		CarbonKg:        45.3,
		Train: &models.TrainDetails{
			TrainNumber: "TR4242", TrainType: models.TrainHighSpeed,
			DepartureStation: "Gare de Lyon", ArrivalStation: "Roma Termini",
			Amenities: models.TrainAmenities{Wifi: true, Power: true, Dining: true},
		},
	}
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	return &models.MultiCityTrip{
		ID:          id,
		Status:      models.TripStatusPlanned,
		Travelers:   models.TravelerInfo{Adults: 2},
		Preferences: models.TripPreferences{MinNightsPerCity: 1, MaxNightsPerCity: 5},
		StartDate:   day(1),
		EndDate:     day(7),
		Stops: []models.CityStop{
			{City: paris, ArrivalDate: day(1), DepartureDate: day(3), Nights: 2, IsOrigin: true, Order: 0},
			{City: rome, ArrivalDate: day(4), DepartureDate: day(7), Nights: 3, IsFinalDestination: true, Order: 1},
		},
		Transitions: []models.InterCityLeg{leg},
		CityItineraries: map[string]models.CityItinerary{
			"rome": {
				CityID: "rome", CityName: "Rome", ArrivalDate: day(4), DepartureDate: day(7),
				Days: []models.CityDaySchedule{{
					Date: day(4), DayNumber: 1, DayType: models.DayTypeArrival,
					AvailableHours: models.TimeWindow{Start: day(4).Add(9 * time.Hour), End: day(4).Add(21 * time.Hour)},
					Activities:     []models.ScheduledActivity{{ID: "a1", Name: "Colosseum", StartTime: day(4).Add(10 * time.Hour), EndTime: day(4).Add(12 * time.Hour)}},
					Meals:          []models.ScheduledMeal{},
				}},
			},
		},
		Stats: models.MultiCityTripStats{
			TotalDays: 6, TotalCities: 2, TotalNights: 5, TotalTrainMinutes: 583, TotalTransitMinutes: 583,
			TotalActivities:        1,
			EstimatedTransportCost: models.Money{Amount: 175.79, Currency: models.ReportingCurrency},
			CarbonFootprintKg:      45.3,
			CountriesVisited:       []string{"FR", "IT"},
			TimezonesTraversed:     []string{"Europe/Paris", "Europe/Rome"},
		},
		CreatedAt:      created,
		LastModifiedAt: created,
	}
}
