package transport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
)

var departure = time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)

func mustCity(t *testing.T, name string) models.CityDestination {
	t.Helper()
	c, ok := catalog.LookupCity(name)
	require.True(t, ok, "unknown city %s", name)
	return c
}

func TestGenerateFlight(t *testing.T) {
	gen := NewOptionGenerator()

	leg := gen.Generate(mustCity(t, "Paris"), mustCity(t, "Rome"), departure, oneAdult, models.TransportFlight)

	require.NotNil(t, leg)
	require.NotNil(t, leg.Flight)
	assert.Nil(t, leg.Train)
	assert.Nil(t, leg.Bus)
	assert.Equal(t, models.TransportFlight, leg.Mode)
	assert.Equal(t, "CDG", leg.Flight.DepartureAirport)
	assert.Equal(t, "FCO", leg.Flight.ArrivalAirport)
	assert.Equal(t, placeholderCarrier, leg.Flight.Carrier)
	assert.True(t, strings.HasPrefix(leg.Flight.FlightNumber, placeholderCarrierCode))
	assert.Equal(t, 263, leg.DurationMinutes)
	assert.Equal(t, departure.Add(263*time.Minute), leg.ArrivalTime)
	assert.False(t, leg.IsPlaceholder)
	assert.NotEmpty(t, leg.ID)
}

func TestGenerateFlightRequiresAirports(t *testing.T) {
	gen := NewOptionGenerator()

	assert.Nil(t, gen.Generate(mustCity(t, "Bruges"), mustCity(t, "Paris"), departure, oneAdult, models.TransportFlight))
	assert.Nil(t, gen.Generate(mustCity(t, "Paris"), mustCity(t, "Bruges"), departure, oneAdult, models.TransportFlight))
}

func TestGenerateTrainRequiresStations(t *testing.T) {
	gen := NewOptionGenerator()

	assert.Nil(t, gen.Generate(mustCity(t, "Reykjavik"), mustCity(t, "Paris"), departure, oneAdult, models.TransportTrain))
	unknown := models.CityDestination{ID: "atlantis", Name: "Atlantis", Coordinates: models.Coordinates{Lat: 30, Lng: -30}}
	assert.Nil(t, gen.Generate(mustCity(t, "Paris"), unknown, departure, oneAdult, models.TransportTrain))
}

func TestGenerateTrainClassification(t *testing.T) {
	gen := NewOptionGenerator()

	tests := []struct {
		name      string
		from, to  string
		minutes   int
		trainType models.TrainType
		dining    bool
	}{
		{"long haul", "Paris", "Rome", 583, models.TrainHighSpeed, true},
		{"medium", "Paris", "Brussels", 162, models.TrainIntercity, true},
		{"short", "Brussels", "Bruges", 74, models.TrainIntercity, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := gen.Generate(mustCity(t, tt.from), mustCity(t, tt.to), departure, oneAdult, models.TransportTrain)

			require.NotNil(t, leg)
			require.NotNil(t, leg.Train)
			assert.Equal(t, tt.minutes, leg.DurationMinutes)
			assert.Equal(t, tt.trainType, leg.Train.TrainType)
			assert.Equal(t, tt.dining, leg.Train.Amenities.Dining)
			assert.True(t, leg.Train.Amenities.Wifi)
			assert.True(t, leg.Train.Amenities.Power)
		})
	}
}

func TestGenerateBusCappedForLongHauls(t *testing.T) {
	gen := NewOptionGenerator()

	assert.Nil(t, gen.Generate(mustCity(t, "Paris"), mustCity(t, "Rome"), departure, oneAdult, models.TransportBus))

	leg := gen.Generate(mustCity(t, "Paris"), mustCity(t, "Brussels"), departure, oneAdult, models.TransportBus)
	require.NotNil(t, leg)
	require.NotNil(t, leg.Bus)
	assert.Equal(t, 246, leg.DurationMinutes)
	assert.Equal(t, "Paris Central Bus Station", leg.Bus.DepartureTerminal)
}

func TestGenerateBusNeedsNoCatalog(t *testing.T) {
	gen := NewOptionGenerator()
	a := models.CityDestination{ID: "a", Name: "Alpha", Coordinates: models.Coordinates{Lat: 10, Lng: 10}}
	b := models.CityDestination{ID: "b", Name: "Beta", Coordinates: models.Coordinates{Lat: 10.5, Lng: 10.5}}

	assert.NotNil(t, gen.Generate(a, b, departure, oneAdult, models.TransportBus))
}

func TestGenerateGenericAlwaysProduced(t *testing.T) {
	gen := NewOptionGenerator()
	a := models.CityDestination{ID: "a", Name: "Alpha", Coordinates: models.Coordinates{Lat: 0, Lng: 0}}
	b := models.CityDestination{ID: "b", Name: "Beta", Coordinates: models.Coordinates{Lat: 40, Lng: 100}}

	for _, mode := range []models.TransportMode{models.TransportFerry, models.TransportCarRental, models.TransportPrivateTransfer} {
		leg := gen.Generate(a, b, departure, oneAdult, mode)
		require.NotNil(t, leg, string(mode))
		assert.Equal(t, mode, leg.Mode)
		assert.Nil(t, leg.Flight)
		assert.Nil(t, leg.Train)
		assert.Nil(t, leg.Bus)
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	gen := NewOptionGenerator()
	paris, rome := mustCity(t, "Paris"), mustCity(t, "Rome")

	first := gen.Generate(paris, rome, departure, oneAdult, models.TransportTrain)
	second := gen.Generate(paris, rome, departure, oneAdult, models.TransportTrain)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Train.TrainNumber, second.Train.TrainNumber)
}

func TestPlaceholderLeg(t *testing.T) {
	a := models.CityDestination{ID: "a", Name: "Alpha", Coordinates: models.Coordinates{Lat: 0, Lng: 0}}
	b := models.CityDestination{ID: "b", Name: "Beta", Coordinates: models.Coordinates{Lat: 0, Lng: 1}}

	leg := PlaceholderLeg(a, b, departure, oneAdult)

	assert.True(t, leg.IsPlaceholder)
	assert.Equal(t, models.TransportFlight, leg.Mode)
	assert.Nil(t, leg.Flight)
	assert.Equal(t, EstimateTravelTime(a.Coordinates, b.Coordinates, models.TransportFlight), leg.DurationMinutes)
	assert.Equal(t, EstimateCost(a.Coordinates, b.Coordinates, models.TransportFlight, oneAdult), leg.Price)
	assert.NotEmpty(t, leg.ID)
}
