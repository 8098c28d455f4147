package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-city-planner/internal/models"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Paris", "paris"},
		{"  New York ", "newyork"},
		{"München", "munchen"},
		{"Zürich", "zurich"},
		{"Saint-Étienne", "saintetienne"},
		{"København", "københavn"},
		{"L.A. 2024", "la"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.in))
		})
	}
}

func TestLookupCityByNameIDAndAlias(t *testing.T) {
	for _, name := range []string{"munich", "Munich", "MUNICH", "München", "Muenchen", "munchen"} {
		c, ok := LookupCity(name)
		require.True(t, ok, name)
		assert.Equal(t, "munich", c.ID, name)
	}

	c, ok := LookupCity("NYC")
	require.True(t, ok)
	assert.Equal(t, "new-york", c.ID)
	assert.Equal(t, "America/New_York", c.Timezone)

	c, ok = LookupCity("new-york")
	require.True(t, ok)
	assert.Equal(t, "New York", c.Name)
}

func TestLookupCityUnknown(t *testing.T) {
	_, ok := LookupCity("Atlantis")
	assert.False(t, ok)

	_, ok = LookupCity("")
	assert.False(t, ok)
}

func TestLookupCityCarriesCodes(t *testing.T) {
	c, ok := LookupCity("Paris")
	require.True(t, ok)

	assert.Equal(t, []string{"CDG", "ORY"}, c.AirportCodes)
	assert.Equal(t, []string{"FRPLY", "FRPNO"}, c.StationCodes)
	assert.Equal(t, models.Coordinates{Lat: 48.8566, Lng: 2.3522}, c.Coordinates)
}

func TestLookupCityReturnsCopy(t *testing.T) {
	c, _ := LookupCity("Paris")
	c.AirportCodes[0] = "XXX"

	again, _ := LookupCity("Paris")
	assert.Equal(t, "CDG", again.AirportCodes[0])
}

func TestAirportsAndStations(t *testing.T) {
	paris, _ := LookupCity("Paris")
	bruges, _ := LookupCity("Bruges")
	reykjavik, _ := LookupCity("Reykjavik")

	require.NotEmpty(t, Airports(paris))
	assert.Equal(t, "CDG", Airports(paris)[0].Code)
	assert.Equal(t, "FRPLY", Stations(paris)[0].Code)

	assert.Empty(t, Airports(bruges))
	assert.NotEmpty(t, Stations(bruges))

	assert.NotEmpty(t, Airports(reykjavik))
	assert.Empty(t, Stations(reykjavik))
}

func TestAirportsFallsBackToName(t *testing.T) {
	custom := models.CityDestination{ID: "custom-42", Name: "Rome"}
	assert.Equal(t, "FCO", Airports(custom)[0].Code)

	unknown := models.CityDestination{ID: "custom-43", Name: "Nowhere"}
	assert.NotNil(t, Airports(unknown))
	assert.Empty(t, Airports(unknown))
	assert.Empty(t, Stations(unknown))
}

func TestIsMajorCity(t *testing.T) {
	paris, _ := LookupCity("Paris")
	rome, _ := LookupCity("Rome")
	barcelona, _ := LookupCity("Barcelona")

	assert.True(t, IsMajorCity(paris))
	assert.True(t, IsMajorCity(rome))
	assert.False(t, IsMajorCity(barcelona))
	assert.False(t, IsMajorCity(models.CityDestination{ID: "x", Name: "Nowhere"}))
}

func TestCitiesSortedAndUnique(t *testing.T) {
	cities := Cities()
	require.NotEmpty(t, cities)

	seen := map[string]bool{}
	for i, c := range cities {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		if i > 0 {
			assert.Less(t, cities[i-1].ID, c.ID)
		}
		assert.NotEmpty(t, c.Timezone)
		assert.NotEmpty(t, c.CountryCode)
	}
}
