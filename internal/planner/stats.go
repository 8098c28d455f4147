package planner

import (
	"math"

	"github.com/samber/lo"

	"multi-city-planner/internal/allocation"
	"multi-city-planner/internal/models"
)

// ComputeStats derives the aggregate figures of a trip from its stops,
// transitions and itineraries. It never reads the existing Stats.
func ComputeStats(trip *models.MultiCityTrip) models.MultiCityTripStats {
	stats := models.MultiCityTripStats{
		EstimatedTransportCost: models.Money{Currency: models.ReportingCurrency},
		CountriesVisited:       []string{},
		TimezonesTraversed:     []string{},
	}
	if trip == nil {
		return stats
	}

	if !trip.StartDate.IsZero() && !trip.EndDate.IsZero() {
		stats.TotalDays = max(0, allocation.DaysBetween(trip.StartDate, trip.EndDate))
	}

	cities := lo.Map(trip.Stops, func(s models.CityStop, _ int) models.CityDestination { return s.City })
	stats.TotalCities = len(lo.UniqBy(cities, func(c models.CityDestination) string { return c.ID }))
	stats.TotalNights = lo.SumBy(trip.Stops, func(s models.CityStop) int { return s.Nights })
	stats.CountriesVisited = lo.Compact(lo.Uniq(lo.Map(cities, func(c models.CityDestination, _ int) string { return c.CountryCode })))
	stats.TimezonesTraversed = lo.Compact(lo.Uniq(lo.Map(cities, func(c models.CityDestination, _ int) string { return c.Timezone })))

	var cost, carbon float64
	for _, leg := range trip.Transitions {
		switch leg.Mode {
		case models.TransportFlight:
			stats.TotalFlightMinutes += leg.DurationMinutes
		case models.TransportTrain:
			stats.TotalTrainMinutes += leg.DurationMinutes
		}
		stats.TotalTransitMinutes += leg.DurationMinutes
		cost += leg.Price.Amount
		carbon += leg.CarbonKg
	}
	stats.EstimatedTransportCost.Amount = math.Round(cost*100) / 100
	stats.CarbonFootprintKg = math.Round(carbon*10) / 10

	for _, it := range trip.CityItineraries {
		stats.TotalActivities += lo.SumBy(it.Days, func(d models.CityDaySchedule) int { return len(d.Activities) })
	}

	return stats
}
