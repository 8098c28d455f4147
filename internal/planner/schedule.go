package planner

import (
	"time"

	"multi-city-planner/internal/allocation"
	"multi-city-planner/internal/models"
)

const (
	dayStartHour   = 9
	dayEndHour     = 21
	transferBuffer = 2 * time.Hour
)

// buildStops turns an allocation into ordered stops. A round trip gets a
// trailing zero-night return stop for the origin city.
func buildStops(allocs []allocation.CityNightsAllocation, returnToStart bool) []models.CityStop {
	stops := make([]models.CityStop, 0, len(allocs)+1)
	for _, a := range allocs {
		stops = append(stops, models.CityStop{
			City:          a.City,
			ArrivalDate:   a.ArrivalDate,
			DepartureDate: a.DepartureDate,
			Nights:        a.Nights,
		})
	}

	if returnToStart && len(stops) > 0 {
		stops = append(stops, models.CityStop{
			City:     stops[0].City,
			IsReturn: true,
		})
	}

	renumber(stops)
	if len(stops) > 0 {
		reschedule(stops, stops[0].ArrivalDate)
	}
	return stops
}

// renumber resets order and the origin/final flags from position
func renumber(stops []models.CityStop) {
	last := len(stops) - 1
	for i := range stops {
		stops[i].Order = i
		stops[i].IsOrigin = i == 0
		stops[i].IsFinalDestination = i == last && !stops[i].IsReturn
	}
}

// reschedule lays stops out back to back from firstArrival, keeping nights
// and leaving one travel day between consecutive stops
func reschedule(stops []models.CityStop, firstArrival time.Time) {
	arrival := allocation.StartOfDay(firstArrival)
	for i := range stops {
		if stops[i].IsReturn {
			stops[i].Nights = 0
		}
		stops[i].ArrivalDate = arrival
		stops[i].DepartureDate = allocation.AddDays(arrival, stops[i].Nights)
		arrival = allocation.AddDays(stops[i].DepartureDate, 1)
	}
}

// scheduleEnd is the last calendar date the stops occupy
func scheduleEnd(stops []models.CityStop) time.Time {
	if len(stops) == 0 {
		return time.Time{}
	}
	return stops[len(stops)-1].DepartureDate
}

// legDeparture is when the leg leaving stop departs
func legDeparture(stop models.CityStop, departureHour int) time.Time {
	return allocation.StartOfDay(stop.DepartureDate).Add(time.Duration(departureHour) * time.Hour)
}

// buildItineraries creates one day skeleton per visited city. Activities and
// meals already planned in previous are carried over by day number.
func buildItineraries(stops []models.CityStop, legs []models.InterCityLeg, previous map[string]models.CityItinerary) map[string]models.CityItinerary {
	itineraries := make(map[string]models.CityItinerary, len(stops))
	for i, stop := range stops {
		if stop.IsReturn {
			continue
		}

		var incoming, outgoing *models.InterCityLeg
		if i > 0 && i-1 < len(legs) {
			incoming = &legs[i-1]
		}
		if i < len(legs) {
			outgoing = &legs[i]
		}

		it := buildItinerary(stop, incoming, outgoing)
		if prev, ok := previous[stop.City.ID]; ok {
			carryOver(&it, prev)
		}
		itineraries[stop.City.ID] = it
	}
	return itineraries
}

func buildItinerary(stop models.CityStop, incoming, outgoing *models.InterCityLeg) models.CityItinerary {
	count := stop.Nights + 1
	days := make([]models.CityDaySchedule, 0, count)

	for n := 0; n < count; n++ {
		date := allocation.AddDays(stop.ArrivalDate, n)
		isFirst := n == 0
		isLast := n == count-1

		dayType := models.DayTypeFull
		switch {
		case isFirst:
			dayType = models.DayTypeArrival
		case isLast:
			dayType = models.DayTypeDeparture
		}

		var arriveAt, departAt *time.Time
		if isFirst && incoming != nil {
			arriveAt = &incoming.ArrivalTime
		}
		if isLast && outgoing != nil {
			departAt = &outgoing.DepartureTime
		}

		days = append(days, models.CityDaySchedule{
			Date:           date,
			DayNumber:      n + 1,
			DayType:        dayType,
			AvailableHours: dayWindow(date, arriveAt, departAt),
			Activities:     []models.ScheduledActivity{},
			Meals:          []models.ScheduledMeal{},
		})
	}

	return models.CityItinerary{
		CityID:        stop.City.ID,
		CityName:      stop.City.Name,
		ArrivalDate:   stop.ArrivalDate,
		DepartureDate: stop.DepartureDate,
		Days:          days,
	}
}

// dayWindow clamps the default day to leave a buffer after arriving and
// before departing. The window stays inside the default day and never
// inverts; a day trimmed away entirely collapses to an empty window.
func dayWindow(date time.Time, arriveAt, departAt *time.Time) models.TimeWindow {
	day := allocation.StartOfDay(date)
	dayStart := day.Add(dayStartHour * time.Hour)
	dayEnd := day.Add(dayEndHour * time.Hour)
	start, end := dayStart, dayEnd

	if arriveAt != nil {
		if ready := arriveAt.Add(transferBuffer); ready.After(start) {
			start = ready
		}
	}
	if departAt != nil {
		if leave := departAt.Add(-transferBuffer); leave.Before(end) {
			end = leave
		}
	}

	if start.After(dayEnd) {
		start = dayEnd
	}
	if end.Before(dayStart) {
		end = dayStart
	}
	if start.After(end) {
		start = end
	}
	return models.TimeWindow{Start: start, End: end}
}

func carryOver(it *models.CityItinerary, prev models.CityItinerary) {
	byNumber := make(map[int]models.CityDaySchedule, len(prev.Days))
	for _, d := range prev.Days {
		byNumber[d.DayNumber] = d
	}
	for i := range it.Days {
		old, ok := byNumber[it.Days[i].DayNumber]
		if !ok {
			continue
		}
		if len(old.Activities) > 0 {
			it.Days[i].Activities = append([]models.ScheduledActivity{}, old.Activities...)
		}
		if len(old.Meals) > 0 {
			it.Days[i].Meals = append([]models.ScheduledMeal{}, old.Meals...)
		}
	}
}
