package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"multi-city-planner/internal/allocation"
	"multi-city-planner/internal/distance"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/routing"
	"multi-city-planner/internal/transport"
)

// GenerateRequest contains the input for trip generation
type GenerateRequest struct {
	Cities    []models.CityDestination
	StartDate time.Time
	EndDate   time.Time
	// StartCityID fixes the first city; empty means Cities[0]
	StartCityID string
	// EndCityID optionally fixes the last city of a one-way trip
	EndCityID     string
	ReturnToStart bool
	Travelers     models.TravelerInfo
	Preferences   models.TripPreferences
}

// Orchestrator plans multi-city trips and applies edits to them. It holds no
// per-trip state: every operation takes a trip value and returns a new one.
type Orchestrator struct {
	searcher  transport.Searcher
	sequencer routing.Sequencer
	allocator allocation.Allocator
	log       logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewOrchestrator creates an orchestrator over the given transport searcher
func NewOrchestrator(searcher transport.Searcher, log logger.Logger, cfg Config) *Orchestrator {
	return &Orchestrator{
		searcher:  searcher,
		sequencer: routing.NewNearestNeighborSequencer(distance.NewHaversineCalculator()),
		allocator: allocation.NewNightAllocator(),
		log:       log,
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate builds a new trip: sequence, allocate nights, lay out stops, plan
// a leg per adjacent pair, build day skeletons and compute stats.
func (o *Orchestrator) Generate(ctx context.Context, req *GenerateRequest) (res *Result) {
	defer o.recoverInto(&res, "generate")

	if req == nil {
		return failure(validationf("Generation request is required"), nil)
	}

	var warnings []string
	cities, dropped := dedupeCities(req.Cities)
	for _, name := range dropped {
		warnings = append(warnings, fmt.Sprintf("%s was listed more than once and is visited once", name))
	}

	startDate := allocation.StartOfDay(req.StartDate)
	endDate := allocation.StartOfDay(req.EndDate)
	travelers := normalizeTravelers(req.Travelers)
	prefs := req.Preferences.WithDefaults()

	if err := o.validate(cities, req, travelers, prefs); err != nil {
		o.log.Info("Rejected trip request", "error", err)
		return failure(err, warnings)
	}

	startID := req.StartCityID
	if startID == "" {
		startID = cities[0].ID
	}
	endID := req.EndCityID
	if req.ReturnToStart {
		endID = startID
	}

	ordered, err := o.sequencer.Sequence(&routing.SequenceRequest{Cities: cities, StartID: startID, EndID: endID})
	if err != nil {
		var incomplete *routing.ErrIncompleteSequence
		if errors.As(err, &incomplete) {
			o.log.Error("City sequencing incomplete", "placed", incomplete.Placed, "total", incomplete.Total)
		}
		return failure(fmt.Errorf("sequencing cities: %w", err), warnings)
	}

	// a round trip spends its last travel day on the way home
	allocEnd := endDate
	if req.ReturnToStart {
		allocEnd = allocation.AddDays(endDate, -1)
	}
	allocs := o.allocator.Allocate(ordered, startDate, allocEnd, prefs)
	stops := buildStops(allocs, req.ReturnToStart)

	if end := scheduleEnd(stops); end.After(endDate) {
		warnings = append(warnings, fmt.Sprintf("Minimum stays need %d night(s) and run %d day(s) past the requested end date; the trip now ends on %s",
			allocation.TotalNights(allocs), allocation.DaysBetween(endDate, end), end.Format(time.DateOnly)))
		endDate = end
	}

	legs, legWarnings, err := o.planTransitions(ctx, stops, travelers, prefs)
	if err != nil {
		return failure(fmt.Errorf("planning transitions: %w", err), warnings)
	}
	warnings = append(warnings, legWarnings...)

	now := o.now()
	trip := &models.MultiCityTrip{
		ID:              uuid.NewString(),
		Status:          models.TripStatusPlanned,
		Travelers:       travelers,
		Preferences:     prefs,
		StartDate:       startDate,
		EndDate:         endDate,
		ReturnToStart:   req.ReturnToStart,
		Stops:           stops,
		Transitions:     legs,
		CityItineraries: buildItineraries(stops, legs, nil),
		CreatedAt:       now,
		LastModifiedAt:  now,
	}
	trip.Stats = ComputeStats(trip)

	o.log.Info("Generated multi-city trip",
		"trip_id", trip.ID, "stops", len(trip.Stops), "legs", len(trip.Transitions), "warnings", len(warnings))
	return success(trip, warnings)
}

// AddCity inserts city after the stop at afterStopIndex with the given nights
// and reschedules every later stop.
func (o *Orchestrator) AddCity(ctx context.Context, trip *models.MultiCityTrip, city models.CityDestination, afterStopIndex, nights int) (res *Result) {
	defer o.recoverInto(&res, "add_city")

	if trip == nil {
		return failure(validationf("Trip is required"), nil)
	}
	if err := validateCity(city); err != nil {
		return failure(err, nil)
	}

	lastInsertable := len(trip.Stops) - 1
	if trip.ReturnToStart {
		lastInsertable--
	}
	if afterStopIndex < 0 || afterStopIndex > lastInsertable {
		return failure(validationf("Cannot add a city after stop %d", afterStopIndex), nil)
	}
	for _, s := range trip.Stops {
		if s.City.ID == city.ID {
			return failure(validationf("%s is already part of this trip", city.Name), nil)
		}
	}

	next := trip.Clone()
	if nights <= 0 {
		nights = next.Preferences.WithDefaults().MinNightsPerCity
	}

	stop := models.CityStop{City: city, Nights: nights}
	pos := afterStopIndex + 1
	stops := make([]models.CityStop, 0, len(next.Stops)+1)
	stops = append(stops, next.Stops[:pos]...)
	stops = append(stops, stop)
	stops = append(stops, next.Stops[pos:]...)
	next.Stops = stops

	firstArrival := next.Stops[0].ArrivalDate
	reschedule(next.Stops, firstArrival)
	if span := allocation.DaysBetween(firstArrival, scheduleEnd(next.Stops)); span > o.cfg.MaxTripDays {
		return failure(validationf("Trip cannot exceed %d days", o.cfg.MaxTripDays), nil)
	}

	return o.rebuild(ctx, next, "add_city")
}

// RemoveCity drops the stop at stopIndex. A trip keeps at least two cities
// and a round trip keeps its origin and return.
func (o *Orchestrator) RemoveCity(ctx context.Context, trip *models.MultiCityTrip, stopIndex int) (res *Result) {
	defer o.recoverInto(&res, "remove_city")

	if trip == nil {
		return failure(validationf("Trip is required"), nil)
	}
	if visitedStops(trip.Stops) <= 2 {
		return failure(invariantf("A multi-city trip must keep at least 2 cities"), nil)
	}
	if stopIndex < 0 || stopIndex >= len(trip.Stops) {
		return failure(validationf("Stop %d does not exist", stopIndex), nil)
	}
	if trip.ReturnToStart && (stopIndex == 0 || trip.Stops[stopIndex].IsReturn) {
		return failure(invariantf("The origin of a round trip cannot be removed"), nil)
	}

	next := trip.Clone()
	removed := next.Stops[stopIndex].City
	firstArrival := next.Stops[0].ArrivalDate
	next.Stops = append(next.Stops[:stopIndex], next.Stops[stopIndex+1:]...)
	delete(next.CityItineraries, removed.ID)

	reschedule(next.Stops, firstArrival)
	o.log.Debug("Removed city from trip", "trip_id", trip.ID, "city", removed.ID)
	return o.rebuild(ctx, next, "remove_city")
}

// ReorderCities moves the stop at fromIndex to toIndex, keeping every stop's
// nights and re-dating from the first stop's arrival.
func (o *Orchestrator) ReorderCities(ctx context.Context, trip *models.MultiCityTrip, fromIndex, toIndex int) (res *Result) {
	defer o.recoverInto(&res, "reorder_cities")

	if trip == nil {
		return failure(validationf("Trip is required"), nil)
	}
	n := len(trip.Stops)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return failure(validationf("Cannot move stop %d to position %d", fromIndex, toIndex), nil)
	}
	if trip.ReturnToStart {
		pinned := func(i int) bool { return i == 0 || i == n-1 }
		if pinned(fromIndex) || pinned(toIndex) {
			return failure(invariantf("The origin and return of a round trip cannot be moved"), nil)
		}
	}

	next := trip.Clone()
	firstArrival := next.Stops[0].ArrivalDate
	moved := next.Stops[fromIndex]
	stops := append(next.Stops[:fromIndex:fromIndex], next.Stops[fromIndex+1:]...)
	stops = append(stops[:toIndex], append([]models.CityStop{moved}, stops[toIndex:]...)...)
	next.Stops = stops

	reschedule(next.Stops, firstArrival)
	return o.rebuild(ctx, next, "reorder_cities")
}

// rebuild recomputes everything downstream of the stop list on next, which
// must already be a private copy
func (o *Orchestrator) rebuild(ctx context.Context, next *models.MultiCityTrip, op string) *Result {
	var warnings []string

	renumber(next.Stops)
	if end := scheduleEnd(next.Stops); end.After(next.EndDate) {
		warnings = append(warnings, fmt.Sprintf("The trip now ends on %s", end.Format(time.DateOnly)))
		next.EndDate = end
	}

	legs, legWarnings, err := o.planTransitions(ctx, next.Stops, next.Travelers, next.Preferences)
	if err != nil {
		return failure(fmt.Errorf("planning transitions: %w", err), warnings)
	}
	warnings = append(warnings, legWarnings...)

	next.Transitions = legs
	next.CityItineraries = buildItineraries(next.Stops, legs, next.CityItineraries)
	next.Status = models.TripStatusModified
	next.LastModifiedAt = o.now()
	next.Stats = ComputeStats(next)

	o.log.Info("Updated multi-city trip", "trip_id", next.ID, "op", op, "stops", len(next.Stops))
	return success(next, warnings)
}

// planTransitions searches every adjacent pair concurrently. A leg whose
// search fails, times out or finds nothing becomes a placeholder, so the
// result always has len(stops)-1 legs. Only cancellation of ctx is an error.
func (o *Orchestrator) planTransitions(ctx context.Context, stops []models.CityStop, travelers models.TravelerInfo, prefs models.TripPreferences) ([]models.InterCityLeg, []string, error) {
	if len(stops) < 2 {
		return []models.InterCityLeg{}, nil, nil
	}

	legs := make([]models.InterCityLeg, len(stops)-1)
	notes := make([]string, len(stops)-1)

	var g errgroup.Group
	g.SetLimit(o.cfg.MaxConcurrentLegSearches)
	for i := range legs {
		g.Go(func() error {
			legs[i], notes[i] = o.planLeg(ctx, stops[i], stops[i+1], travelers, prefs)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, note := range notes {
		if note != "" {
			warnings = append(warnings, note)
		}
	}
	return legs, warnings, nil
}

func (o *Orchestrator) planLeg(ctx context.Context, from, to models.CityStop, travelers models.TravelerInfo, prefs models.TripPreferences) (leg models.InterCityLeg, warning string) {
	departure := legDeparture(from, o.cfg.departureHour())

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("Transport search panicked", "from", from.City.ID, "to", to.City.ID, "panic", r)
			leg = transport.PlaceholderLeg(from.City, to.City, departure, travelers)
			warning = fmt.Sprintf("Transport search from %s to %s failed; using an estimated flight", from.City.Name, to.City.Name)
		}
	}()

	searchCtx, cancel := context.WithTimeout(ctx, o.cfg.LegSearchTimeout)
	defer cancel()

	result, err := o.searcher.Search(searchCtx, &transport.SearchRequest{
		From:               &from.City,
		To:                 &to.City,
		DepartureDate:      departure,
		Travelers:          travelers,
		PreferredModes:     prefs.PreferredTransport,
		MaxPrice:           prefs.MaxLegPrice,
		MaxDurationMinutes: prefs.MaxLegDurationMinutes,
	})
	if err != nil {
		o.log.Warn("Transport search failed", "from", from.City.ID, "to", to.City.ID, "error", err)
		return transport.PlaceholderLeg(from.City, to.City, departure, travelers),
			fmt.Sprintf("Transport search from %s to %s failed; using an estimated flight", from.City.Name, to.City.Name)
	}

	if best := result.Best(); best != nil {
		return *best, ""
	}

	o.log.Debug("No transport options, using placeholder", "from", from.City.ID, "to", to.City.ID)
	return transport.PlaceholderLeg(from.City, to.City, departure, travelers),
		fmt.Sprintf("No transport options found from %s to %s; using an estimated flight", from.City.Name, to.City.Name)
}

func (o *Orchestrator) validate(cities []models.CityDestination, req *GenerateRequest, travelers models.TravelerInfo, prefs models.TripPreferences) error {
	if len(cities) < 2 {
		return validationf("At least 2 cities are required")
	}
	for _, c := range cities {
		if err := validateCity(c); err != nil {
			return err
		}
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return validationf("Start and end dates are required")
	}
	totalDays := allocation.DaysBetween(req.StartDate, req.EndDate)
	if totalDays > o.cfg.MaxTripDays {
		return validationf("Trip cannot exceed %d days", o.cfg.MaxTripDays)
	}
	if totalDays < len(cities) {
		return validationf("A trip to %d cities needs at least %d days", len(cities), len(cities))
	}

	if req.StartCityID != "" && !containsCity(cities, req.StartCityID) {
		return validationf("Start city %q is not one of the trip cities", req.StartCityID)
	}
	if req.EndCityID != "" {
		if req.ReturnToStart {
			return validationf("An end city cannot be combined with returning to the start")
		}
		if !containsCity(cities, req.EndCityID) {
			return validationf("End city %q is not one of the trip cities", req.EndCityID)
		}
	}

	if travelers.Adults < 0 || travelers.Children < 0 || travelers.Infants < 0 {
		return validationf("Traveler counts cannot be negative")
	}
	if travelers.PayingPassengers() == 0 {
		return validationf("Infants must travel with at least one adult or child")
	}

	if prefs.MinNightsPerCity > prefs.MaxNightsPerCity {
		return validationf("Minimum nights per city (%d) exceeds the maximum (%d)", prefs.MinNightsPerCity, prefs.MaxNightsPerCity)
	}
	for _, m := range prefs.PreferredTransport {
		if !m.Valid() {
			return validationf("Unknown transport mode %q", m)
		}
	}
	return nil
}

func (o *Orchestrator) recoverInto(res **Result, op string) {
	if r := recover(); r != nil {
		o.log.Error("Planner operation panicked", "op", op, "panic", r)
		*res = failure(fmt.Errorf("internal error during %s: %v", op, r), nil)
	}
}

func validateCity(c models.CityDestination) error {
	if c.ID == "" {
		return validationf("City %q has no id", c.Name)
	}
	lat, lng := c.Coordinates.Lat, c.Coordinates.Lng
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return validationf("City %q has invalid coordinates", c.Name)
	}
	return nil
}

// dedupeCities keeps the first occurrence of each city id and returns the
// names of the dropped duplicates
func dedupeCities(cities []models.CityDestination) ([]models.CityDestination, []string) {
	seen := make(map[string]bool, len(cities))
	out := make([]models.CityDestination, 0, len(cities))
	var dropped []string
	for _, c := range cities {
		if c.ID != "" && seen[c.ID] {
			dropped = append(dropped, c.Name)
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, dropped
}

// normalizeTravelers treats an empty party as one adult
func normalizeTravelers(t models.TravelerInfo) models.TravelerInfo {
	if t.Adults == 0 && t.Children == 0 && t.Infants == 0 {
		t.Adults = 1
	}
	return t
}

func containsCity(cities []models.CityDestination, id string) bool {
	for _, c := range cities {
		if c.ID == id {
			return true
		}
	}
	return false
}

func visitedStops(stops []models.CityStop) int {
	n := 0
	for _, s := range stops {
		if !s.IsReturn {
			n++
		}
	}
	return n
}
