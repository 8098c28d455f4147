package models

import (
	"slices"
	"time"
)

// ReportingCurrency is the single currency all transport estimates are quoted in
const ReportingCurrency = "EUR"

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CityDestination is immutable reference data describing a city
type CityDestination struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Country      string      `json:"country"`
	CountryCode  string      `json:"country_code"`
	Coordinates  Coordinates `json:"coordinates"`
	Timezone     string      `json:"timezone"`
	Currency     string      `json:"currency"`
	Language     string      `json:"language"`
	AirportCodes []string    `json:"airport_codes,omitempty"`
	StationCodes []string    `json:"station_codes,omitempty"`
}

// GetCoords returns the coordinates of the city
func (c *CityDestination) GetCoords() Coordinates {
	return c.Coordinates
}

// AirportInfo describes a major airport serving a city
type AirportInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

// StationInfo describes a major train station serving a city
type StationInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

// TravelerInfo holds the party composition
type TravelerInfo struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// PayingPassengers returns the number of travelers that need a fare. Infants travel free.
func (t TravelerInfo) PayingPassengers() int {
	return t.Adults + t.Children
}

// TotalPassengers returns everyone in the party, infants included
func (t TravelerInfo) TotalPassengers() int {
	return t.Adults + t.Children + t.Infants
}

// Money is an amount in a given currency
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// TransportMode identifies how a leg is travelled
type TransportMode string

const (
	TransportFlight          TransportMode = "flight"
	TransportTrain           TransportMode = "train"
	TransportBus             TransportMode = "bus"
	TransportFerry           TransportMode = "ferry"
	TransportCarRental       TransportMode = "car_rental"
	TransportPrivateTransfer TransportMode = "private_transfer"
)

// AllTransportModes lists every supported mode in a fixed order
var AllTransportModes = []TransportMode{
	TransportFlight,
	TransportTrain,
	TransportBus,
	TransportFerry,
	TransportCarRental,
	TransportPrivateTransfer,
}

// Valid reports whether m is a known transport mode
func (m TransportMode) Valid() bool {
	for _, known := range AllTransportModes {
		if m == known {
			return true
		}
	}
	return false
}

// TrainType classifies a train leg
type TrainType string

const (
	TrainHighSpeed TrainType = "high_speed"
	TrainIntercity TrainType = "intercity"
)

// FlightDetails holds flight-specific leg data
type FlightDetails struct {
	FlightNumber     string `json:"flight_number"`
	Carrier          string `json:"carrier"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
}

// TrainAmenities flags on-board services
type TrainAmenities struct {
	Wifi   bool `json:"wifi"`
	Power  bool `json:"power"`
	Dining bool `json:"dining"`
}

// TrainDetails holds train-specific leg data
type TrainDetails struct {
	TrainNumber      string         `json:"train_number"`
	TrainType        TrainType      `json:"train_type"`
	DepartureStation string         `json:"departure_station"`
	ArrivalStation   string         `json:"arrival_station"`
	Amenities        TrainAmenities `json:"amenities"`
}

// BusDetails holds bus-specific leg data
type BusDetails struct {
	BusNumber         string `json:"bus_number"`
	BusType           string `json:"bus_type"`
	DepartureTerminal string `json:"departure_terminal"`
	ArrivalTerminal   string `json:"arrival_terminal"`
}

// InterCityLeg is a single transport segment between two cities.
// Exactly one of Flight, Train or Bus is set for those modes; generic modes carry none.
type InterCityLeg struct {
	ID              string          `json:"id"`
	Mode            TransportMode   `json:"transport_mode"`
	From            CityDestination `json:"from"`
	To              CityDestination `json:"to"`
	DepartureTime   time.Time       `json:"departure_time"`
	ArrivalTime     time.Time       `json:"arrival_time"`
	DurationMinutes int             `json:"duration_minutes"`
	DistanceKm      float64         `json:"distance_km"`
	Price           Money           `json:"price"`
	CarbonKg        float64         `json:"carbon_kg"`
	IsPlaceholder   bool            `json:"is_placeholder,omitempty"`
	Flight          *FlightDetails  `json:"flight,omitempty"`
	Train           *TrainDetails   `json:"train,omitempty"`
	Bus             *BusDetails     `json:"bus,omitempty"`
}

// CityStop is a scheduled visit to one city
type CityStop struct {
	City               CityDestination `json:"city"`
	ArrivalDate        time.Time       `json:"arrival_date"`
	DepartureDate      time.Time       `json:"departure_date"`
	Nights             int             `json:"nights"`
	IsOrigin           bool            `json:"is_origin"`
	IsFinalDestination bool            `json:"is_final_destination"`
	IsReturn           bool            `json:"is_return,omitempty"`
	Order              int             `json:"order"`
}

// DayType marks where a day sits within a city stay
type DayType string

const (
	DayTypeArrival   DayType = "arrival"
	DayTypeFull      DayType = "full"
	DayTypeDeparture DayType = "departure"
)

// TimeWindow is the part of a day available for activities
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Hours returns the length of the window in hours
func (w TimeWindow) Hours() float64 {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start).Hours()
}

// ScheduledActivity is an activity slot filled in by the suggestion service
type ScheduledActivity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ScheduledMeal is a meal slot filled in by the suggestion service
type ScheduledMeal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	MealType string    `json:"meal_type"`
	Time     time.Time `json:"time"`
}

// CityDaySchedule is one day of a city stay
type CityDaySchedule struct {
	Date           time.Time           `json:"date"`
	DayNumber      int                 `json:"day_number"`
	DayType        DayType             `json:"day_type"`
	AvailableHours TimeWindow          `json:"available_hours"`
	Activities     []ScheduledActivity `json:"activities"`
	Meals          []ScheduledMeal     `json:"meals"`
}

// CityItinerary holds the day-by-day skeleton for one city
type CityItinerary struct {
	CityID        string            `json:"city_id"`
	CityName      string            `json:"city_name"`
	ArrivalDate   time.Time         `json:"arrival_date"`
	DepartureDate time.Time         `json:"departure_date"`
	Days          []CityDaySchedule `json:"days"`
}

// TripPreferences steer allocation and transport choice
type TripPreferences struct {
	MinNightsPerCity      int             `json:"min_nights_per_city"`
	MaxNightsPerCity      int             `json:"max_nights_per_city"`
	PreferredTransport    []TransportMode `json:"preferred_transport,omitempty"`
	PreferDirectFlights   bool            `json:"prefer_direct_flights"`
	MaxLegPrice           *Money          `json:"max_leg_price,omitempty"`
	MaxLegDurationMinutes int             `json:"max_leg_duration_minutes,omitempty"`
}

// Default night bounds
const (
	DefaultMinNightsPerCity = 1
	DefaultMaxNightsPerCity = 5
)

// WithDefaults fills unset night bounds
func (p TripPreferences) WithDefaults() TripPreferences {
	if p.MinNightsPerCity <= 0 {
		p.MinNightsPerCity = DefaultMinNightsPerCity
	}
	if p.MaxNightsPerCity <= 0 {
		p.MaxNightsPerCity = DefaultMaxNightsPerCity
	}
	return p
}

// TripStatus tracks the lifecycle of a trip value
type TripStatus string

const (
	TripStatusPlanned  TripStatus = "planned"
	TripStatusModified TripStatus = "modified"
)

// MultiCityTripStats is derived from stops, transitions and itineraries
type MultiCityTripStats struct {
	TotalDays              int      `json:"total_days"`
	TotalCities            int      `json:"total_cities"`
	TotalNights            int      `json:"total_nights"`
	TotalFlightMinutes     int      `json:"total_flight_minutes"`
	TotalTrainMinutes      int      `json:"total_train_minutes"`
	TotalTransitMinutes    int      `json:"total_transit_minutes"`
	TotalActivities        int      `json:"total_activities"`
	EstimatedTransportCost Money    `json:"estimated_transport_cost"`
	CarbonFootprintKg      float64  `json:"carbon_footprint_kg"`
	CountriesVisited       []string `json:"countries_visited"`
	TimezonesTraversed     []string `json:"timezones_traversed"`
}

// MultiCityTrip is the aggregate root produced by the planner
type MultiCityTrip struct {
	ID              string                   `json:"id"`
	Status          TripStatus               `json:"status"`
	Travelers       TravelerInfo             `json:"travelers"`
	Preferences     TripPreferences          `json:"preferences"`
	StartDate       time.Time                `json:"start_date"`
	EndDate         time.Time                `json:"end_date"`
	ReturnToStart   bool                     `json:"return_to_start"`
	Stops           []CityStop               `json:"stops"`
	Transitions     []InterCityLeg           `json:"transitions"`
	CityItineraries map[string]CityItinerary `json:"city_itineraries"`
	Stats           MultiCityTripStats       `json:"stats"`
	CreatedAt       time.Time                `json:"created_at"`
	LastModifiedAt  time.Time                `json:"last_modified_at"`
}

// TripSummary is the listing view of a stored trip
type TripSummary struct {
	ID             string     `json:"id"`
	Status         TripStatus `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Cities         []string   `json:"cities"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
}

// Summary returns the listing view of the trip
func (t *MultiCityTrip) Summary() TripSummary {
	cities := make([]string, 0, len(t.Stops))
	for _, s := range t.Stops {
		cities = append(cities, s.City.Name)
	}
	return TripSummary{
		ID:             t.ID,
		Status:         t.Status,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Cities:         cities,
		LastModifiedAt: t.LastModifiedAt,
	}
}

// Clone returns a deep copy of the trip so callers can derive a new value
// without touching the original.
func (t *MultiCityTrip) Clone() *MultiCityTrip {
	if t == nil {
		return nil
	}
	out := *t
	out.Preferences = clonePreferences(t.Preferences)

	out.Stops = slices.Clone(t.Stops)
	for i := range out.Stops {
		out.Stops[i].City = cloneCity(out.Stops[i].City)
	}

	out.Transitions = slices.Clone(t.Transitions)
	for i := range out.Transitions {
		out.Transitions[i] = cloneLeg(out.Transitions[i])
	}

	if t.CityItineraries != nil {
		out.CityItineraries = make(map[string]CityItinerary, len(t.CityItineraries))
		for id, it := range t.CityItineraries {
			out.CityItineraries[id] = CloneItinerary(it)
		}
	}

	out.Stats.CountriesVisited = slices.Clone(t.Stats.CountriesVisited)
	out.Stats.TimezonesTraversed = slices.Clone(t.Stats.TimezonesTraversed)
	return &out
}

// CloneItinerary deep-copies an itinerary including its day slots
func CloneItinerary(it CityItinerary) CityItinerary {
	it.Days = slices.Clone(it.Days)
	for i := range it.Days {
		it.Days[i].Activities = slices.Clone(it.Days[i].Activities)
		it.Days[i].Meals = slices.Clone(it.Days[i].Meals)
	}
	return it
}

func cloneCity(c CityDestination) CityDestination {
	c.AirportCodes = slices.Clone(c.AirportCodes)
	c.StationCodes = slices.Clone(c.StationCodes)
	return c
}

func cloneLeg(leg InterCityLeg) InterCityLeg {
	leg.From = cloneCity(leg.From)
	leg.To = cloneCity(leg.To)
	if leg.Flight != nil {
		f := *leg.Flight
		leg.Flight = &f
	}
	if leg.Train != nil {
		tr := *leg.Train
		leg.Train = &tr
	}
	if leg.Bus != nil {
		b := *leg.Bus
		leg.Bus = &b
	}
	return leg
}

func clonePreferences(p TripPreferences) TripPreferences {
	p.PreferredTransport = slices.Clone(p.PreferredTransport)
	if p.MaxLegPrice != nil {
		m := *p.MaxLegPrice
		p.MaxLegPrice = &m
	}
	return p
}
