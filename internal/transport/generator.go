package transport

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/distance"
	"multi-city-planner/internal/models"
)

const (
	placeholderCarrier     = "Multi-City Air"
	placeholderCarrierCode = "MC"

	// maxBusMinutes suppresses bus options for very long hauls
	maxBusMinutes = 600
	// highSpeedMinMinutes is the duration above which a train is classed high speed
	highSpeedMinMinutes = 180
	// diningMinMinutes is the duration above which a train offers dining
	diningMinMinutes = 120
)

// OptionGenerator builds synthetic leg candidates for a city pair.
// Prices and times are estimates, not live inventory.
type OptionGenerator interface {
	Generate(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo, mode models.TransportMode) *models.InterCityLeg
}

type optionGenerator struct{}

// NewOptionGenerator creates the catalog-backed option generator
func NewOptionGenerator() OptionGenerator {
	return optionGenerator{}
}

// Generate returns a leg for mode, or nil when the mode cannot serve the pair
func (g optionGenerator) Generate(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo, mode models.TransportMode) *models.InterCityLeg {
	switch mode {
	case models.TransportFlight:
		return g.flight(from, to, departure, travelers)
	case models.TransportTrain:
		return g.train(from, to, departure, travelers)
	case models.TransportBus:
		return g.bus(from, to, departure, travelers)
	default:
		return baseLeg(from, to, departure, travelers, mode)
	}
}

func (g optionGenerator) flight(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo) *models.InterCityLeg {
	fromAirports := catalog.Airports(from)
	toAirports := catalog.Airports(to)
	if len(fromAirports) == 0 || len(toAirports) == 0 {
		return nil
	}

	leg := baseLeg(from, to, departure, travelers, models.TransportFlight)
	leg.Flight = &models.FlightDetails{
		FlightNumber:     fmt.Sprintf("%s%d", placeholderCarrierCode, serviceNumber(fromAirports[0].Code, toAirports[0].Code, departure, 100, 9000)),
		Carrier:          placeholderCarrier,
		DepartureAirport: fromAirports[0].Code,
		ArrivalAirport:   toAirports[0].Code,
	}
	return leg
}

func (g optionGenerator) train(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo) *models.InterCityLeg {
	fromStations := catalog.Stations(from)
	toStations := catalog.Stations(to)
	if len(fromStations) == 0 || len(toStations) == 0 {
		return nil
	}

	leg := baseLeg(from, to, departure, travelers, models.TransportTrain)
	trainType := models.TrainIntercity
	if leg.DurationMinutes > highSpeedMinMinutes {
		trainType = models.TrainHighSpeed
	}
	leg.Train = &models.TrainDetails{
		TrainNumber:      fmt.Sprintf("TR%d", serviceNumber(fromStations[0].Code, toStations[0].Code, departure, 1000, 9000)),
		TrainType:        trainType,
		DepartureStation: fromStations[0].Name,
		ArrivalStation:   toStations[0].Name,
		Amenities: models.TrainAmenities{
			Wifi:   true,
			Power:  true,
			Dining: leg.DurationMinutes > diningMinMinutes,
		},
	}
	return leg
}

func (g optionGenerator) bus(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo) *models.InterCityLeg {
	leg := baseLeg(from, to, departure, travelers, models.TransportBus)
	if leg.DurationMinutes > maxBusMinutes {
		return nil
	}

	busType := "express"
	if leg.DurationMinutes > 240 {
		busType = "coach"
	}
	leg.Bus = &models.BusDetails{
		BusNumber:         fmt.Sprintf("BX%d", serviceNumber(from.ID, to.ID, departure, 100, 900)),
		BusType:           busType,
		DepartureTerminal: from.Name + " Central Bus Station",
		ArrivalTerminal:   to.Name + " Central Bus Station",
	}
	return leg
}

// PlaceholderLeg synthesizes a flight-mode leg from the estimator alone. It
// never consults the catalog, so it exists for every city pair.
func PlaceholderLeg(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo) models.InterCityLeg {
	leg := baseLeg(from, to, departure, travelers, models.TransportFlight)
	leg.IsPlaceholder = true
	return *leg
}

func baseLeg(from, to models.CityDestination, departure time.Time, travelers models.TravelerInfo, mode models.TransportMode) *models.InterCityLeg {
	km := distance.Haversine(from.Coordinates, to.Coordinates)
	minutes := travelMinutes(km, mode)

	return &models.InterCityLeg{
		ID:              uuid.NewString(),
		Mode:            mode,
		From:            from,
		To:              to,
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		DistanceKm:      roundCents(km),
		Price:           fare(km, mode, travelers),
		CarbonKg:        carbon(km, mode, travelers),
	}
}

// serviceNumber derives a stable service number in [base, base+span) for a route and day
func serviceNumber(fromCode, toCode string, departure time.Time, base, span uint32) uint32 {
	h := fnv.New32a()
	h.Write([]byte(fromCode))
	h.Write([]byte{'>'})
	h.Write([]byte(toCode))
	h.Write([]byte(departure.Format("2006-01-02")))
	return base + h.Sum32()%span
}
