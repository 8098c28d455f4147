package transport

import (
	"math"

	"multi-city-planner/internal/distance"
	"multi-city-planner/internal/models"
)

// modeProfile holds the fixed estimation constants for one transport mode
type modeProfile struct {
	speedKmh        float64
	costPerKm       float64
	fixedCost       float64
	carbonPerKm     float64 // kg CO2 per km per passenger
	overheadMinutes int     // terminal and boarding time
}

var profiles = map[models.TransportMode]modeProfile{
	models.TransportFlight:          {speedKmh: 800, costPerKm: 0.12, fixedCost: 50, carbonPerKm: 0.255, overheadMinutes: 180},
	models.TransportTrain:           {speedKmh: 120, costPerKm: 0.15, fixedCost: 10, carbonPerKm: 0.041, overheadMinutes: 30},
	models.TransportBus:             {speedKmh: 70, costPerKm: 0.06, fixedCost: 5, carbonPerKm: 0.089, overheadMinutes: 20},
	models.TransportFerry:           {speedKmh: 35, costPerKm: 0.20, fixedCost: 20, carbonPerKm: 0.115, overheadMinutes: 60},
	models.TransportCarRental:       {speedKmh: 90, costPerKm: 0.25, fixedCost: 40, carbonPerKm: 0.171},
	models.TransportPrivateTransfer: {speedKmh: 80, costPerKm: 0.80, fixedCost: 30, carbonPerKm: 0.171},
}

func profileFor(mode models.TransportMode) modeProfile {
	if p, ok := profiles[mode]; ok {
		return p
	}
	return profiles[models.TransportCarRental]
}

// EstimateTravelTime returns door-to-door minutes between two points for mode
func EstimateTravelTime(from, to models.Coordinates, mode models.TransportMode) int {
	return travelMinutes(distance.Haversine(from, to), mode)
}

// EstimateCost returns the fare for the party. Infants travel free.
func EstimateCost(from, to models.Coordinates, mode models.TransportMode, travelers models.TravelerInfo) models.Money {
	return fare(distance.Haversine(from, to), mode, travelers)
}

// EstimateCarbon returns kg of CO2 for the whole party, infants included,
// rounded to one decimal.
func EstimateCarbon(from, to models.Coordinates, mode models.TransportMode, travelers models.TravelerInfo) float64 {
	return carbon(distance.Haversine(from, to), mode, travelers)
}

func travelMinutes(km float64, mode models.TransportMode) int {
	p := profileFor(mode)
	return int(math.Round(km/p.speedKmh*60)) + p.overheadMinutes
}

func fare(km float64, mode models.TransportMode, travelers models.TravelerInfo) models.Money {
	p := profileFor(mode)
	perPerson := p.fixedCost + km*p.costPerKm
	return models.Money{
		Amount:   roundCents(perPerson * float64(travelers.PayingPassengers())),
		Currency: models.ReportingCurrency,
	}
}

func carbon(km float64, mode models.TransportMode, travelers models.TravelerInfo) float64 {
	p := profileFor(mode)
	return math.Round(km*p.carbonPerKm*float64(travelers.TotalPassengers())*10) / 10
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
