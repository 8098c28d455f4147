package catalog

import (
	"sort"

	"github.com/samber/lo"

	"multi-city-planner/internal/models"
)

var (
	byID  map[string]*cityRecord
	byKey map[string]string
)

func init() {
	byID = make(map[string]*cityRecord, len(records))
	byKey = make(map[string]string, len(records)*2)

	for i := range records {
		rec := &records[i]
		rec.city.AirportCodes = lo.Map(rec.airports, func(a models.AirportInfo, _ int) string { return a.Code })
		rec.city.StationCodes = lo.Map(rec.stations, func(s models.StationInfo, _ int) string { return s.Code })

		byID[rec.city.ID] = rec
		byKey[Key(rec.city.ID)] = rec.city.ID
		byKey[Key(rec.city.Name)] = rec.city.ID
		for _, alias := range rec.aliases {
			byKey[Key(alias)] = rec.city.ID
		}
	}
}

// Resolve maps a city id, name or known alias to its canonical id
func Resolve(nameOrID string) (string, bool) {
	if _, ok := byID[nameOrID]; ok {
		return nameOrID, true
	}
	id, ok := byKey[Key(nameOrID)]
	return id, ok
}

// LookupCity returns the destination for a city id, name or alias
func LookupCity(nameOrID string) (models.CityDestination, bool) {
	id, ok := Resolve(nameOrID)
	if !ok {
		return models.CityDestination{}, false
	}
	return cloneCity(byID[id].city), true
}

// Cities returns every known destination ordered by id
func Cities() []models.CityDestination {
	out := lo.Map(records, func(rec cityRecord, _ int) models.CityDestination { return cloneCity(rec.city) })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Airports returns the major airports for a city, main hub first.
// Unknown cities yield an empty slice.
func Airports(city models.CityDestination) []models.AirportInfo {
	rec := recordFor(city)
	if rec == nil {
		return []models.AirportInfo{}
	}
	return append([]models.AirportInfo{}, rec.airports...)
}

// Stations returns the major train stations for a city, main station first.
// Unknown cities yield an empty slice.
func Stations(city models.CityDestination) []models.StationInfo {
	rec := recordFor(city)
	if rec == nil {
		return []models.StationInfo{}
	}
	return append([]models.StationInfo{}, rec.stations...)
}

// IsMajorCity reports whether the city is on the major-destination list
func IsMajorCity(city models.CityDestination) bool {
	rec := recordFor(city)
	return rec != nil && rec.major
}

// recordFor finds the catalog entry for a destination, falling back to its
// name when the caller supplied a city with a non-catalog id.
func recordFor(city models.CityDestination) *cityRecord {
	if rec, ok := byID[city.ID]; ok {
		return rec
	}
	if id, ok := byKey[Key(city.Name)]; ok {
		return byID[id]
	}
	return nil
}

func cloneCity(c models.CityDestination) models.CityDestination {
	c.AirportCodes = append([]string{}, c.AirportCodes...)
	c.StationCodes = append([]string{}, c.StationCodes...)
	return c
}
