package transport

import (
	"context"
	"sort"
	"time"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/distance"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/models"
)

// Scoring weights for the recommended option
const (
	baseScore        = 100.0
	carbonWeight     = 0.5
	priceWeight      = 0.1
	durationWeight   = 0.05
	railBonus        = 20.0
	railBonusMaxMins = 300
)

// SearchRequest describes a transport search between two cities. From and To
// take precedence; when nil the names are resolved through the catalog.
type SearchRequest struct {
	From               *models.CityDestination
	To                 *models.CityDestination
	FromName           string
	ToName             string
	DepartureDate      time.Time
	Travelers          models.TravelerInfo
	PreferredModes     []models.TransportMode
	MaxPrice           *models.Money
	MaxDurationMinutes int
}

// SearchResult holds every viable option plus the three picks. An empty
// result is valid: it means no mode could serve the pair.
type SearchResult struct {
	Options     []models.InterCityLeg `json:"options"`
	Cheapest    *models.InterCityLeg  `json:"cheapest"`
	Fastest     *models.InterCityLeg  `json:"fastest"`
	Recommended *models.InterCityLeg  `json:"recommended"`
	DistanceKm  float64               `json:"distance_km"`
}

// Best returns recommended, else cheapest, else the first option, else nil
func (r *SearchResult) Best() *models.InterCityLeg {
	if r == nil {
		return nil
	}
	if r.Recommended != nil {
		return r.Recommended
	}
	if r.Cheapest != nil {
		return r.Cheapest
	}
	if len(r.Options) > 0 {
		return &r.Options[0]
	}
	return nil
}

// Searcher finds transport options between two cities
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}

type searchService struct {
	generator OptionGenerator
	log       logger.Logger
}

// NewSearchService creates a Searcher over the given option generator
func NewSearchService(generator OptionGenerator, log logger.Logger) Searcher {
	return &searchService{
		generator: generator,
		log:       log,
	}
}

func (s *searchService) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, fromOK := resolveCity(req.From, req.FromName)
	to, toOK := resolveCity(req.To, req.ToName)
	if !fromOK || !toOK {
		s.log.Debug("Transport search with unresolved city", "from", req.FromName, "to", req.ToName)
		return emptyResult(0), nil
	}

	km := distance.Haversine(from.Coordinates, to.Coordinates)
	modes := candidateModes(req.PreferredModes, km)

	options := make([]models.InterCityLeg, 0, len(modes))
	for _, mode := range modes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		leg := s.generator.Generate(from, to, req.DepartureDate, req.Travelers, mode)
		if leg == nil {
			continue
		}
		if !withinLimits(leg, req.MaxPrice, req.MaxDurationMinutes) {
			continue
		}
		options = append(options, *leg)
	}

	result := summarize(options)
	result.DistanceKm = roundCents(km)

	s.log.Debug("Transport search complete",
		"from", from.ID, "to", to.ID, "distance_km", result.DistanceKm,
		"modes", modes, "options", len(options))
	return result, nil
}

// RecommendedModes returns the distance-tiered default modes: short hops
// prefer ground transport and only long hops default to flying.
func RecommendedModes(km float64) []models.TransportMode {
	switch {
	case km <= 300:
		return []models.TransportMode{models.TransportBus, models.TransportTrain, models.TransportCarRental}
	case km <= 800:
		return []models.TransportMode{models.TransportTrain, models.TransportBus, models.TransportFlight}
	case km <= 1500:
		return []models.TransportMode{models.TransportTrain, models.TransportFlight}
	default:
		return []models.TransportMode{models.TransportFlight}
	}
}

// Score rates a leg for the recommended pick; higher is better
func Score(leg *models.InterCityLeg) float64 {
	score := baseScore
	score -= leg.CarbonKg * carbonWeight
	score -= leg.Price.Amount * priceWeight
	score -= float64(leg.DurationMinutes) * durationWeight
	if leg.Mode == models.TransportTrain && leg.DurationMinutes < railBonusMaxMins {
		score += railBonus
	}
	return score
}

func candidateModes(preferred []models.TransportMode, km float64) []models.TransportMode {
	modes := make([]models.TransportMode, 0, len(preferred))
	seen := make(map[models.TransportMode]bool, len(preferred))
	for _, m := range preferred {
		if !m.Valid() || seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}
	if len(modes) == 0 {
		return RecommendedModes(km)
	}
	return modes
}

func withinLimits(leg *models.InterCityLeg, maxPrice *models.Money, maxDuration int) bool {
	if maxPrice != nil && leg.Price.Amount > maxPrice.Amount {
		return false
	}
	if maxDuration > 0 && leg.DurationMinutes > maxDuration {
		return false
	}
	return true
}

func summarize(options []models.InterCityLeg) *SearchResult {
	if len(options) == 0 {
		return emptyResult(0)
	}

	byPrice := append([]models.InterCityLeg(nil), options...)
	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Price.Amount < byPrice[j].Price.Amount })
	cheapest := byPrice[0]

	byDuration := append([]models.InterCityLeg(nil), options...)
	sort.SliceStable(byDuration, func(i, j int) bool { return byDuration[i].DurationMinutes < byDuration[j].DurationMinutes })
	fastest := byDuration[0]

	// strict comparison keeps the earliest generated option on ties
	best := 0
	bestScore := Score(&options[0])
	for i := 1; i < len(options); i++ {
		if sc := Score(&options[i]); sc > bestScore {
			best = i
			bestScore = sc
		}
	}
	recommended := options[best]

	return &SearchResult{
		Options:     options,
		Cheapest:    &cheapest,
		Fastest:     &fastest,
		Recommended: &recommended,
	}
}

func emptyResult(km float64) *SearchResult {
	return &SearchResult{Options: []models.InterCityLeg{}, DistanceKm: km}
}

func resolveCity(city *models.CityDestination, name string) (models.CityDestination, bool) {
	if city != nil {
		return *city, true
	}
	if name == "" {
		return models.CityDestination{}, false
	}
	return catalog.LookupCity(name)
}
