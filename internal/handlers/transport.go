package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/transport"
)

// CityListResponse represents the catalog listing
type CityListResponse struct {
	Cities []models.CityDestination `json:"cities"`
	Total  int                      `json:"total"`
}

// HandleListCities handles GET /api/v1/cities. An optional country query
// parameter filters by ISO country code.
func (h *Handler) HandleListCities(w http.ResponseWriter, r *http.Request) {
	cities := catalog.Cities()
	if country := strings.ToUpper(r.URL.Query().Get("country")); country != "" {
		cities = lo.Filter(cities, func(c models.CityDestination, _ int) bool {
			return c.CountryCode == country
		})
	}

	h.writeJSON(w, http.StatusOK, CityListResponse{Cities: cities, Total: len(cities)})
}

// HandleTransportSearch handles GET /api/v1/transport/search
func (h *Handler) HandleTransportSearch(w http.ResponseWriter, r *http.Request) {
	req, msg := buildSearchRequest(r)
	if msg != "" {
		h.handleValidationError(w, msg)
		return
	}

	h.Metrics.TransportSearch.Inc()
	result, err := h.Searcher.Search(r.Context(), req)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func buildSearchRequest(r *http.Request) (*transport.SearchRequest, string) {
	q := r.URL.Query()

	from, ok := catalog.LookupCity(q.Get("from"))
	if !ok {
		return nil, "Unknown origin city: " + q.Get("from")
	}
	to, ok := catalog.LookupCity(q.Get("to"))
	if !ok {
		return nil, "Unknown destination city: " + q.Get("to")
	}

	departure := time.Now().UTC()
	if raw := q.Get("date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return nil, "Invalid date format (use YYYY-MM-DD)"
		}
		departure = d
	}

	req := &transport.SearchRequest{
		From:          &from,
		To:            &to,
		DepartureDate: departure,
		Travelers: models.TravelerInfo{
			Adults:   queryInt(r, "adults", 0),
			Children: queryInt(r, "children", 0),
			Infants:  queryInt(r, "infants", 0),
		},
		MaxDurationMinutes: queryInt(r, "max_duration", 0),
	}
	if req.Travelers.TotalPassengers() == 0 {
		req.Travelers.Adults = 1
	}

	if raw := q.Get("modes"); raw != "" {
		modes, err := parseModes(strings.Split(raw, ","))
		if err != nil {
			return nil, err.Error()
		}
		req.PreferredModes = modes
	}

	if raw := q.Get("max_price"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return nil, "Invalid max_price"
		}
		req.MaxPrice = &models.Money{Amount: amount, Currency: models.ReportingCurrency}
	}

	return req, ""
}
