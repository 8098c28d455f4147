package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/planner"
)

// Operation labels used for metrics and logs
const (
	opGenerate = "generate"
	opAdd      = "add_city"
	opRemove   = "remove_city"
	opReorder  = "reorder_cities"
)

// CreateTripRequest represents the request to generate a trip. Cities,
// StartCity and EndCity accept catalog ids or display names.
type CreateTripRequest struct {
	Cities        []string               `json:"cities"`
	StartDate     string                 `json:"start_date"`
	EndDate       string                 `json:"end_date"`
	StartCity     string                 `json:"start_city,omitempty"`
	EndCity       string                 `json:"end_city,omitempty"`
	ReturnToStart bool                   `json:"return_to_start"`
	Travelers     models.TravelerInfo    `json:"travelers"`
	Preferences   models.TripPreferences `json:"preferences"`
}

// TripListResponse represents the list response
type TripListResponse struct {
	Trips  []models.TripSummary `json:"trips"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// HandleCreateTrip handles POST /api/v1/trips
func (h *Handler) HandleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Debug("Invalid trip request body", "error", err)
		h.handleValidationError(w, "Invalid request body")
		return
	}

	genReq, msg := buildGenerateRequest(&req)
	if msg != "" {
		h.handleValidationError(w, msg)
		return
	}

	started := time.Now()
	res := h.Planner.Generate(r.Context(), genReq)
	h.observe(opGenerate, started, res)

	if res.Success {
		if err := h.DB.Trips().Save(r.Context(), res.Trip); err != nil {
			h.handleInternalError(w, err)
			return
		}
		h.Log.Info("Trip created", "id", res.Trip.ID, "stops", len(res.Trip.Stops), "warnings", len(res.Warnings))
	}
	h.writeResult(w, http.StatusCreated, res)
}

// buildGenerateRequest resolves names against the catalog. A non-empty
// message means the request is invalid.
func buildGenerateRequest(req *CreateTripRequest) (*planner.GenerateRequest, string) {
	cities := make([]models.CityDestination, 0, len(req.Cities))
	for _, name := range req.Cities {
		city, ok := catalog.LookupCity(name)
		if !ok {
			return nil, "Unknown city: " + name
		}
		cities = append(cities, city)
	}

	if req.StartDate == "" || req.EndDate == "" {
		return nil, "Start and end dates are required"
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, "Invalid start date format (use YYYY-MM-DD)"
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, "Invalid end date format (use YYYY-MM-DD)"
	}

	genReq := &planner.GenerateRequest{
		Cities:        cities,
		StartDate:     start,
		EndDate:       end,
		ReturnToStart: req.ReturnToStart,
		Travelers:     req.Travelers,
		Preferences:   req.Preferences,
	}
	if req.StartCity != "" {
		id, ok := catalog.Resolve(req.StartCity)
		if !ok {
			return nil, "Unknown city: " + req.StartCity
		}
		genReq.StartCityID = id
	}
	if req.EndCity != "" {
		id, ok := catalog.Resolve(req.EndCity)
		if !ok {
			return nil, "Unknown city: " + req.EndCity
		}
		genReq.EndCityID = id
	}
	return genReq, ""
}

// HandleListTrips handles GET /api/v1/trips
func (h *Handler) HandleListTrips(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	if limit == 0 {
		limit = 20
	}
	offset := queryInt(r, "offset", 0)

	trips, total, err := h.DB.Trips().List(r.Context(), limit, offset)
	if err != nil {
		h.Log.Error("Failed to list trips", "limit", limit, "offset", offset, "error", err)
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TripListResponse{
		Trips:  trips,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleGetTrip handles GET /api/v1/trips/:id
func (h *Handler) HandleGetTrip(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	trip, err := h.DB.Trips().Get(r.Context(), id)
	if err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Trip not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, trip)
}

// HandleDeleteTrip handles DELETE /api/v1/trips/:id
func (h *Handler) HandleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	var err error
	h.Locks.Update(id, func() {
		err = h.DB.Trips().Delete(r.Context(), id)
	})
	if err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Trip not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.Log.Info("Trip deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
