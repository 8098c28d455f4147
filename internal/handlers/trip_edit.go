package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/planner"
)

// AddCityRequest represents the request to insert a city into a trip
type AddCityRequest struct {
	City           string `json:"city"`
	AfterStopIndex *int   `json:"after_stop_index"`
	Nights         int    `json:"nights"`
}

// ReorderRequest represents the request to move a stop
type ReorderRequest struct {
	FromIndex *int `json:"from_index"`
	ToIndex   *int `json:"to_index"`
}

// HandleAddCity handles POST /api/v1/trips/:id/cities
func (h *Handler) HandleAddCity(w http.ResponseWriter, r *http.Request) {
	var req AddCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.AfterStopIndex == nil {
		h.handleValidationError(w, "after_stop_index is required")
		return
	}
	city, ok := catalog.LookupCity(req.City)
	if !ok {
		h.handleValidationError(w, "Unknown city: "+req.City)
		return
	}

	h.editTrip(w, r, opAdd, func(trip *models.MultiCityTrip) *planner.Result {
		return h.Planner.AddCity(r.Context(), trip, city, *req.AfterStopIndex, req.Nights)
	})
}

// HandleRemoveCity handles DELETE /api/v1/trips/:id/stops/:index
func (h *Handler) HandleRemoveCity(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(pathParam(r, "index"))
	if err != nil {
		h.handleValidationError(w, "Invalid stop index")
		return
	}

	h.editTrip(w, r, opRemove, func(trip *models.MultiCityTrip) *planner.Result {
		return h.Planner.RemoveCity(r.Context(), trip, index)
	})
}

// HandleReorderCities handles POST /api/v1/trips/:id/reorder
func (h *Handler) HandleReorderCities(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.FromIndex == nil || req.ToIndex == nil {
		h.handleValidationError(w, "from_index and to_index are required")
		return
	}

	h.editTrip(w, r, opReorder, func(trip *models.MultiCityTrip) *planner.Result {
		return h.Planner.ReorderCities(r.Context(), trip, *req.FromIndex, *req.ToIndex)
	})
}

// editTrip loads the trip under its lock, applies edit and saves the new
// value when the edit succeeds.
func (h *Handler) editTrip(w http.ResponseWriter, r *http.Request, op string, edit func(*models.MultiCityTrip) *planner.Result) {
	id := pathParam(r, "id")

	unlock := h.Locks.Lock(id)
	defer unlock()

	trip, err := h.DB.Trips().Get(r.Context(), id)
	if err != nil {
		if h.checkNotFound(err) {
			h.handleNotFound(w, "Trip not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	started := time.Now()
	res := edit(trip)
	h.observe(op, started, res)

	if res.Success {
		if err := h.DB.Trips().Save(r.Context(), res.Trip); err != nil {
			h.handleInternalError(w, err)
			return
		}
		h.Log.Info("Trip edited", "id", id, "operation", op, "stops", len(res.Trip.Stops))
	} else {
		h.Log.Debug("Trip edit rejected", "id", id, "operation", op, "code", res.Code, "error", res.Error)
	}
	h.writeResult(w, http.StatusOK, res)
}
