package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/metrics"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/planner"
	"multi-city-planner/internal/transport"
)

const dateLayout = "2006-01-02"

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB       database.DataStore
	Planner  *planner.Orchestrator
	Searcher transport.Searcher
	Metrics  *metrics.Metrics
	Log      logger.Logger
	Locks    *TripLockStore
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// RegisterRoutes mounts every API endpoint on router
func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.HandleHealthCheck)

	router.HandlerFunc(http.MethodGet, "/api/v1/cities", h.HandleListCities)
	router.HandlerFunc(http.MethodGet, "/api/v1/transport/search", h.HandleTransportSearch)

	router.HandlerFunc(http.MethodGet, "/api/v1/trips", h.HandleListTrips)
	router.HandlerFunc(http.MethodPost, "/api/v1/trips", h.HandleCreateTrip)
	router.HandlerFunc(http.MethodGet, "/api/v1/trips/:id", h.HandleGetTrip)
	router.HandlerFunc(http.MethodDelete, "/api/v1/trips/:id", h.HandleDeleteTrip)
	router.HandlerFunc(http.MethodPost, "/api/v1/trips/:id/cities", h.HandleAddCity)
	router.HandlerFunc(http.MethodDelete, "/api/v1/trips/:id/stops/:index", h.HandleRemoveCity)
	router.HandlerFunc(http.MethodPost, "/api/v1/trips/:id/reorder", h.HandleReorderCities)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Log.Warn("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, planner.CodeValidation, message, nil)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	h.Log.Error("Internal error", "error", err)
	h.writeError(w, http.StatusInternalServerError, planner.CodeInternal, "An error occurred. Please try again.", nil)
}

// checkNotFound checks if an error is a not found error
func (h *Handler) checkNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// writeResult writes an orchestrator result envelope with a status derived
// from its code.
func (h *Handler) writeResult(w http.ResponseWriter, okStatus int, res *planner.Result) {
	if res.Success {
		h.writeJSON(w, okStatus, res)
		return
	}
	h.writeJSON(w, statusForCode(res.Code), res)
}

func statusForCode(code string) int {
	switch code {
	case planner.CodeValidation:
		return http.StatusBadRequest
	case planner.CodeInvariant:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// observe records the outcome of a planner operation
func (h *Handler) observe(op string, started time.Time, res *planner.Result) {
	h.Metrics.OperationTime.WithLabelValues(op).Observe(time.Since(started).Seconds())
	if !res.Success {
		h.Metrics.Failures.WithLabelValues(op, res.Code).Inc()
		return
	}
	if op != opGenerate {
		h.Metrics.TripMutations.WithLabelValues(op).Inc()
		return
	}
	h.Metrics.TripsGenerated.Inc()
	for _, leg := range res.Trip.Transitions {
		if leg.IsPlaceholder {
			h.Metrics.PlaceholderLegs.Inc()
		}
	}
}

// HandleHealthCheck handles GET /health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		h.Log.Warn("Health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// queryInt reads a non-negative integer query parameter, returning def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

func parseModes(raw []string) ([]models.TransportMode, error) {
	modes := make([]models.TransportMode, 0, len(raw))
	for _, m := range raw {
		mode := models.TransportMode(m)
		if !mode.Valid() {
			return nil, &unknownModeError{mode: m}
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

type unknownModeError struct {
	mode string
}

func (e *unknownModeError) Error() string {
	return "Unknown transport mode: " + e.mode
}
