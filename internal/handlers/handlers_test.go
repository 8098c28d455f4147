package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/metrics"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/planner"
	"multi-city-planner/internal/testutil"
	"multi-city-planner/internal/transport"
)

type testEnv struct {
	handler *Handler
	store   *testutil.MemoryStore
	router  *httprouter.Router
}

func setupTestHandler(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewNop()
	searcher := transport.NewSearchService(transport.NewOptionGenerator(), log)
	store := testutil.NewMemoryStore()

	h := &Handler{
		DB:       store,
		Planner:  planner.NewOrchestrator(searcher, log, planner.DefaultConfig()),
		Searcher: searcher,
		Metrics:  metrics.NewMetrics("test", prometheus.NewRegistry()),
		Log:      log,
		Locks:    NewTripLockStore(),
	}
	router := httprouter.New()
	h.RegisterRoutes(router)

	return &testEnv{handler: h, store: store, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) planner.Result {
	t.Helper()
	var res planner.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var res ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func stopIDs(trip *models.MultiCityTrip) []string {
	ids := make([]string, len(trip.Stops))
	for i, s := range trip.Stops {
		ids[i] = s.City.ID
	}
	return ids
}

// createRoundTrip generates Paris, Rome and Barcelona returning to Paris
func createRoundTrip(t *testing.T, env *testEnv) *models.MultiCityTrip {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/trips", CreateTripRequest{
		Cities:        []string{"Paris", "Rome", "Barcelona"},
		StartDate:     "2026-06-01",
		EndDate:       "2026-06-10",
		ReturnToStart: true,
		Travelers:     models.TravelerInfo{Adults: 2},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decodeResult(t, rec)
	require.True(t, res.Success)
	require.NotNil(t, res.Trip)
	return res.Trip
}

func TestHealthCheck(t *testing.T) {
	env := setupTestHandler(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	env.store.HealthErr = errors.New("disk gone")
	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateTrip(t *testing.T) {
	env := setupTestHandler(t)

	trip := createRoundTrip(t, env)

	assert.Equal(t, []string{"paris", "barcelona", "rome", "paris"}, stopIDs(trip))
	assert.Equal(t, models.TravelerInfo{Adults: 2}, trip.Travelers)
	assert.Equal(t, 1, env.store.Trips().(*testutil.MemoryTripRepository).Count())
	assert.Equal(t, 1.0, promtest.ToFloat64(env.handler.Metrics.TripsGenerated))
	assert.Equal(t, 0.0, promtest.ToFloat64(env.handler.Metrics.PlaceholderLegs))

	rec := env.do(t, http.MethodGet, "/api/v1/trips/"+trip.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored models.MultiCityTrip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stored))
	assert.Equal(t, trip.ID, stored.ID)
	assert.Equal(t, stopIDs(trip), stopIDs(&stored))
}

func TestCreateTripRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		message string
	}{
		{
			name:    "unknown city",
			body:    CreateTripRequest{Cities: []string{"Paris", "Atlantis"}, StartDate: "2026-06-01", EndDate: "2026-06-10"},
			message: "Unknown city: Atlantis",
		},
		{
			name:    "missing dates",
			body:    CreateTripRequest{Cities: []string{"Paris", "Rome"}},
			message: "Start and end dates are required",
		},
		{
			name:    "malformed date",
			body:    CreateTripRequest{Cities: []string{"Paris", "Rome"}, StartDate: "01/06/2026", EndDate: "2026-06-10"},
			message: "Invalid start date format (use YYYY-MM-DD)",
		},
		{
			name:    "unknown start city",
			body:    CreateTripRequest{Cities: []string{"Paris", "Rome"}, StartDate: "2026-06-01", EndDate: "2026-06-10", StartCity: "Gotham"},
			message: "Unknown city: Gotham",
		},
		{
			name:    "not json",
			body:    "cities=Paris",
			message: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestHandler(t)

			rec := env.do(t, http.MethodPost, "/api/v1/trips", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			res := decodeError(t, rec)
			assert.Equal(t, planner.CodeValidation, res.Error.Code)
			assert.Equal(t, tt.message, res.Error.Message)
		})
	}
}

func TestCreateTripPlannerRejection(t *testing.T) {
	env := setupTestHandler(t)

	rec := env.do(t, http.MethodPost, "/api/v1/trips", CreateTripRequest{
		Cities:    []string{"Paris"},
		StartDate: "2026-06-01",
		EndDate:   "2026-06-10",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	res := decodeResult(t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, planner.CodeValidation, res.Code)
	assert.Equal(t, "At least 2 cities are required", res.Error)
	assert.Nil(t, res.Trip)

	assert.Equal(t, 0, env.store.Trips().(*testutil.MemoryTripRepository).Count())
	assert.Equal(t, 1.0, promtest.ToFloat64(env.handler.Metrics.Failures.WithLabelValues(opGenerate, planner.CodeValidation)))
	assert.Equal(t, 0.0, promtest.ToFloat64(env.handler.Metrics.TripsGenerated))
}

func TestGetTripNotFound(t *testing.T) {
	env := setupTestHandler(t)

	rec := env.do(t, http.MethodGet, "/api/v1/trips/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Error.Code)
}

func TestListTrips(t *testing.T) {
	env := setupTestHandler(t)
	ctx := t.Context()
	require.NoError(t, env.store.Trips().Save(ctx, testutil.SampleTrip("a")))
	require.NoError(t, env.store.Trips().Save(ctx, testutil.SampleTrip("b")))
	require.NoError(t, env.store.Trips().Save(ctx, testutil.SampleTrip("c")))

	rec := env.do(t, http.MethodGet, "/api/v1/trips?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TripListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 1, resp.Offset)
	require.Len(t, resp.Trips, 2)
	assert.Equal(t, "b", resp.Trips[0].ID)
	assert.Equal(t, []string{"Paris", "Rome"}, resp.Trips[0].Cities)

	rec = env.do(t, http.MethodGet, "/api/v1/trips?limit=bogus", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 20, resp.Limit)
	assert.Len(t, resp.Trips, 3)
}

func TestDeleteTrip(t *testing.T) {
	env := setupTestHandler(t)
	require.NoError(t, env.store.Trips().Save(t.Context(), testutil.SampleTrip("a")))

	rec := env.do(t, http.MethodDelete, "/api/v1/trips/a", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/trips/a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, env.handler.Locks.Len())
}

func TestAddCity(t *testing.T) {
	env := setupTestHandler(t)
	trip := createRoundTrip(t, env)

	rec := env.do(t, http.MethodPost, "/api/v1/trips/"+trip.ID+"/cities", map[string]interface{}{
		"city":             "Florence",
		"after_stop_index": 1,
		"nights":           2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeResult(t, rec)
	require.True(t, res.Success)
	assert.Equal(t, []string{"paris", "barcelona", "florence", "rome", "paris"}, stopIDs(res.Trip))
	assert.Equal(t, models.TripStatusModified, res.Trip.Status)
	assert.Equal(t, 1.0, promtest.ToFloat64(env.handler.Metrics.TripMutations.WithLabelValues(opAdd)))

	stored, err := env.store.Trips().Get(t.Context(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, stopIDs(res.Trip), stopIDs(stored))
	assert.Equal(t, 0, env.handler.Locks.Len())
}

func TestAddCityRejections(t *testing.T) {
	env := setupTestHandler(t)
	trip := createRoundTrip(t, env)
	path := "/api/v1/trips/" + trip.ID + "/cities"

	rec := env.do(t, http.MethodPost, path, map[string]interface{}{"city": "Florence"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "after_stop_index is required", decodeError(t, rec).Error.Message)

	rec = env.do(t, http.MethodPost, path, map[string]interface{}{"city": "Narnia", "after_stop_index": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown city: Narnia", decodeError(t, rec).Error.Message)

	rec = env.do(t, http.MethodPost, path, map[string]interface{}{"city": "Rome", "after_stop_index": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeResult(t, rec)
	assert.Equal(t, "Rome is already part of this trip", res.Error)

	rec = env.do(t, http.MethodPost, "/api/v1/trips/missing/cities", map[string]interface{}{"city": "Florence", "after_stop_index": 0})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := env.store.Trips().Get(t.Context(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, stopIDs(trip), stopIDs(stored))
}

func TestRemoveCity(t *testing.T) {
	env := setupTestHandler(t)
	trip := createRoundTrip(t, env)

	rec := env.do(t, http.MethodDelete, "/api/v1/trips/"+trip.ID+"/stops/0", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, planner.CodeInvariant, decodeResult(t, rec).Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/trips/"+trip.ID+"/stops/first", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/trips/"+trip.ID+"/stops/1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeResult(t, rec)
	assert.Equal(t, []string{"paris", "rome", "paris"}, stopIDs(res.Trip))

	// down to two cities now
	rec = env.do(t, http.MethodDelete, "/api/v1/trips/"+trip.ID+"/stops/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1.0, promtest.ToFloat64(env.handler.Metrics.TripMutations.WithLabelValues(opRemove)))
	assert.Equal(t, 2.0, promtest.ToFloat64(env.handler.Metrics.Failures.WithLabelValues(opRemove, planner.CodeInvariant)))
}

func TestReorderCities(t *testing.T) {
	env := setupTestHandler(t)
	trip := createRoundTrip(t, env)
	path := "/api/v1/trips/" + trip.ID + "/reorder"

	rec := env.do(t, http.MethodPost, path, map[string]int{"from_index": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]int{"from_index": 0, "to_index": 2})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]int{"from_index": 1, "to_index": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeResult(t, rec)
	assert.Equal(t, []string{"paris", "rome", "barcelona", "paris"}, stopIDs(res.Trip))
}

func TestTransportSearch(t *testing.T) {
	env := setupTestHandler(t)

	rec := env.do(t, http.MethodGet, "/api/v1/transport/search?from=Paris&to=rome&date=2026-06-01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result transport.SearchResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.Options, 2)
	assert.Equal(t, models.TransportTrain, result.Options[0].Mode)
	assert.Equal(t, models.TransportFlight, result.Options[1].Mode)
	require.NotNil(t, result.Recommended)
	assert.InDelta(t, 1105.28, result.DistanceKm, 0.01)
	assert.Equal(t, 1.0, promtest.ToFloat64(env.handler.Metrics.TransportSearch))

	rec = env.do(t, http.MethodGet, "/api/v1/transport/search?from=Paris&to=Rome&date=2026-06-01&modes=flight&adults=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.Options, 1)
	assert.Equal(t, models.TransportFlight, result.Options[0].Mode)
}

func TestTransportSearchRequestErrors(t *testing.T) {
	env := setupTestHandler(t)

	for _, query := range []string{
		"from=Paris",
		"from=Atlantis&to=Rome",
		"from=Paris&to=Rome&date=tomorrow",
		"from=Paris&to=Rome&modes=teleport",
		"from=Paris&to=Rome&max_price=cheap",
	} {
		rec := env.do(t, http.MethodGet, "/api/v1/transport/search?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestListCities(t *testing.T) {
	env := setupTestHandler(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cities?country=it", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CityListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 4, resp.Total)
	ids := make([]string, len(resp.Cities))
	for i, c := range resp.Cities {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"florence", "milan", "rome", "venice"}, ids)

	rec = env.do(t, http.MethodGet, "/api/v1/cities", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 22, resp.Total)
}
