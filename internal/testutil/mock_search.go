package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"multi-city-planner/internal/models"
	"multi-city-planner/internal/transport"
)

// SearchCall tracks a call to the searcher
type SearchCall struct {
	FromID    string
	ToID      string
	Departure time.Time
}

// MockSearcher is a scripted transport.Searcher for testing. Pairs without
// an override fall through to Fallback, or return an empty result when
// Fallback is nil. It is safe for concurrent use.
type MockSearcher struct {
	Fallback transport.Searcher
	// Delay blocks each search until it elapses or the context ends
	Delay time.Duration

	mu        sync.Mutex
	overrides map[string]*transport.SearchResult
	failures  map[string]error
	calls     []SearchCall
}

// NewMockSearcher creates a searcher that finds nothing unless scripted
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{
		overrides: make(map[string]*transport.SearchResult),
		failures:  make(map[string]error),
	}
}

func (m *MockSearcher) makeKey(fromID, toID string) string {
	return fmt.Sprintf("%s->%s", fromID, toID)
}

// SetResult scripts the result for a city pair
func (m *MockSearcher) SetResult(fromID, toID string, result *transport.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[m.makeKey(fromID, toID)] = result
}

// SetError scripts a failure for a city pair
func (m *MockSearcher) SetError(fromID, toID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[m.makeKey(fromID, toID)] = err
}

// Search returns the scripted result for the pair
func (m *MockSearcher) Search(ctx context.Context, req *transport.SearchRequest) (*transport.SearchResult, error) {
	fromID, toID := cityID(req.From, req.FromName), cityID(req.To, req.ToName)

	m.mu.Lock()
	m.calls = append(m.calls, SearchCall{FromID: fromID, ToID: toID, Departure: req.DepartureDate})
	override, hasOverride := m.overrides[m.makeKey(fromID, toID)]
	failure := m.failures[m.makeKey(fromID, toID)]
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failure != nil {
		return nil, failure
	}
	if hasOverride {
		return override, nil
	}
	if m.Fallback != nil {
		return m.Fallback.Search(ctx, req)
	}
	return &transport.SearchResult{Options: []models.InterCityLeg{}}, nil
}

// Calls returns a copy of the recorded calls
func (m *MockSearcher) Calls() []SearchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SearchCall(nil), m.calls...)
}

// ResetCalls clears the recorded calls
func (m *MockSearcher) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func cityID(city *models.CityDestination, name string) string {
	if city != nil {
		return city.ID
	}
	return name
}
