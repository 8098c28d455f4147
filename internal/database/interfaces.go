package database

import (
	"context"

	"multi-city-planner/internal/models"
)

// DataStore is the interface for trip persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Trips() TripRepository
}

// TripRepository handles trip persistence. Trips are stored whole; every
// Save replaces the previous value for the id.
type TripRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.TripSummary, int, error)
	Get(ctx context.Context, id string) (*models.MultiCityTrip, error)
	Save(ctx context.Context, trip *models.MultiCityTrip) error
	Delete(ctx context.Context, id string) error
}
