package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/models"
)

const citySeparator = "|"

type tripRepository struct {
	store *Store
}

func (r *tripRepository) List(ctx context.Context, limit, offset int) ([]models.TripSummary, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `SELECT id, status, start_date, end_date, cities, last_modified_at
	          FROM trips
	          ORDER BY last_modified_at DESC, id
	          LIMIT ? OFFSET ?`

	rows, err := r.store.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	summaries := []models.TripSummary{}
	for rows.Next() {
		var s models.TripSummary
		var cities string
		if err := rows.Scan(&s.ID, &s.Status, &s.StartDate, &s.EndDate, &cities, &s.LastModifiedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		s.Cities = splitCities(cities)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trips: %w", err)
	}

	return summaries, total, nil
}

func (r *tripRepository) Get(ctx context.Context, id string) (*models.MultiCityTrip, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var payload string
	err := r.store.db.QueryRowContext(ctx, `SELECT payload FROM trips WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	var trip models.MultiCityTrip
	if err := json.Unmarshal([]byte(payload), &trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", id, err)
	}
	return &trip, nil
}

func (r *tripRepository) Save(ctx context.Context, trip *models.MultiCityTrip) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}
	summary := trip.Summary()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `INSERT INTO trips (id, status, start_date, end_date, cities, payload, created_at, last_modified_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(id) DO UPDATE SET
	              status = excluded.status,
	              start_date = excluded.start_date,
	              end_date = excluded.end_date,
	              cities = excluded.cities,
	              payload = excluded.payload,
	              last_modified_at = excluded.last_modified_at`

	_, err = r.store.db.ExecContext(ctx, query,
		trip.ID, string(trip.Status), trip.StartDate, trip.EndDate,
		strings.Join(summary.Cities, citySeparator), string(payload),
		trip.CreatedAt, trip.LastModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}
	return nil
}

func (r *tripRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}
	return nil
}

func splitCities(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, citySeparator)
}
