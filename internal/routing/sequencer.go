package routing

import (
	"fmt"
	"math"

	"multi-city-planner/internal/distance"
	"multi-city-planner/internal/models"
)

type nearestNeighborSequencer struct {
	distanceCalc distance.Calculator
}

// NewNearestNeighborSequencer creates a greedy nearest-neighbor sequencer.
// The result is an approximation of the shortest path, not an optimum.
func NewNearestNeighborSequencer(distanceCalc distance.Calculator) Sequencer {
	return &nearestNeighborSequencer{
		distanceCalc: distanceCalc,
	}
}

func (s *nearestNeighborSequencer) Sequence(req *SequenceRequest) ([]models.CityDestination, error) {
	n := len(req.Cities)
	if n == 0 {
		return []models.CityDestination{}, nil
	}

	start := 0
	if req.StartID != "" {
		start = indexOf(req.Cities, req.StartID)
		if start < 0 {
			return nil, fmt.Errorf("start %q: %w", req.StartID, ErrUnknownEndpoint)
		}
	}

	end := -1
	if req.EndID != "" {
		end = indexOf(req.Cities, req.EndID)
		if end < 0 {
			return nil, fmt.Errorf("end %q: %w", req.EndID, ErrUnknownEndpoint)
		}
		if end == start {
			end = -1
		}
	}

	points := make([]models.Coordinates, n)
	for i := range req.Cities {
		points[i] = req.Cities[i].GetCoords()
	}
	matrix := s.distanceCalc.Matrix(points)

	visited := make([]bool, n)
	visited[start] = true
	path := make([]models.CityDestination, 0, n)
	path = append(path, req.Cities[start])

	current := start
	for len(path) < n {
		next := nearestUnvisited(matrix[current], visited, end, n-len(path))
		if next < 0 {
			return path, &ErrIncompleteSequence{Placed: len(path), Total: n}
		}
		visited[next] = true
		path = append(path, req.Cities[next])
		current = next
	}

	return path, nil
}

// nearestUnvisited picks the closest unvisited index. The withheld index is
// only eligible once it is the last city remaining. Unreachable entries
// (non-finite distances) are never picked; ties go to the lower index.
func nearestUnvisited(row []float64, visited []bool, withheld, remaining int) int {
	nearest := -1
	minDistance := math.Inf(1)

	for j, d := range row {
		if visited[j] {
			continue
		}
		if j == withheld && remaining > 1 {
			continue
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		if nearest < 0 || d < minDistance {
			minDistance = d
			nearest = j
		}
	}

	return nearest
}

func indexOf(cities []models.CityDestination, id string) int {
	for i := range cities {
		if cities[i].ID == id {
			return i
		}
	}
	return -1
}
