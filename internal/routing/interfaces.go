package routing

import (
	"errors"
	"fmt"

	"multi-city-planner/internal/models"
)

// SequenceRequest contains the input for city sequencing
type SequenceRequest struct {
	Cities []models.CityDestination
	// StartID is the id of the first city; empty means Cities[0]
	StartID string
	// EndID optionally pins the last city. Equal to StartID means unconstrained.
	EndID string
}

// Sequencer orders a set of cities into a visiting path
type Sequencer interface {
	Sequence(req *SequenceRequest) ([]models.CityDestination, error)
}

// ErrUnknownEndpoint is returned when the start or end id is not among the cities
var ErrUnknownEndpoint = errors.New("endpoint city not in city list")

// ErrIncompleteSequence is returned alongside a partial path when some cities
// could not be reached from the path end
type ErrIncompleteSequence struct {
	Placed int
	Total  int
}

func (e *ErrIncompleteSequence) Error() string {
	return fmt.Sprintf("sequencing incomplete: placed %d of %d cities", e.Placed, e.Total)
}
