package distance

import (
	"math"

	"multi-city-planner/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// Calculator provides distance calculations between coordinates
type Calculator interface {
	DistanceKm(origin, dest models.Coordinates) float64
	Matrix(points []models.Coordinates) [][]float64
}

type haversineCalculator struct{}

// NewHaversineCalculator returns a Calculator backed by the great-circle formula
func NewHaversineCalculator() Calculator {
	return haversineCalculator{}
}

func (haversineCalculator) DistanceKm(origin, dest models.Coordinates) float64 {
	return Haversine(origin, dest)
}

func (haversineCalculator) Matrix(points []models.Coordinates) [][]float64 {
	return Matrix(points)
}

// Haversine returns the great-circle distance in kilometers between a and b
// on a spherical Earth. The result does not depend on argument order.
func Haversine(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	sinDLat := math.Sin(toRadians(b.Lat-a.Lat) / 2)
	sinDLng := math.Sin(toRadians(b.Lng-a.Lng) / 2)

	// cos(lat1)*cos(lat2) is evaluated first so swapping a and b yields the same bits
	h := sinDLat*sinDLat + (math.Cos(lat1)*math.Cos(lat2))*(sinDLng*sinDLng)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Matrix builds the symmetric N×N distance matrix for points
func Matrix(points []models.Coordinates) [][]float64 {
	n := len(points)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Haversine(points[i], points[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
