package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric selects the local cost between two aligned points
type DistanceMetric int

const (
	EuclideanDistance DistanceMetric = iota
	ManhattanDistance
	ChebyshevDistance
)

// DistanceFunction is a function type for computing distance between two vectors
type DistanceFunction func(a, b []float64) float64

// GetDistanceFunction returns the distance function for metric.
// Unknown metrics fall back to Euclidean.
func GetDistanceFunction(metric DistanceMetric) DistanceFunction {
	switch metric {
	case ManhattanDistance:
		return ManhattanDistanceFunc
	case ChebyshevDistance:
		return ChebyshevDistanceFunc
	default:
		return EuclideanDistanceFunc
	}
}

// EuclideanDistanceFunc calculates the L2 distance between two points
func EuclideanDistanceFunc(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanDistanceFunc calculates the L1 distance between two points
func ManhattanDistanceFunc(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// ChebyshevDistanceFunc calculates the L-infinity distance between two points
func ChebyshevDistanceFunc(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// GetDistanceMetricName returns a readable name for metric
func GetDistanceMetricName(metric DistanceMetric) string {
	switch metric {
	case EuclideanDistance:
		return "euclidean"
	case ManhattanDistance:
		return "manhattan"
	case ChebyshevDistance:
		return "chebyshev"
	default:
		return "unknown"
	}
}

// ParseDistanceMetric is the inverse of GetDistanceMetricName
func ParseDistanceMetric(name string) (DistanceMetric, bool) {
	switch name {
	case "euclidean", "":
		return EuclideanDistance, true
	case "manhattan":
		return ManhattanDistance, true
	case "chebyshev":
		return ChebyshevDistance, true
	default:
		return EuclideanDistance, false
	}
}
