package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrEmptySequence is returned when either DTW input is empty
var ErrEmptySequence = errors.New("empty sequence")

// StepPattern names the allowed moves through the cost matrix
type StepPattern string

const (
	// StepSymmetric allows vertical, horizontal and diagonal moves at equal cost
	StepSymmetric StepPattern = "symmetric2"
	// StepSymmetricPenalty adds 1 to every non-diagonal move, favouring
	// alignments that advance both sequences together
	StepSymmetricPenalty StepPattern = "symmetric1"
)

// DTWAlignment aligns two sequences with Dynamic Time Warping.
// Contours of the same utterance spoken at different speeds differ mostly
// in timing, which DTW absorbs before the values are compared.
type DTWAlignment struct {
	bandRadius     int // Sakoe-Chiba band, <= 0 for none
	stepPattern    StepPattern
	distanceMetric DistanceMetric
}

// DTWResult contains DTW alignment results
type DTWResult struct {
	Distance    float64      `json:"distance"`     // Total cost divided by path length
	Total       float64      `json:"total"`        // Accumulated cost of the path
	Path        []AlignPoint `json:"path"`         // Optimal alignment path, start to end
	QueryLength int          `json:"query_length"` // Length of query sequence
	RefLength   int          `json:"ref_length"`   // Length of reference sequence
	StepPattern StepPattern  `json:"step_pattern"` // Step pattern used
	BandRadius  int          `json:"band_radius"`  // Effective band radius, 0 if unconstrained
}

// AlignPoint represents a point in the alignment path
type AlignPoint struct {
	QueryIndex int     `json:"query_index"` // Index in query sequence
	RefIndex   int     `json:"ref_index"`   // Index in reference sequence
	Cost       float64 `json:"cost"`        // Local cost at this point
}

// NewDTWAlignment creates an unconstrained symmetric Euclidean DTW
func NewDTWAlignment() *DTWAlignment {
	return &DTWAlignment{
		bandRadius:     -1,
		stepPattern:    StepSymmetric,
		distanceMetric: EuclideanDistance,
	}
}

// NewDTWAlignmentWithParams creates DTW with custom parameters
func NewDTWAlignmentWithParams(bandRadius int, stepPattern StepPattern, metric DistanceMetric) *DTWAlignment {
	return &DTWAlignment{
		bandRadius:     bandRadius,
		stepPattern:    stepPattern,
		distanceMetric: metric,
	}
}

// effectiveRadius widens the band to |n-m| so the end cell stays reachable
func (dtw *DTWAlignment) effectiveRadius(n, m int) int {
	if dtw.bandRadius <= 0 {
		return 0
	}
	diff := n - m
	if diff < 0 {
		diff = -diff
	}
	return max(dtw.bandRadius, diff)
}

// Align performs DTW alignment between two sequences of equal-dimension points
func (dtw *DTWAlignment) Align(query, reference [][]float64) (*DTWResult, error) {
	if len(query) == 0 || len(reference) == 0 {
		return nil, ErrEmptySequence
	}
	if dtw.stepPattern != StepSymmetric && dtw.stepPattern != StepSymmetricPenalty {
		return nil, fmt.Errorf("unknown step pattern: %s", dtw.stepPattern)
	}

	queryLen := len(query)
	refLen := len(reference)
	radius := dtw.effectiveRadius(queryLen, refLen)

	// cost[i][j] is the cheapest path ending at query[i-1], reference[j-1]
	cost := make([][]float64, queryLen+1)
	for i := range cost {
		cost[i] = make([]float64, refLen+1)
		for j := range cost[i] {
			cost[i][j] = math.Inf(1)
		}
	}
	cost[0][0] = 0

	distanceFunc := GetDistanceFunction(dtw.distanceMetric)

	for i := 1; i <= queryLen; i++ {
		for j := 1; j <= refLen; j++ {
			if radius > 0 && abs(i-j) > radius {
				continue
			}
			local := distanceFunc(query[i-1], reference[j-1])
			cost[i][j] = local + dtw.bestPredecessorCost(cost, i, j)
		}
	}

	total := cost[queryLen][refLen]
	if math.IsInf(total, 1) {
		return nil, fmt.Errorf("no alignment path within band radius %d", radius)
	}

	path := dtw.backtrack(cost, query, reference, distanceFunc)

	return &DTWResult{
		Distance:    total / float64(len(path)),
		Total:       total,
		Path:        path,
		QueryLength: queryLen,
		RefLength:   refLen,
		StepPattern: dtw.stepPattern,
		BandRadius:  radius,
	}, nil
}

func (dtw *DTWAlignment) stepPenalty() float64 {
	if dtw.stepPattern == StepSymmetricPenalty {
		return 1
	}
	return 0
}

func (dtw *DTWAlignment) bestPredecessorCost(cost [][]float64, i, j int) float64 {
	p := dtw.stepPenalty()
	return math.Min(cost[i-1][j-1], math.Min(cost[i-1][j]+p, cost[i][j-1]+p))
}

// backtrack walks from the end cell to the origin choosing the cheapest
// predecessor, diagonal first on ties
func (dtw *DTWAlignment) backtrack(cost [][]float64, query, reference [][]float64, distanceFunc DistanceFunction) []AlignPoint {
	p := dtw.stepPenalty()
	i, j := len(query), len(reference)
	var path []AlignPoint

	for i > 0 && j > 0 {
		path = append(path, AlignPoint{
			QueryIndex: i - 1,
			RefIndex:   j - 1,
			Cost:       distanceFunc(query[i-1], reference[j-1]),
		})
		if i == 1 && j == 1 {
			break
		}

		diag := cost[i-1][j-1]
		up := cost[i-1][j] + p
		left := cost[i][j-1] + p
		switch {
		case diag <= up && diag <= left:
			i, j = i-1, j-1
		case up <= left:
			i--
		default:
			j--
		}
	}

	slices.Reverse(path)
	return path
}

// AlignVectors aligns two 1-D sequences
func (dtw *DTWAlignment) AlignVectors(query, reference []float64) (*DTWResult, error) {
	query2D := make([][]float64, len(query))
	ref2D := make([][]float64, len(reference))

	for i, v := range query {
		query2D[i] = []float64{v}
	}
	for i, v := range reference {
		ref2D[i] = []float64{v}
	}

	return dtw.Align(query2D, ref2D)
}

// AlignmentQuality summarises the shape of an alignment path
type AlignmentQuality struct {
	PathEfficiency float64 `json:"path_efficiency"` // longer sequence length / path length
	DiagonalRatio  float64 `json:"diagonal_ratio"`  // share of moves advancing both sequences
	AverageCost    float64 `json:"average_cost"`
}

// Quality calculates quality metrics for the alignment
func Quality(result *DTWResult) AlignmentQuality {
	if result == nil || len(result.Path) == 0 {
		return AlignmentQuality{}
	}

	var q AlignmentQuality
	expected := max(result.QueryLength, result.RefLength)
	q.PathEfficiency = float64(expected) / float64(len(result.Path))

	if len(result.Path) > 1 {
		diagonal := 0
		for i := 1; i < len(result.Path); i++ {
			if result.Path[i].QueryIndex > result.Path[i-1].QueryIndex &&
				result.Path[i].RefIndex > result.Path[i-1].RefIndex {
				diagonal++
			}
		}
		q.DiagonalRatio = float64(diagonal) / float64(len(result.Path)-1)
	} else {
		q.DiagonalRatio = 1
	}

	total := 0.0
	for _, point := range result.Path {
		total += point.Cost
	}
	q.AverageCost = total / float64(len(result.Path))

	return q
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
