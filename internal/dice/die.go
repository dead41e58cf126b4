// Package dice implements weighted dice: a fixed set of distinct face
// labels, each carrying a mutable positive weight that biases random draws.
package dice

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Validation failures surfaced by this package. All abort the call with no
// partial mutation of die state.
var (
	ErrInvalidFace      = errors.New("face is not part of the die's face set")
	ErrInvalidWeight    = errors.New("weight must be a positive number")
	ErrInvalidRollCount = errors.New("roll count must be at least 1")
)

// Face is a single labeled outcome of a die. Numeric faces are represented
// by their decimal string ("1", "2", ...).
type Face string

// NumericFaces builds the face set "1".."n" for a standard n-sided die.
func NumericFaces(n int) []Face {
	faces := make([]Face, n)
	for i := range faces {
		faces[i] = Face(strconv.Itoa(i + 1))
	}
	return faces
}

// Die holds an immutable face set and a mutable weight per face. Weights are
// relative: they are normalized against their sum at draw time and need not
// sum to 1.
type Die struct {
	faces   []Face
	weights map[Face]float64
}

// New creates a Die from a non-empty set of distinct faces, every face
// starting at weight 1.0.
func New(faces []Face) (*Die, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("die must have at least one face")
	}

	weights := make(map[Face]float64, len(faces))
	for _, f := range faces {
		if _, dup := weights[f]; dup {
			return nil, fmt.Errorf("duplicate face %q: faces must be distinct", f)
		}
		weights[f] = 1.0
	}

	return &Die{
		faces:   append([]Face(nil), faces...),
		weights: weights,
	}, nil
}

// Faces returns a copy of the die's face set in construction order.
func (d *Die) Faces() []Face {
	return append([]Face(nil), d.faces...)
}

// ChangeWeight sets the weight of a single face. The face must exist and the
// weight must be positive and finite; on failure the die is left untouched.
func (d *Die) ChangeWeight(face Face, weight float64) error {
	if _, ok := d.weights[face]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFace, face)
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, weight)
	}
	d.weights[face] = weight
	return nil
}

// ShowState returns a defensive copy of the current face-to-weight mapping.
func (d *Die) ShowState() map[Face]float64 {
	state := make(map[Face]float64, len(d.weights))
	for f, w := range d.weights {
		state[f] = w
	}
	return state
}

// Roll draws times independent faces, each selected with probability
// proportional to its current weight. The weights are snapshotted once per
// call as a cumulative distribution, so every draw within the call samples
// the same normalized distribution.
func (d *Die) Roll(times int) ([]Face, error) {
	if times < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRollCount, times)
	}

	// Cumulative weight table in face order.
	cumulative := make([]float64, len(d.faces))
	total := 0.0
	for i, f := range d.faces {
		total += d.weights[f]
		cumulative[i] = total
	}

	results := make([]Face, times)
	for i := range results {
		if f, ok := popMockFace(); ok {
			results[i] = f
			continue
		}
		u := randomFloat() * total
		results[i] = d.faces[searchCumulative(cumulative, u)]
	}
	return results, nil
}

// searchCumulative finds the first index whose cumulative weight exceeds u.
func searchCumulative(cumulative []float64, u float64) int {
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] <= u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// randomFloat fetches a strongly uniform value in [0, 1) via crypto/rand.
func randomFloat() float64 {
	const precision = 1 << 53
	n, _ := rand.Int(rand.Reader, big.NewInt(precision))
	return float64(n.Int64()) / precision
}
