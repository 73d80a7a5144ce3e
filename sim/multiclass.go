package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownClass is returned when a class has no entry in a rate mapping.
	ErrUnknownClass = errors.New("class not present in rates")

	// ErrZeroFalsePositiveMass is returned when the false-positive branch is
	// reached but the FPRs of all non-true classes sum to zero.
	ErrZeroFalsePositiveMass = errors.New("false positive rates of other classes sum to zero")
)

// MultiClassSimulation draws simulated predictions for an N-class problem.
// Not safe for concurrent use; give each goroutine its own instance.
type MultiClassSimulation[K comparable] struct {
	rand *rand.Rand
}

// NewMultiClassSimulation creates a multi-class simulation with its own random source.
func NewMultiClassSimulation[K comparable](opts ...Option) *MultiClassSimulation[K] {
	return &MultiClassSimulation[K]{rand: newSource(SubsystemMultiClass, opts)}
}

// Simulate returns the predicted class for an instance whose true class is trueClass.
//
// The classes of tpr, in order, are the class universe. With probability
// tpr[trueClass] the prediction is trueClass. Otherwise one of the remaining
// classes is picked with probability proportional to its fpr. Consumes one
// draw on the true-positive path and two on the false-positive path.
//
// Errors wrap ErrUnknownClass when trueClass is missing from tpr or another
// class is missing from fpr, and ErrZeroFalsePositiveMass when the other
// classes' fpr sum to zero (including when trueClass is the only class).
func (s *MultiClassSimulation[K]) Simulate(trueClass K, tpr, fpr *ClassRates[K]) (K, error) {
	var zero K

	r := s.rand.Float64()
	hit, ok := tpr.Rate(trueClass)
	if !ok {
		return zero, fmt.Errorf("tpr: true class %v: %w", trueClass, ErrUnknownClass)
	}
	if r <= hit {
		return trueClass, nil
	}

	others := make([]K, 0, tpr.Len())
	for _, c := range tpr.Classes() {
		if c != trueClass {
			others = append(others, c)
		}
	}

	weights := make([]float64, len(others))
	for i, c := range others {
		w, ok := fpr.Rate(c)
		if !ok {
			return zero, fmt.Errorf("fpr: class %v: %w", c, ErrUnknownClass)
		}
		weights[i] = w
	}
	total := floats.Sum(weights)
	if total == 0 {
		return zero, fmt.Errorf("true class %v: %w", trueClass, ErrZeroFalsePositiveMass)
	}
	for i := range weights {
		weights[i] /= total
	}
	cumulative := floats.CumSum(make([]float64, len(weights)), weights)

	r2 := s.rand.Float64()
	for i, c := range others {
		if r2 <= cumulative[i] {
			return c, nil
		}
	}

	// Rounding left the final cumulative weight just below r2.
	last := others[len(others)-1]
	logrus.Debugf("multiclass: cumulative weight %v < draw %v, falling back to last class %v",
		cumulative[len(cumulative)-1], r2, last)
	return last, nil
}
