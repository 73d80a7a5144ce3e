package sim

import "math/rand"

// BinarySimulation draws simulated predictions for a two-class problem.
// Not safe for concurrent use; give each goroutine its own instance.
type BinarySimulation struct {
	rand *rand.Rand
}

// NewBinarySimulation creates a binary simulation with its own random source.
func NewBinarySimulation(opts ...Option) *BinarySimulation {
	return &BinarySimulation{rand: newSource(SubsystemBinary, opts)}
}

// Simulate returns the predicted class (0 or 1) for an instance whose true
// class is trueClass. Consumes exactly one draw.
//
// For trueClass 0 the prediction is 0 with probability tpr. For any other
// trueClass the prediction is 1 with probability 1-fpr. Rates are not
// validated; values outside [0,1] saturate.
func (s *BinarySimulation) Simulate(trueClass int, tpr, fpr float64) int {
	r := s.rand.Float64()
	if trueClass == 0 {
		if r <= tpr {
			return 0
		}
		return 1
	}
	if r <= 1-fpr {
		return 1
	}
	return 0
}
