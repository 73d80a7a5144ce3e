package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// BinaryTally counts binary predictions by (true, predicted) class.
type BinaryTally struct {
	counts [2][2]int
}

// Record adds one outcome. Any non-zero class counts as 1.
func (t *BinaryTally) Record(trueClass, predicted int) {
	t.counts[binaryIndex(trueClass)][binaryIndex(predicted)]++
}

// Count returns how many instances of trueClass were predicted as predicted.
func (t *BinaryTally) Count(trueClass, predicted int) int {
	return t.counts[binaryIndex(trueClass)][binaryIndex(predicted)]
}

// Total returns the number of recorded instances of trueClass.
func (t *BinaryTally) Total(trueClass int) int {
	row := t.counts[binaryIndex(trueClass)]
	return row[0] + row[1]
}

// Rate returns the fraction of trueClass instances predicted as predicted,
// or 0 when no instance of trueClass was recorded.
func (t *BinaryTally) Rate(trueClass, predicted int) float64 {
	n := t.Total(trueClass)
	if n == 0 {
		return 0
	}
	return float64(t.Count(trueClass, predicted)) / float64(n)
}

func binaryIndex(class int) int {
	if class == 0 {
		return 0
	}
	return 1
}

// RunBinary simulates one prediction per element of truth with fixed rates.
func RunBinary(s *BinarySimulation, truth []int, tpr, fpr float64) *BinaryTally {
	t := &BinaryTally{}
	for _, c := range truth {
		t.Record(c, s.Simulate(c, tpr, fpr))
	}
	return t
}

// ConfusionMatrix counts multi-class predictions by (true, predicted) class.
// Classes are kept in first-seen order.
type ConfusionMatrix[K comparable] struct {
	classes []K
	counts  map[K]map[K]int
}

// NewConfusionMatrix creates an empty matrix.
func NewConfusionMatrix[K comparable]() *ConfusionMatrix[K] {
	return &ConfusionMatrix[K]{counts: make(map[K]map[K]int)}
}

// Record adds one outcome.
func (m *ConfusionMatrix[K]) Record(trueClass, predicted K) {
	m.track(trueClass)
	m.track(predicted)
	m.counts[trueClass][predicted]++
}

func (m *ConfusionMatrix[K]) track(c K) {
	if _, ok := m.counts[c]; !ok {
		m.counts[c] = make(map[K]int)
		m.classes = append(m.classes, c)
	}
}

// Classes returns every class seen as truth or prediction, in first-seen order.
func (m *ConfusionMatrix[K]) Classes() []K {
	out := make([]K, len(m.classes))
	copy(out, m.classes)
	return out
}

// Count returns how many instances of trueClass were predicted as predicted.
func (m *ConfusionMatrix[K]) Count(trueClass, predicted K) int {
	return m.counts[trueClass][predicted]
}

// Total returns the number of recorded instances of trueClass.
func (m *ConfusionMatrix[K]) Total(trueClass K) int {
	n := 0
	for _, v := range m.counts[trueClass] {
		n += v
	}
	return n
}

// Recall returns the empirical true positive rate of class,
// or 0 when no instance of class was recorded.
func (m *ConfusionMatrix[K]) Recall(class K) float64 {
	n := m.Total(class)
	if n == 0 {
		return 0
	}
	return float64(m.Count(class, class)) / float64(n)
}

// Accuracy returns the fraction of all recorded instances predicted correctly,
// weighting each row by its size.
func (m *ConfusionMatrix[K]) Accuracy() float64 {
	recalls := make([]float64, 0, len(m.classes))
	sizes := make([]float64, 0, len(m.classes))
	for _, c := range m.classes {
		n := m.Total(c)
		if n == 0 {
			continue
		}
		recalls = append(recalls, m.Recall(c))
		sizes = append(sizes, float64(n))
	}
	if len(recalls) == 0 {
		return 0
	}
	return stat.Mean(recalls, sizes)
}

// RunMultiClass simulates one prediction per element of truth with fixed rates.
// The first error stops the run; the partial matrix is returned with it.
func RunMultiClass[K comparable](s *MultiClassSimulation[K], truth []K, tpr, fpr *ClassRates[K]) (*ConfusionMatrix[K], error) {
	m := NewConfusionMatrix[K]()
	for i, c := range truth {
		pred, err := s.Simulate(c, tpr, fpr)
		if err != nil {
			return m, fmt.Errorf("instance %d: %w", i, err)
		}
		m.Record(c, pred)
	}
	return m, nil
}
