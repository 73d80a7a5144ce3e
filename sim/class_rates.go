package sim

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ClassRate pairs a class with a rate in [0,1].
type ClassRate[K comparable] struct {
	Class K
	Rate  float64
}

// ClassRates is an insertion-ordered mapping from class to rate.
// The order of classes drives the cumulative walk in MultiClassSimulation,
// so it is part of the value, unlike a plain Go map.
// The zero value is an empty mapping ready to use. A nil *ClassRates
// behaves as empty for reads.
type ClassRates[K comparable] struct {
	classes []K
	rates   map[K]float64
}

// NewClassRates builds a ClassRates from entries in order.
// A repeated class keeps its first position and takes the last rate.
func NewClassRates[K comparable](entries ...ClassRate[K]) *ClassRates[K] {
	cr := &ClassRates[K]{}
	for _, e := range entries {
		cr.Set(e.Class, e.Rate)
	}
	return cr
}

// Set assigns rate to class. New classes are appended to the order.
func (cr *ClassRates[K]) Set(class K, rate float64) {
	if cr.rates == nil {
		cr.rates = make(map[K]float64)
	}
	if _, ok := cr.rates[class]; !ok {
		cr.classes = append(cr.classes, class)
	}
	cr.rates[class] = rate
}

// Rate returns the rate for class and whether it is present.
func (cr *ClassRates[K]) Rate(class K) (float64, bool) {
	if cr == nil {
		return 0, false
	}
	r, ok := cr.rates[class]
	return r, ok
}

// Classes returns a copy of the classes in insertion order.
func (cr *ClassRates[K]) Classes() []K {
	if cr == nil {
		return nil
	}
	out := make([]K, len(cr.classes))
	copy(out, cr.classes)
	return out
}

// Len returns the number of classes.
func (cr *ClassRates[K]) Len() int {
	if cr == nil {
		return 0
	}
	return len(cr.classes)
}

// UnmarshalYAML decodes a YAML mapping, keeping the document's key order.
func (cr *ClassRates[K]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: class rates must be a mapping", value.Line)
	}
	decoded := ClassRates[K]{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var class K
		if err := keyNode.Decode(&class); err != nil {
			return fmt.Errorf("line %d: decoding class %q: %w", keyNode.Line, keyNode.Value, err)
		}
		if _, dup := decoded.rates[class]; dup {
			return fmt.Errorf("line %d: duplicate class %q", keyNode.Line, keyNode.Value)
		}
		var rate float64
		if err := valNode.Decode(&rate); err != nil {
			return fmt.Errorf("line %d: decoding rate for class %q: %w", valNode.Line, keyNode.Value, err)
		}
		decoded.Set(class, rate)
	}
	*cr = decoded
	return nil
}
