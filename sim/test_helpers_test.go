package sim

import (
	"math"
	"math/rand"
)

// fixedSource is a rand.Source whose Int63 always returns v.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64) {}

// fixedDraw returns a *rand.Rand whose Float64 always returns v/2^63.
func fixedDraw(v int64) *rand.Rand {
	return rand.New(fixedSource{v: v})
}

const (
	drawZero = int64(0)
	drawHalf = int64(1) << 62
	// drawMax makes Float64 return 1-2^-53, the largest value below 1.
	drawMax = math.MaxInt64 - (1<<10 - 1)
)

// rates builds ClassRates[string] from alternating class/rate arguments.
func rates(pairs ...any) *ClassRates[string] {
	cr := &ClassRates[string]{}
	for i := 0; i+1 < len(pairs); i += 2 {
		cr.Set(pairs[i].(string), pairs[i+1].(float64))
	}
	return cr
}
