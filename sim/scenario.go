package sim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario describes one simulated classifier experiment, loadable from YAML.
// Nil pointer fields mean "not set in YAML".
type Scenario struct {
	Seed       *int64           `yaml:"seed"`
	Binary     *BinaryRates     `yaml:"binary"`
	MultiClass *MultiClassRates `yaml:"multiclass"`

	rng *PartitionedRNG
}

// BinaryRates holds the per-call rates of a binary classifier.
type BinaryRates struct {
	TPR float64 `yaml:"tpr"`
	FPR float64 `yaml:"fpr"`
}

// MultiClassRates holds per-class rates of a multi-class classifier.
// The key order of tpr defines the class order.
type MultiClassRates struct {
	TPR ClassRates[string] `yaml:"tpr"`
	FPR ClassRates[string] `yaml:"fpr"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks rate ranges and that tpr and fpr cover the same classes.
// Simulate itself never validates rates; this is for config files.
func (sc *Scenario) Validate() error {
	if sc.Binary == nil && sc.MultiClass == nil {
		return fmt.Errorf("scenario defines neither binary nor multiclass rates")
	}
	if b := sc.Binary; b != nil {
		if err := checkRate("binary.tpr", b.TPR); err != nil {
			return err
		}
		if err := checkRate("binary.fpr", b.FPR); err != nil {
			return err
		}
	}
	if mc := sc.MultiClass; mc != nil {
		if mc.TPR.Len() < 2 {
			return fmt.Errorf("multiclass.tpr must list at least 2 classes, got %d", mc.TPR.Len())
		}
		for _, c := range mc.TPR.Classes() {
			r, _ := mc.TPR.Rate(c)
			if err := checkRate(fmt.Sprintf("multiclass.tpr[%s]", c), r); err != nil {
				return err
			}
			if _, ok := mc.FPR.Rate(c); !ok {
				return fmt.Errorf("multiclass.fpr missing class %q", c)
			}
		}
		for _, c := range mc.FPR.Classes() {
			r, _ := mc.FPR.Rate(c)
			if err := checkRate(fmt.Sprintf("multiclass.fpr[%s]", c), r); err != nil {
				return err
			}
			if _, ok := mc.TPR.Rate(c); !ok {
				return fmt.Errorf("multiclass.fpr has class %q not in multiclass.tpr", c)
			}
		}
		for _, c := range mc.TPR.Classes() {
			if mass := otherMass(&mc.FPR, c); mass == 0 {
				if hit, _ := mc.TPR.Rate(c); hit < 1 {
					logrus.Warnf("multiclass: true class %q can miss but other classes have zero fpr; Simulate will fail", c)
				}
			}
		}
	}
	return nil
}

func checkRate(field string, r float64) error {
	if r < 0 || r > 1 {
		return fmt.Errorf("%s must be in [0,1], got %f", field, r)
	}
	return nil
}

func otherMass(fpr *ClassRates[string], trueClass string) float64 {
	var sum float64
	for _, c := range fpr.Classes() {
		if c != trueClass {
			r, _ := fpr.Rate(c)
			sum += r
		}
	}
	return sum
}

// RNG returns the scenario's PartitionedRNG, keyed by Seed.
// Without a seed, a random key is chosen once and logged.
func (sc *Scenario) RNG() *PartitionedRNG {
	if sc.rng == nil {
		var key SimulationKey
		if sc.Seed != nil {
			key = NewSimulationKey(*sc.Seed)
		} else {
			key = NewSimulationKey(entropySeed())
			logrus.Infof("scenario: no seed set, using %d", key)
		}
		sc.rng = NewPartitionedRNG(key)
	}
	return sc.rng
}

// NewBinary returns a binary simulation seeded from the scenario.
// Simulations from repeated calls share one source, so their draws interleave.
func (sc *Scenario) NewBinary() *BinarySimulation {
	return NewBinarySimulation(WithRand(sc.RNG().ForSubsystem(SubsystemBinary)))
}

// NewMultiClass returns a multi-class simulation seeded from the scenario.
func (sc *Scenario) NewMultiClass() *MultiClassSimulation[string] {
	return NewMultiClassSimulation[string](WithRand(sc.RNG().ForSubsystem(SubsystemMultiClass)))
}

// RunBinary simulates one prediction per element of truth using the scenario's binary rates.
func (sc *Scenario) RunBinary(truth []int) (*BinaryTally, error) {
	if sc.Binary == nil {
		return nil, fmt.Errorf("scenario has no binary rates")
	}
	return RunBinary(sc.NewBinary(), truth, sc.Binary.TPR, sc.Binary.FPR), nil
}

// RunMultiClass simulates one prediction per element of truth using the scenario's multiclass rates.
func (sc *Scenario) RunMultiClass(truth []string) (*ConfusionMatrix[string], error) {
	if sc.MultiClass == nil {
		return nil, fmt.Errorf("scenario has no multiclass rates")
	}
	return RunMultiClass(sc.NewMultiClass(), truth, &sc.MultiClass.TPR, &sc.MultiClass.FPR)
}
