// Package sim generates synthetic classifier predictions.
//
// Given a ground-truth label and per-class error rates, a simulation draws
// the label a classifier with those rates would have predicted. Downstream
// evaluation pipelines can then be exercised without a real model.
//
// # Simulations
//
//   - BinarySimulation: two classes, scalar TPR and FPR per call.
//   - MultiClassSimulation[K]: N classes keyed by any comparable K, with
//     ClassRates[K] mappings for TPR and FPR. The insertion order of the TPR
//     mapping fixes the order of the cumulative walk over false positives.
//
// Each simulation owns a private *rand.Rand. Seed it with WithSeed, or pass
// a source with WithRand. With neither, it is seeded from system entropy.
// Simulations are not safe for concurrent use: give each goroutine its own,
// deriving their sources from one SimulationKey through PartitionedRNG.
//
// # Scenarios
//
// A Scenario is a YAML file holding a seed and the rates of a binary and/or
// multi-class classifier (see examples/). RunBinary and RunMultiClass
// simulate a sequence of ground-truth labels and return a BinaryTally or
// ConfusionMatrix with the empirical rates.
package sim
