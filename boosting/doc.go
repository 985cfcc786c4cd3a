// Package boosting implements decision stump training for boosted
// regression ensembles.
//
// A stump splits examples into FALSE/TRUE/MISSING branches by a single
// feature threshold. Training sweeps the candidate thresholds of every
// feature, maintaining weighted sufficient statistics per branch in a
// RegressionStats accumulator, scoring each candidate with the
// weighted-variance functional RegressionScore, and synthesizing leaf
// values for the winner with RegressionPredictor. The sweep is
// incremental: advancing past a feature value transfers the affected
// examples between buckets in O(1) instead of rescanning, and a cheap
// lower bound prunes candidates that cannot beat the best score found
// so far.
//
// The accumulator, scorer, and predictor roles are expressed as generic
// interfaces so structurally parallel variants (a classification
// instantiation, for example) can share the search driver.
package boosting
