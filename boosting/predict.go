package boosting

import (
	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// Predictions holds one leaf value per bucket, indexed by Bucket.
type Predictions [NumBuckets]float64

// RegressionPredictor synthesizes leaf predictions from a finalized
// accumulator: the weighted mean label of each bucket, with the global
// weighted mean standing in for buckets that carry no weight. Stateless
// and reentrant.
type RegressionPredictor struct{}

// Predict returns one prediction per bucket. epsilon and optional are
// part of the shared variant contract (smoothing and optional-feature
// handling in other instantiations); the regression variant ignores
// both. When no bucket carries weight there is no defined mean and an
// explicit error is returned instead of a 0/0 division.
func (RegressionPredictor) Predict(w *RegressionStats, epsilon float64, optional bool) (Predictions, error) {
	var preds Predictions

	var total, totalWt float64
	for b := Bucket(0); b < NumBuckets; b++ {
		total += w.dist[b]
		totalWt += w.wt[b]
	}

	for b := Bucket(0); b < NumBuckets; b++ {
		if w.wt[b] > minBucketWeight {
			preds[b] = w.dist[b] / w.wt[b]
			continue
		}
		// No weight in this bucket, fall back to the sample mean.
		if totalWt <= minBucketWeight {
			return Predictions{}, errors.NewValueError("RegressionPredictor.Predict",
				"no weight in any bucket")
		}
		preds[b] = total / totalWt
	}
	return preds, nil
}

// UpdateRule identifies the boosting weight update downstream training
// applies to stumps predicted this way.
func (RegressionPredictor) UpdateRule() UpdateRule { return UpdateNormal }
