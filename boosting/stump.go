package boosting

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/core/parallel"
)

// predictBatchThreshold is the row count below which batch prediction
// stays sequential.
const predictBatchThreshold = 1024

// Stump is a trained one-split decision rule: examples are routed on a
// single feature against a threshold, with a third way out for missing
// values, and each bucket carries its own prediction.
type Stump struct {
	Feature     int         `json:"feature"`
	Threshold   float64     `json:"threshold"`
	Z           float64     `json:"z"`
	Predictions Predictions `json:"predictions"`
	Rule        UpdateRule  `json:"update_rule"`
}

// Bucket routes one feature value. NaN goes to BucketMissing, values at
// or below the threshold to BucketTrue, the rest to BucketFalse.
func (s Stump) Bucket(v float64) Bucket {
	if math.IsNaN(v) {
		return BucketMissing
	}
	if v <= s.Threshold {
		return BucketTrue
	}
	return BucketFalse
}

// Predict returns the stump's output for one example row.
func (s Stump) Predict(row []float64) float64 {
	return s.Predictions[s.Bucket(row[s.Feature])]
}

// PredictBatch returns the stump's output for every row of x.
func (s Stump) PredictBatch(x mat.Matrix) *mat.VecDense {
	rows, _ := x.Dims()
	if rows == 0 {
		return &mat.VecDense{}
	}
	out := mat.NewVecDense(rows, nil)
	parallel.ParallelizeWithThreshold(rows, predictBatchThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out.SetVec(i, s.Predictions[s.Bucket(x.At(i, s.Feature))])
		}
	})
	return out
}

// String renders the split in predicate form.
func (s Stump) String() string {
	return fmt.Sprintf("x[%d] <= %g ? %.6g : %.6g (missing %.6g, z=%.6g, rule=%s)",
		s.Feature, s.Threshold,
		s.Predictions[BucketTrue], s.Predictions[BucketFalse], s.Predictions[BucketMissing],
		s.Z, s.Rule)
}
