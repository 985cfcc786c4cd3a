package boosting

// The three roles of a stump search. The accumulator type parameter
// ties each role to a concrete statistics type, so variant families
// (regression here, classification elsewhere) share the search driver
// while the innermost Add/Transfer calls remain direct.

// SplitStatistics is the accumulator role: mutable per-bucket
// sufficient statistics under caller-driven sweep control.
type SplitStatistics[W any] interface {
	Add(label Label, bucket Bucket, weight float64, exampleWeights []float64, stride int)
	Transfer(label Label, from, to Bucket, weight float64, exampleWeights []float64, stride int)
	TransferStats(from, to Bucket, src W) error
	AddBulk(bucket Bucket, labels, weights []float64)
	Clip(bucket Bucket)
	SwapBuckets(b1, b2 Bucket)
	CopyFrom(src W)
	Reset()
}

// SplitScore is the scoring role: a pure functional over accumulator
// state, decomposed so a sweep can bound a candidate's score before
// paying for the full evaluation.
type SplitScore[W any] interface {
	Missing(w W) float64
	NonMissing(w W, missingTerm float64) float64
	Score(w W) float64
	CanBeat(w W, missingTerm, zBest float64) bool
	Better(z1, z2 float64) bool
	Equal(z1, z2 float64) bool
}

// LeafPredictor is the prediction role: it folds a winning accumulator
// into one leaf value per bucket.
type LeafPredictor[W any] interface {
	Predict(w W, epsilon float64, optional bool) (Predictions, error)
	UpdateRule() UpdateRule
}

// Role conformance of the regression instantiation.
var (
	_ SplitStatistics[*RegressionStats] = (*RegressionStats)(nil)
	_ SplitScore[*RegressionStats]      = RegressionScore{}
	_ LeafPredictor[*RegressionStats]   = RegressionPredictor{}
)
