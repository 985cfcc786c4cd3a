package boosting

import (
	"fmt"

	"github.com/happyguy1986/rtbkit/core/simd"
	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// RegressionStats accumulates weighted sufficient statistics of the
// regression target for each bucket of a candidate split:
//
//	dist[b] = Σ weight·label
//	sqr[b]  = Σ weight·label²
//	wt[b]   = Σ weight
//
// A sweep worker owns one accumulator per feature and drives it through
// Add, Transfer, Clip and SwapBuckets; RegressionScore and
// RegressionPredictor read it without mutating.
type RegressionStats struct {
	dist [NumBuckets]float64
	sqr  [NumBuckets]float64
	wt   [NumBuckets]float64
}

// NewRegressionStats constructs an accumulator for a single-target
// regression problem. Any other label arity is an invalid problem for
// this variant.
func NewRegressionStats(numLabels int) (*RegressionStats, error) {
	if numLabels != 1 {
		return nil, errors.NewInvalidProblemError("NewRegressionStats", numLabels)
	}
	return &RegressionStats{}, nil
}

// NumLabels returns the label arity of the accumulator, always 1 for
// the regression variant.
func (s *RegressionStats) NumLabels() int { return 1 }

// Add accrues one example into a bucket. The effective weight is
// exampleWeights[0] scaled by weight; stride addresses interleaved
// multi-label weight layouts and is ignored by this single-label
// variant beyond reading channel 0.
func (s *RegressionStats) Add(label Label, bucket Bucket, weight float64, exampleWeights []float64, stride int) {
	f := label.Value()
	w := exampleWeights[0] * weight
	fw := f * w
	s.dist[bucket] += fw
	s.sqr[bucket] += f * fw
	s.wt[bucket] += w
}

// Transfer moves one example's contribution between buckets, sliding it
// across the threshold as the sweep advances past its feature value.
// Conserves the across-bucket sums of dist, sqr and wt up to rounding.
func (s *RegressionStats) Transfer(label Label, from, to Bucket, weight float64, exampleWeights []float64, stride int) {
	f := label.Value()
	w := exampleWeights[0] * weight
	fw := f * w
	ffw := f * fw
	s.dist[from] -= fw
	s.sqr[from] -= ffw
	s.wt[from] -= w
	s.dist[to] += fw
	s.sqr[to] += ffw
	s.wt[to] += w
}

// TransferStats would move aggregated statistics between buckets of two
// accumulators in one step. The regression variant does not implement
// it; callers must slide examples individually with Transfer.
func (s *RegressionStats) TransferStats(from, to Bucket, src *RegressionStats) error {
	return errors.NewNotImplementedError("RegressionStats.TransferStats",
		"accumulator to accumulator transfer")
}

// AddBulk accrues a contiguous run of examples into one bucket with a
// single fused reduction. labels and weights must have equal length;
// each weight is the example's effective weight, already read from
// channel 0 by the caller that gathered the run.
func (s *RegressionStats) AddBulk(bucket Bucket, labels, weights []float64) {
	sumW, sumWV, sumWVV := simd.Moments(labels, weights)
	s.dist[bucket] += sumWV
	s.sqr[bucket] += sumWVV
	s.wt[bucket] += sumW
}

// Clip clamps a bucket's fields at zero. Long Transfer chains can drive
// a drained bucket slightly negative through cancellation; Clip corrects
// that. Idempotent, never increases a field.
func (s *RegressionStats) Clip(bucket Bucket) {
	if s.dist[bucket] < 0 {
		s.dist[bucket] = 0
	}
	if s.sqr[bucket] < 0 {
		s.sqr[bucket] = 0
	}
	if s.wt[bucket] < 0 {
		s.wt[bucket] = 0
	}
}

// SwapBuckets exchanges all three fields between two buckets wholesale,
// re-canonicalizing bucket orientation after a sweep that accumulated
// the sides in sort order rather than predicate order.
func (s *RegressionStats) SwapBuckets(b1, b2 Bucket) {
	s.dist[b1], s.dist[b2] = s.dist[b2], s.dist[b1]
	s.sqr[b1], s.sqr[b2] = s.sqr[b2], s.sqr[b1]
	s.wt[b1], s.wt[b2] = s.wt[b2], s.wt[b1]
}

// CopyFrom overwrites the accumulator with a snapshot of src.
func (s *RegressionStats) CopyFrom(src *RegressionStats) {
	*s = *src
}

// Reset zeroes every bucket.
func (s *RegressionStats) Reset() {
	*s = RegressionStats{}
}

// Dist returns Σ weight·label for one bucket.
func (s *RegressionStats) Dist(b Bucket) float64 { return s.dist[b] }

// Sqr returns Σ weight·label² for one bucket.
func (s *RegressionStats) Sqr(b Bucket) float64 { return s.sqr[b] }

// Weight returns Σ weight for one bucket.
func (s *RegressionStats) Weight(b Bucket) float64 { return s.wt[b] }

// TotalWeight returns Σ weight across all buckets.
func (s *RegressionStats) TotalWeight() float64 {
	return s.wt[BucketFalse] + s.wt[BucketTrue] + s.wt[BucketMissing]
}

func (s *RegressionStats) String() string {
	return fmt.Sprintf("RegressionStats{false:(%g,%g,%g) true:(%g,%g,%g) missing:(%g,%g,%g)}",
		s.dist[BucketFalse], s.sqr[BucketFalse], s.wt[BucketFalse],
		s.dist[BucketTrue], s.sqr[BucketTrue], s.wt[BucketTrue],
		s.dist[BucketMissing], s.sqr[BucketMissing], s.wt[BucketMissing])
}
