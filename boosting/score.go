package boosting

// Split-quality sentinels. Real scores live in [ScorePerfect, ScoreWorst];
// lower is strictly better.
const (
	// ScoreWorst marks "no usable split found"; any real score beats it.
	ScoreWorst = 1e100
	// ScoreNone marks "could not be computed"; never better than anything.
	ScoreNone = -1.0
	// ScorePerfect is a zero-variance fit.
	ScorePerfect = 0.0

	// minBucketWeight guards the per-bucket variance divisions. A bucket
	// at or below it contributes nothing to the score.
	minBucketWeight = 1e-20

	// canBeatTolerance loosens the pruning bound so candidates within
	// rounding distance of the best are still fully scored.
	canBeatTolerance = 1.0001
)

// RegressionScore maps an accumulator to a weighted-variance split
// score: the sum over buckets of sqr[b] - dist[b]²/wt[b]. The score
// decomposes into a threshold-independent missing term and a
// threshold-dependent non-missing term, which is what makes the
// pruning bound cheap. Stateless and reentrant.
type RegressionScore struct{}

// Missing returns the variance contribution of the MISSING bucket. It
// does not depend on the candidate threshold, so a sweep computes it
// once per feature.
func (RegressionScore) Missing(w *RegressionStats) float64 {
	if w.wt[BucketMissing] > minBucketWeight {
		return w.sqr[BucketMissing] - (w.dist[BucketMissing]*w.dist[BucketMissing])/w.wt[BucketMissing]
	}
	return 0.0
}

// NonMissing adds the FALSE and TRUE bucket variance contributions to a
// previously computed missing term, returning the full score.
func (RegressionScore) NonMissing(w *RegressionStats, missingTerm float64) float64 {
	result := missingTerm
	for b := BucketFalse; b <= BucketTrue; b++ {
		if w.wt[b] > minBucketWeight {
			result += w.sqr[b] - (w.dist[b]*w.dist[b])/w.wt[b]
		}
	}
	return result
}

// Score returns the full split score of the accumulator state.
func (z RegressionScore) Score(w *RegressionStats) float64 {
	return z.NonMissing(w, z.Missing(w))
}

// CanBeat reports whether a candidate with the given missing term could
// still beat zBest. The non-missing contributions are non-negative, so
// the missing term is a lower bound on the full score: a false result
// proves the candidate cannot win and the sweep may skip NonMissing.
func (RegressionScore) CanBeat(w *RegressionStats, missingTerm, zBest float64) bool {
	return missingTerm <= zBest*canBeatTolerance
}

// Better reports whether z1 is a strictly better score than z2. The
// ScoreNone sentinel is never better than anything.
func (RegressionScore) Better(z1, z2 float64) bool {
	return z1 != ScoreNone && z1 < z2
}

// Equal compares scores exactly, with no epsilon.
func (RegressionScore) Equal(z1, z2 float64) bool {
	return z1 == z2
}
