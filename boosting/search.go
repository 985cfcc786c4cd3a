package boosting

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/happyguy1986/rtbkit/pkg/errors"
	"github.com/happyguy1986/rtbkit/pkg/log"
)

// SearchConfig carries the knobs of a split search.
type SearchConfig struct {
	// Epsilon is forwarded to the leaf predictor. The regression
	// predictor ignores it.
	Epsilon float64
	// Workers bounds the number of concurrent feature sweeps.
	// Zero means one per CPU.
	Workers int
	// Features restricts the search to a subset of feature indices.
	// Empty means all features.
	Features []int
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// sweepScratch holds the gathered per-feature arrays a sweep walks.
// Pooled so sweeps of successive features reuse the backing storage.
type sweepScratch struct {
	values  []float64
	labels  []float64
	weights []float64

	missLabels  []float64
	missWeights []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &sweepScratch{} },
}

func grow(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// bestBound shares the best score seen so far across sweep workers. It
// feeds only the pruning bound: a stale read prunes less, never more,
// so the search result does not depend on update timing.
type bestBound struct {
	mu sync.RWMutex
	z  float64
}

func newBestBound() *bestBound { return &bestBound{z: ScoreWorst} }

func (b *bestBound) get() float64 {
	b.mu.RLock()
	z := b.z
	b.mu.RUnlock()
	return z
}

func (b *bestBound) update(z float64) {
	b.mu.Lock()
	if z < b.z {
		b.z = z
	}
	b.mu.Unlock()
}

// featureResult is one worker's best candidate for one feature. The
// snapshot stays in sweep orientation until the global winner is chosen.
type featureResult[W any] struct {
	found      bool
	threshold  float64
	z          float64
	stats      W
	candidates int
	pruned     int
}

type splitSearch[W SplitStatistics[W], Z SplitScore[W]] struct {
	ds       *Dataset
	weights  []float64
	stride   int
	score    Z
	newStats func() (W, error)
	bound    *bestBound
}

// FindBestSplit runs a parallel threshold sweep over the dataset's
// features and returns the winning split as a Stump. newStats allocates
// accumulators of the statistics variant being searched; it is called a
// bounded number of times per feature, never per example.
func FindBestSplit[W SplitStatistics[W], Z SplitScore[W], C LeafPredictor[W]](
	ds *Dataset,
	weights []float64,
	stride int,
	score Z,
	predictor C,
	newStats func() (W, error),
	cfg SearchConfig,
) (Stump, error) {
	if ds == nil {
		return Stump{}, errors.Wrap(errors.ErrEmptyData, "FindBestSplit: nil dataset")
	}
	if stride < 1 {
		return Stump{}, errors.NewValidationError("stride", "must be >= 1", stride)
	}
	if len(weights) < ds.NumExamples()*stride {
		return Stump{}, errors.NewDimensionError("FindBestSplit.weights",
			ds.NumExamples()*stride, len(weights), 0)
	}
	cfg = cfg.withDefaults()

	var features []int
	if len(cfg.Features) == 0 {
		features = make([]int, ds.NumFeatures())
		for i := range features {
			features[i] = i
		}
	} else {
		for _, f := range cfg.Features {
			if f < 0 || f >= ds.NumFeatures() {
				return Stump{}, errors.NewValidationError("features", "feature index out of range", f)
			}
		}
		// Ascending order keeps the tie-break independent of how the
		// subset was given.
		features = append([]int(nil), cfg.Features...)
		sort.Ints(features)
	}

	search := &splitSearch[W, Z]{
		ds:       ds,
		weights:  weights,
		stride:   stride,
		score:    score,
		newStats: newStats,
		bound:    newBestBound(),
	}

	results := make([]featureResult[W], len(features))

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for slot, feature := range features {
		g.Go(func() (err error) {
			defer errors.Recover(&err, fmt.Sprintf("sweepFeature(%d)", feature))
			res, err := search.sweepFeature(feature)
			if err != nil {
				return err
			}
			results[slot] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stump{}, err
	}

	// Deterministic fold in ascending feature order; on equal scores the
	// earlier feature keeps the win.
	bestSlot := -1
	zBest := ScoreWorst
	totalCandidates, totalPruned := 0, 0
	for slot := range results {
		totalCandidates += results[slot].candidates
		totalPruned += results[slot].pruned
		if results[slot].found && score.Better(results[slot].z, zBest) {
			zBest = results[slot].z
			bestSlot = slot
		}
	}
	if bestSlot < 0 {
		return Stump{}, errors.NewValueError("FindBestSplit", "no feature produced a usable split")
	}

	winner := results[bestSlot]
	feature := features[bestSlot]

	// The sweep holds the predicate-true low side in BucketFalse;
	// canonical orientation wants it in BucketTrue.
	winner.stats.SwapBuckets(BucketFalse, BucketTrue)

	preds, err := predictor.Predict(winner.stats, cfg.Epsilon, ds.NumMissing(feature) > 0)
	if err != nil {
		return Stump{}, err
	}

	log.GetLoggerWithName("boosting.search").Debug("split search finished",
		log.OperationKey, log.OperationSearch,
		log.FeatureKey, feature,
		log.ThresholdKey, winner.threshold,
		log.ScoreKey, winner.z,
		log.CandidatesKey, totalCandidates,
		log.PrunedKey, totalPruned,
		log.WorkersKey, cfg.Workers,
	)

	return Stump{
		Feature:     feature,
		Threshold:   winner.threshold,
		Z:           winner.z,
		Predictions: preds,
		Rule:        predictor.UpdateRule(),
	}, nil
}

// FindBestRegressionSplit searches with the regression statistics,
// score and predictor instantiation.
func FindBestRegressionSplit(ds *Dataset, weights []float64, stride int, cfg SearchConfig) (Stump, error) {
	return FindBestSplit(ds, weights, stride, RegressionScore{}, RegressionPredictor{},
		func() (*RegressionStats, error) { return NewRegressionStats(1) }, cfg)
}

// sweepFeature walks one feature's sorted values, maintaining the
// accumulator incrementally and scoring the boundary between each pair
// of distinct adjacent values. Buckets stay in sweep orientation: the
// not-yet-passed high side is seeded into BucketTrue and examples move
// to BucketFalse as the sweep passes them.
func (s *splitSearch[W, Z]) sweepFeature(feature int) (featureResult[W], error) {
	var res featureResult[W]

	order := s.ds.SortedIndex(feature)
	n := len(order)
	if n == 0 {
		errors.Warn(errors.NewDegenerateFeatureWarning(feature, s.ds.NumExamples(), "all values missing"))
		return res, nil
	}

	stats, err := s.newStats()
	if err != nil {
		return res, err
	}
	snapshot, err := s.newStats()
	if err != nil {
		return res, err
	}

	scratch := scratchPool.Get().(*sweepScratch)
	defer scratchPool.Put(scratch)

	scratch.values = grow(scratch.values, n)
	scratch.labels = grow(scratch.labels, n)
	scratch.weights = grow(scratch.weights, n)
	for i, idx := range order {
		scratch.values[i] = s.ds.FeatureValue(idx, feature)
		scratch.labels[i] = s.ds.Label(idx)
		scratch.weights[i] = s.weights[idx*s.stride]
	}

	miss := s.ds.MissingSet(feature)
	m := int(miss.GetCardinality())
	scratch.missLabels = grow(scratch.missLabels, m)
	scratch.missWeights = grow(scratch.missWeights, m)
	it := miss.Iterator()
	for i := 0; it.HasNext(); i++ {
		idx := int(it.Next())
		scratch.missLabels[i] = s.ds.Label(idx)
		scratch.missWeights[i] = s.weights[idx*s.stride]
	}

	stats.Reset()
	stats.AddBulk(BucketMissing, scratch.missLabels, scratch.missWeights)
	stats.Clip(BucketMissing)
	stats.AddBulk(BucketTrue, scratch.labels, scratch.weights)

	// The missing term is threshold independent; compute it once.
	missTerm := s.score.Missing(stats)
	zBest := ScoreWorst

	i := 0
	for i < n {
		v := scratch.values[i]
		// Examples sharing a value cross the threshold together.
		for i < n && scratch.values[i] == v {
			stats.Transfer(Label(scratch.labels[i]), BucketTrue, BucketFalse, 1.0, scratch.weights[i:i+1], 1)
			i++
		}
		if i == n {
			break
		}
		res.candidates++

		prune := zBest
		if shared := s.bound.get(); shared < prune {
			prune = shared
		}
		if !s.score.CanBeat(stats, missTerm, prune) {
			res.pruned++
			continue
		}

		z := s.score.NonMissing(stats, missTerm)
		if s.score.Better(z, zBest) {
			zBest = z
			res.found = true
			res.threshold = v + (scratch.values[i]-v)/2
			res.z = z
			snapshot.CopyFrom(stats)
			s.bound.update(z)
		}
	}

	if !res.found {
		if res.candidates == 0 {
			errors.Warn(errors.NewDegenerateFeatureWarning(feature, s.ds.NumExamples(), "all values identical"))
		}
		return res, nil
	}
	res.stats = snapshot
	return res, nil
}
