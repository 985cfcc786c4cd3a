package boosting

import (
	"fmt"
	"time"

	"github.com/happyguy1986/rtbkit/core/simd"
	"github.com/happyguy1986/rtbkit/pkg/errors"
	"github.com/happyguy1986/rtbkit/pkg/log"
)

// Params configures stump training.
type Params struct {
	// Epsilon smooths leaf predictions for update rules that need it.
	// The normal regression rule ignores it.
	Epsilon float64 `json:"epsilon"`
	// Workers bounds concurrent feature sweeps. Zero means one per CPU.
	Workers int `json:"workers"`
	// Features restricts training to a feature subset; empty means all.
	Features []int `json:"features,omitempty"`
}

// DefaultParams returns the default training parameters.
func DefaultParams() Params {
	return Params{}
}

func (p Params) searchConfig() SearchConfig {
	return SearchConfig{Epsilon: p.Epsilon, Workers: p.Workers, Features: p.Features}.withDefaults()
}

// StumpTrainer trains single regression stumps over a weighted dataset.
// The zero value is not usable; construct with NewStumpTrainer.
type StumpTrainer struct {
	params Params
	logger log.Logger
}

// NewStumpTrainer returns a trainer with the given parameters.
func NewStumpTrainer(params Params) *StumpTrainer {
	return &StumpTrainer{
		params: params,
		logger: log.GetLoggerWithName("boosting.trainer"),
	}
}

// Params returns the trainer's parameters.
func (t *StumpTrainer) Params() Params { return t.params }

// TrainStump finds the best single split of the dataset under the given
// example weights and returns it as a Stump. weights holds stride
// values per example; channel 0 drives the split. Weights must be
// finite and nonnegative.
func (t *StumpTrainer) TrainStump(ds *Dataset, weights []float64, stride int) (Stump, error) {
	start := time.Now()

	if ds == nil {
		return Stump{}, errors.Wrap(errors.ErrEmptyData, "TrainStump: nil dataset")
	}
	if stride < 1 {
		return Stump{}, errors.NewValidationError("stride", "must be >= 1", stride)
	}
	if len(weights) != ds.NumExamples()*stride {
		return Stump{}, errors.NewDimensionError("TrainStump.weights",
			ds.NumExamples()*stride, len(weights), 0)
	}
	if err := errors.CheckScalar("TrainStump.epsilon", t.params.Epsilon, 0); err != nil {
		return Stump{}, err
	}
	if err := errors.CheckNumericalStability("TrainStump.weights", weights, 0); err != nil {
		return Stump{}, err
	}
	for i, w := range weights {
		if w < 0 {
			return Stump{}, errors.NewValueError("TrainStump",
				fmt.Sprintf("negative weight %g at index %d", w, i))
		}
	}

	cfg := t.params.searchConfig()
	stump, err := FindBestRegressionSplit(ds, weights, stride, cfg)
	if err != nil {
		return Stump{}, errors.NewTrainingError("TrainStump", "split search failed", err)
	}

	t.logger.Info("trained stump",
		log.OperationKey, log.OperationTrain,
		log.LearnerKey, "regression_stump",
		log.ExamplesKey, ds.NumExamples(),
		log.FeaturesKey, ds.NumFeatures(),
		log.MissingKey, ds.TotalMissing(),
		log.WeightChannelsKey, stride,
		log.FingerprintKey, fmt.Sprintf("%016x", ds.Fingerprint()),
		log.FeatureKey, stump.Feature,
		log.ThresholdKey, stump.Threshold,
		log.ScoreKey, stump.Z,
		log.UpdateRuleKey, stump.Rule.String(),
		log.KernelISAKey, simd.ActiveISA().String(),
		log.WorkersKey, cfg.Workers,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return stump, nil
}

// UniformWeights returns n unit weights, the usual starting point of a
// boosting round.
func UniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0
	}
	return w
}
