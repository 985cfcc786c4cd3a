package boosting

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/pkg/errors"
	"github.com/happyguy1986/rtbkit/pkg/log"
)

func TestTrainStumpEndToEnd(t *testing.T) {
	ds, err := NewDataset(
		mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
		[]float64{0, 0, 10, 10},
	)
	require.NoError(t, err)

	trainer := NewStumpTrainer(DefaultParams())
	stump, err := trainer.TrainStump(ds, UniformWeights(4), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stump.Feature)
	assert.Equal(t, 2.5, stump.Threshold)
	assert.Equal(t, ScorePerfect, stump.Z)
	assert.Equal(t, UpdateNormal, stump.Rule)
}

func TestTrainStumpValidation(t *testing.T) {
	ds, err := NewDataset(mat.NewDense(2, 1, []float64{1, 2}), []float64{1, 2})
	require.NoError(t, err)
	trainer := NewStumpTrainer(DefaultParams())

	t.Run("nil dataset", func(t *testing.T) {
		_, err := trainer.TrainStump(nil, []float64{1, 1}, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("bad stride", func(t *testing.T) {
		_, err := trainer.TrainStump(ds, []float64{1, 1}, 0)
		require.Error(t, err)
		var ve *errors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "stride", ve.ParamName)
	})

	t.Run("weight length", func(t *testing.T) {
		_, err := trainer.TrainStump(ds, []float64{1, 1, 1}, 1)
		require.Error(t, err)
		var de *errors.DimensionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 2, de.Expected)
		assert.Equal(t, 3, de.Got)
	})

	t.Run("non-finite weight", func(t *testing.T) {
		_, err := trainer.TrainStump(ds, []float64{1, math.Inf(1)}, 1)
		require.Error(t, err)
		var ne *errors.NumericalInstabilityError
		assert.ErrorAs(t, err, &ne)
	})

	t.Run("non-finite epsilon", func(t *testing.T) {
		bad := NewStumpTrainer(Params{Epsilon: math.NaN()})
		_, err := bad.TrainStump(ds, []float64{1, 1}, 1)
		require.Error(t, err)
		var ne *errors.NumericalInstabilityError
		assert.ErrorAs(t, err, &ne)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := trainer.TrainStump(ds, []float64{1, -0.5}, 1)
		require.Error(t, err)
		var ve *errors.ValueError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "negative weight")
	})
}

func TestTrainStumpWrapsSearchFailure(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })

	ds, err := NewDataset(mat.NewDense(3, 1, []float64{7, 7, 7}), []float64{1, 2, 3})
	require.NoError(t, err)

	_, err = NewStumpTrainer(DefaultParams()).TrainStump(ds, UniformWeights(3), 1)
	require.Error(t, err)
	var te *errors.TrainingError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "TrainStump", te.Op)

	// The degenerate-search cause stays reachable through the wrap.
	var ve *errors.ValueError
	assert.ErrorAs(t, err, &ve)
}

func TestTrainStumpLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ds, err := NewDataset(
		mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
		[]float64{0, 0, 10, 10},
	)
	require.NoError(t, err)

	// Constructed after the handler swap so the trainer binds it.
	trainer := NewStumpTrainer(DefaultParams())
	_, err = trainer.TrainStump(ds, UniformWeights(4), 1)
	require.NoError(t, err)

	dec := json.NewDecoder(&buf)
	var entry map[string]any
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		if line["msg"] == "trained stump" {
			entry = line
		}
	}
	require.NotNil(t, entry, "expected a training summary entry")

	assert.Equal(t, "boosting.trainer", entry[log.ComponentKey])
	assert.Equal(t, log.OperationTrain, entry[log.OperationKey])
	assert.Equal(t, float64(4), entry[log.ExamplesKey])
	assert.Equal(t, float64(1), entry[log.FeaturesKey])
	assert.Equal(t, 2.5, entry[log.ThresholdKey])
	assert.Equal(t, "normal", entry[log.UpdateRuleKey])
	assert.NotEmpty(t, entry[log.KernelISAKey])
	assert.NotEmpty(t, entry[log.FingerprintKey])
}

func TestParamsSearchConfig(t *testing.T) {
	cfg := Params{}.searchConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.Workers, "zero workers defaults to one per CPU")

	p := Params{Epsilon: 0.5, Workers: 3, Features: []int{1}}
	cfg = p.searchConfig()
	assert.Equal(t, 0.5, cfg.Epsilon)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []int{1}, cfg.Features)

	trainer := NewStumpTrainer(p)
	assert.Equal(t, p.Epsilon, trainer.Params().Epsilon)
}

func TestUniformWeights(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, UniformWeights(3))
	assert.Empty(t, UniformWeights(0))
}
