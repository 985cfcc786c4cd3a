package boosting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/pkg/errors"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	nan := math.NaN()
	// Feature 0 has ties and a missing value, feature 1 is reversed.
	features := mat.NewDense(5, 2, []float64{
		3.0, 50,
		1.0, 40,
		nan, 30,
		3.0, 20,
		2.0, 10,
	})
	labels := []float64{1, 2, 3, 4, 5}
	ds, err := NewDataset(features, labels)
	require.NoError(t, err)
	return ds
}

func TestDatasetIndexing(t *testing.T) {
	ds := testDataset(t)

	assert.Equal(t, 5, ds.NumExamples())
	assert.Equal(t, 2, ds.NumFeatures())

	// Ascending by value; the tied 3.0 values order by example index.
	assert.Equal(t, []int{1, 4, 0, 3}, ds.SortedIndex(0))
	assert.Equal(t, []int{4, 3, 2, 1, 0}, ds.SortedIndex(1))

	assert.Equal(t, 1, ds.NumMissing(0))
	assert.True(t, ds.MissingSet(0).Contains(2))
	assert.Equal(t, 0, ds.NumMissing(1))
	assert.Equal(t, 1, ds.TotalMissing())
}

func TestDatasetAccessors(t *testing.T) {
	ds := testDataset(t)

	assert.Equal(t, 3.0, ds.Label(2))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, ds.Labels())
	assert.Equal(t, 40.0, ds.FeatureValue(1, 1))
	assert.True(t, math.IsNaN(ds.FeatureValue(2, 0)))
}

func TestNewDatasetValidation(t *testing.T) {
	t.Run("nil matrix", func(t *testing.T) {
		_, err := NewDataset(nil, []float64{1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("label length mismatch", func(t *testing.T) {
		_, err := NewDataset(mat.NewDense(2, 1, []float64{1, 2}), []float64{1})
		require.Error(t, err)
		var de *errors.DimensionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 2, de.Expected)
		assert.Equal(t, 1, de.Got)
	})

	t.Run("non-finite label", func(t *testing.T) {
		_, err := NewDataset(mat.NewDense(2, 1, []float64{1, 2}), []float64{1, math.NaN()})
		require.Error(t, err)
		var ne *errors.NumericalInstabilityError
		assert.ErrorAs(t, err, &ne)
	})

	t.Run("infinite feature value", func(t *testing.T) {
		_, err := NewDataset(mat.NewDense(2, 1, []float64{1, math.Inf(1)}), []float64{1, 2})
		require.Error(t, err)
		var ve *errors.ValueError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "feature 0")
	})

	t.Run("missing feature value is fine", func(t *testing.T) {
		_, err := NewDataset(mat.NewDense(2, 1, []float64{1, math.NaN()}), []float64{1, 2})
		assert.NoError(t, err)
	})
}

func TestDatasetFingerprint(t *testing.T) {
	build := func(v, y float64) *Dataset {
		ds, err := NewDataset(mat.NewDense(2, 2, []float64{1, 2, v, 4}), []float64{y, 6})
		require.NoError(t, err)
		return ds
	}

	a, b := build(3, 5), build(3, 5)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "same data, same fingerprint")
	assert.Equal(t, a.Fingerprint(), a.Fingerprint(), "stable across calls")

	assert.NotEqual(t, a.Fingerprint(), build(3.0000001, 5).Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), build(3, 5.0000001).Fingerprint())
}
