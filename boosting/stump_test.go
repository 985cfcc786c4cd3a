package boosting

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testStump() Stump {
	return Stump{
		Feature:     1,
		Threshold:   2.5,
		Z:           0.25,
		Predictions: Predictions{7, -7, 0.5},
		Rule:        UpdateNormal,
	}
}

func TestStumpBucketRouting(t *testing.T) {
	s := testStump()
	assert.Equal(t, BucketTrue, s.Bucket(1.0))
	assert.Equal(t, BucketTrue, s.Bucket(2.5), "boundary value passes the predicate")
	assert.Equal(t, BucketFalse, s.Bucket(2.6))
	assert.Equal(t, BucketMissing, s.Bucket(math.NaN()))
}

func TestStumpPredictRow(t *testing.T) {
	s := testStump()
	assert.Equal(t, -7.0, s.Predict([]float64{99, 1.0, 99}))
	assert.Equal(t, 7.0, s.Predict([]float64{0, 3.0, 0}))
	assert.Equal(t, 0.5, s.Predict([]float64{0, math.NaN(), 0}))
}

func TestStumpPredictBatchMatchesPredict(t *testing.T) {
	s := testStump()
	rng := rand.New(rand.NewSource(3))

	// Enough rows to cross into the parallel path.
	rows := 1500
	data := make([]float64, rows*3)
	for i := range data {
		if rng.Intn(10) == 0 {
			data[i] = math.NaN()
		} else {
			data[i] = rng.Float64() * 5
		}
	}
	x := mat.NewDense(rows, 3, data)

	out := s.PredictBatch(x)
	require.Equal(t, rows, out.Len())
	for i := 0; i < rows; i++ {
		assert.Equal(t, s.Predict(mat.Row(nil, i, x)), out.AtVec(i), "row %d", i)
	}
}

func TestStumpPredictBatchEmpty(t *testing.T) {
	out := testStump().PredictBatch(&mat.Dense{})
	assert.Equal(t, 0, out.Len())
}

func TestStumpString(t *testing.T) {
	s := testStump()
	out := s.String()
	assert.Contains(t, out, "x[1] <= 2.5")
	assert.Contains(t, out, "rule=normal")
}
