// Package metrics は回帰スタンプの評価指標を提供します。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/core/simd"
	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// checkPair は2つのベクトルの長さを検証する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// residuals は要素ごとの残差 yTrue - yPred を返す
func residuals(yTrue, yPred *mat.VecDense, n int) []float64 {
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return diff
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	diff := residuals(yTrue, yPred, n)
	return simd.Dot(diff, diff) / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// WeightedMSE は重み付き平均二乗誤差を計算する。ブースティングの
// 各ラウンドで再重み付けされた残差を評価するために使う。
// 重みは有限かつ非負でなければならない。
func WeightedMSE(yTrue, yPred, weights *mat.VecDense) (float64, error) {
	n, err := checkPair("WeightedMSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if weights.Len() != n {
		return 0, errors.NewDimensionError("WeightedMSE", n, weights.Len(), 0)
	}

	w := make([]float64, n)
	for i := 0; i < n; i++ {
		wi := weights.AtVec(i)
		if wi < 0 || math.IsNaN(wi) || math.IsInf(wi, 0) {
			return 0, errors.NewValueError("WeightedMSE", "weights must be finite and nonnegative")
		}
		w[i] = wi
	}

	// WeightedMSE = Σ(w * (yTrue - yPred)²) / Σw
	diff := residuals(yTrue, yPred, n)
	sumW, _, sumWDD := simd.Moments(diff, w)
	if sumW <= 0 {
		return 0, errors.NewValueError("WeightedMSE", "total weight is zero")
	}
	return sumWDD / sumW, nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrueに分散が無い場合は未定義なので、UndefinedMetricWarningを発行して
// 0.0を返す（エラーにはしない）。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score",
			"zero variance in yTrue", 0.0))
		return 0.0, nil
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}
