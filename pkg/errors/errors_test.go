package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewTrainingError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "TrainStump",
			kind:     "split search failed",
			err:      fmt.Errorf("test error"),
			wantMsg:  "rtbkit: TrainStump: split search failed: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "TrainStump",
			kind:     "no features",
			err:      nil,
			wantMsg:  "rtbkit: TrainStump: no features",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTrainingError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// %+v でスタックトレースが出ること
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var trainErr *TrainingError
			if !As(err, &trainErr) {
				t.Error("Error should be castable to *TrainingError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("NewDataset", 10, 7, 0)

	want := "rtbkit: NewDataset: dimension mismatch on axis 0 (rows). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}

	// 軸1は特徴量方向
	err = NewDimensionError("PredictBatch", 4, 3, 1)
	if !strings.Contains(err.Error(), "(features)") {
		t.Errorf("axis 1 should be labeled features, got %v", err)
	}
}

func TestNewInvalidProblemError(t *testing.T) {
	err := NewInvalidProblemError("NewRegressionStats", 2)

	want := "rtbkit: NewRegressionStats: regression stumps require exactly one label, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var probErr *InvalidProblemError
	if !As(err, &probErr) {
		t.Error("Error should be castable to *InvalidProblemError")
	}
	if probErr.NumLabels != 2 {
		t.Errorf("NumLabels = %d, want 2", probErr.NumLabels)
	}
}

func TestNewNotImplementedError(t *testing.T) {
	err := NewNotImplementedError("TransferStats", "accumulator to accumulator transfer")

	want := "rtbkit: TransferStats: not implemented: accumulator to accumulator transfer"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var niErr *NotImplementedError
	if !As(err, &niErr) {
		t.Error("Error should be castable to *NotImplementedError")
	}

	// 共通エラー変数としても判定できること
	if !Is(err, ErrNotImplemented) {
		t.Error("Expected Is(err, ErrNotImplemented) to be true")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("Predict", "no weight in any bucket")

	want := "rtbkit: Predict: no weight in any bucket"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("epsilon", "must be non-negative", -0.5)

	want := "rtbkit: validation failed for parameter 'epsilon': must be non-negative (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var vErr *ValidationError
	if !As(err, &vErr) {
		t.Error("Error should be castable to *ValidationError")
	}
	if vErr.ParamName != "epsilon" {
		t.Errorf("ParamName = %q, want epsilon", vErr.ParamName)
	}
}

func TestNewDegenerateFeatureWarning(t *testing.T) {
	warn := NewDegenerateFeatureWarning(3, 128, "all values identical")

	want := "feature 3 has no usable split over 128 examples: all values identical"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var degWarn *DegenerateFeatureWarning
	if !As(warn, &degWarn) {
		t.Error("Warning should be castable to *DegenerateFeatureWarning")
	}
}

func TestDataConversionWarningMessage(t *testing.T) {
	warn := NewDataConversionWarning("float32", "float64", "npy array widened on load")
	want := "data converted from float32 to float64. Reason: npy array widened on load"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}
}

func TestUndefinedMetricWarningMessage(t *testing.T) {
	warn := NewUndefinedMetricWarning("R2Score", "zero total weight", 0)
	msg := warn.Error()
	for _, part := range []string{"R2Score", "ill-defined", "zero total weight"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}
}

func TestNumericalInstabilityTruncatesValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	err := NewNumericalInstabilityError("accumulate", values, 12)

	msg := err.Error()
	if !strings.Contains(msg, "accumulate") || !strings.Contains(msg, "iteration 12") {
		t.Errorf("message %q missing operation or iteration", msg)
	}
	// 先頭5個だけ表示され、残りは省略記号になる
	if !strings.Contains(msg, "5, ...") {
		t.Errorf("message %q should truncate after five values", msg)
	}
	if strings.Contains(msg, "6") {
		t.Errorf("message %q should not list the sixth value", msg)
	}

	var ne *NumericalInstabilityError
	if !As(err, &ne) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if len(ne.Values) != 7 {
		t.Errorf("stored values = %d, want all 7", len(ne.Values))
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	warn := NewDegenerateFeatureWarning(0, 5, "all values missing")
	Warn(warn)

	if captured == nil {
		t.Fatal("Expected warning handler to receive the warning")
	}
	if !strings.Contains(captured.Error(), "feature 0") {
		t.Errorf("Unexpected warning: %v", captured)
	}
}

func TestWarnPrefersZerologBridge(t *testing.T) {
	var viaBridge, viaHandler error
	SetWarningHandler(func(w error) { viaHandler = w })
	SetZerologWarnFunc(func(w error) { viaBridge = w })
	defer func() {
		SetWarningHandler(nil)
		SetZerologWarnFunc(nil)
	}()

	Warn(NewUndefinedMetricWarning("R2Score", "zero total weight", 0))

	if viaBridge == nil {
		t.Fatal("Expected the zerolog bridge to receive the warning")
	}
	if viaHandler != nil {
		t.Error("Plain handler must not fire while the bridge is installed")
	}

	// ブリッジを外すと通常のハンドラに戻る
	SetZerologWarnFunc(nil)
	Warn(NewDegenerateFeatureWarning(1, 10, "all values identical"))
	if viaHandler == nil {
		t.Error("Expected the plain handler after the bridge was removed")
	}
}

func TestWrapAndIs(t *testing.T) {
	baseErr := ErrNotImplemented

	wrapped := Wrap(baseErr, "in RegressionStats.TransferStats")

	if !Is(wrapped, ErrNotImplemented) {
		t.Error("Expected Is(wrapped, ErrNotImplemented) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in RegressionStats.TransferStats") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "NewDataset", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	expectedMsg := "in NewDataset: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestNewfAndWithStack(t *testing.T) {
	err := Newf("feature %d out of range", 9)
	if err.Error() != "feature 9 out of range" {
		t.Errorf("Newf message = %q", err.Error())
	}

	stacked := WithStack(fmt.Errorf("plain"))
	formatted := fmt.Sprintf("%+v", stacked)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("WithStack should attach the caller's stack")
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewTrainingError("TrainStump", "failed", err2)

	// チェーン全体がメッセージに現れること
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
