package errors

import "math"

// maxReportedValues caps how many offending values a single
// NumericalInstabilityError carries.
const maxReportedValues = 10

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CheckScalar returns a NumericalInstabilityError when value is NaN or
// an infinity. op names the computation being guarded and iteration the
// boosting round it ran in, or 0 outside a loop.
func CheckScalar(op string, value float64, iteration int) error {
	if nonFinite(value) {
		return NewNumericalInstabilityError(op, []float64{value}, iteration)
	}
	return nil
}

// CheckNumericalStability scans a slice and reports up to
// maxReportedValues non-finite entries. Weight and label vectors go
// through this before training touches them.
func CheckNumericalStability(op string, values []float64, iteration int) error {
	var bad []float64
	for _, v := range values {
		if nonFinite(v) {
			bad = append(bad, v)
			if len(bad) == maxReportedValues {
				break
			}
		}
	}
	if len(bad) > 0 {
		return NewNumericalInstabilityError(op, bad, iteration)
	}
	return nil
}

// CheckMatrix scans a dense matrix row by row and reports non-finite
// entries from the first row that contains any.
func CheckMatrix(op string, m interface{ At(int, int) float64 }, rows, cols, iteration int) error {
	var bad []float64
	for i := 0; i < rows && len(bad) == 0; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); nonFinite(v) {
				bad = append(bad, v)
				if len(bad) == maxReportedValues {
					break
				}
			}
		}
	}
	if len(bad) > 0 {
		return NewNumericalInstabilityError(op, bad, iteration)
	}
	return nil
}
