package simd

// Kernel function pointers, bound exactly once by bindKernels.
var (
	kernelDot     = dotScalar
	kernelMoments = momentsScalar
)

// Inputs shorter than this skip dispatch entirely; a blocked kernel
// cannot fill one stride and the plain loop wins on overhead alone.
const shortInputMin = 32

// Dot returns the dot product of x and y.
//
// Assumes len(x) == len(y); the caller must guarantee matching lengths.
func Dot(x, y []float64) float64 {
	if len(x) < shortInputMin {
		return dotScalar(x, y)
	}
	capOnce.Do(bindKernels)
	return kernelDot(x, y)
}

// Moments returns the weighted sufficient statistics of values in a
// single pass:
//
//	sumW   = Σ weights[i]
//	sumWV  = Σ weights[i]·values[i]
//	sumWVV = Σ weights[i]·values[i]²
//
// Assumes len(values) == len(weights); the caller must guarantee
// matching lengths.
func Moments(values, weights []float64) (sumW, sumWV, sumWVV float64) {
	if len(values) < shortInputMin {
		return momentsScalar(values, weights)
	}
	capOnce.Do(bindKernels)
	return kernelMoments(values, weights)
}

func dotScalar(x, y []float64) float64 {
	var s float64
	for i, xv := range x {
		s += xv * y[i]
	}
	return s
}

func dot4(x, y []float64) float64 {
	var s0, s1, s2, s3 float64
	i, n := 0, len(x)
	for ; i+4 <= n; i += 4 {
		s0 += x[i] * y[i]
		s1 += x[i+1] * y[i+1]
		s2 += x[i+2] * y[i+2]
		s3 += x[i+3] * y[i+3]
	}
	s := (s0 + s1) + (s2 + s3)
	for ; i < n; i++ {
		s += x[i] * y[i]
	}
	return s
}

func dot8(x, y []float64) float64 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float64
	i, n := 0, len(x)
	for ; i+8 <= n; i += 8 {
		s0 += x[i] * y[i]
		s1 += x[i+1] * y[i+1]
		s2 += x[i+2] * y[i+2]
		s3 += x[i+3] * y[i+3]
		s4 += x[i+4] * y[i+4]
		s5 += x[i+5] * y[i+5]
		s6 += x[i+6] * y[i+6]
		s7 += x[i+7] * y[i+7]
	}
	s := ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
	for ; i < n; i++ {
		s += x[i] * y[i]
	}
	return s
}

// dot16 keeps eight chains with two products each per step, so the
// stride matches a 512-bit vector without doubling live registers.
func dot16(x, y []float64) float64 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float64
	i, n := 0, len(x)
	for ; i+16 <= n; i += 16 {
		s0 += x[i]*y[i] + x[i+8]*y[i+8]
		s1 += x[i+1]*y[i+1] + x[i+9]*y[i+9]
		s2 += x[i+2]*y[i+2] + x[i+10]*y[i+10]
		s3 += x[i+3]*y[i+3] + x[i+11]*y[i+11]
		s4 += x[i+4]*y[i+4] + x[i+12]*y[i+12]
		s5 += x[i+5]*y[i+5] + x[i+13]*y[i+13]
		s6 += x[i+6]*y[i+6] + x[i+14]*y[i+14]
		s7 += x[i+7]*y[i+7] + x[i+15]*y[i+15]
	}
	s := ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
	for ; i < n; i++ {
		s += x[i] * y[i]
	}
	return s
}

func momentsScalar(values, weights []float64) (sumW, sumWV, sumWVV float64) {
	for i, v := range values {
		w := weights[i]
		wv := v * w
		sumW += w
		sumWV += wv
		sumWVV += v * wv
	}
	return sumW, sumWV, sumWVV
}

func moments4(values, weights []float64) (sumW, sumWV, sumWVV float64) {
	var (
		w0, w1, w2, w3 float64
		d0, d1, d2, d3 float64
		q0, q1, q2, q3 float64
	)
	i, n := 0, len(values)
	for ; i+4 <= n; i += 4 {
		v0, v1, v2, v3 := values[i], values[i+1], values[i+2], values[i+3]
		e0, e1, e2, e3 := weights[i], weights[i+1], weights[i+2], weights[i+3]
		w0 += e0
		w1 += e1
		w2 += e2
		w3 += e3
		d0 += v0 * e0
		d1 += v1 * e1
		d2 += v2 * e2
		d3 += v3 * e3
		q0 += v0 * v0 * e0
		q1 += v1 * v1 * e1
		q2 += v2 * v2 * e2
		q3 += v3 * v3 * e3
	}
	sumW = (w0 + w1) + (w2 + w3)
	sumWV = (d0 + d1) + (d2 + d3)
	sumWVV = (q0 + q1) + (q2 + q3)
	for ; i < n; i++ {
		w := weights[i]
		wv := values[i] * w
		sumW += w
		sumWV += wv
		sumWVV += values[i] * wv
	}
	return sumW, sumWV, sumWVV
}

// moments8 stays at four chains per output; three outputs already keep
// twelve sums live and wider unrolling just spills.
func moments8(values, weights []float64) (sumW, sumWV, sumWVV float64) {
	var (
		w0, w1, w2, w3 float64
		d0, d1, d2, d3 float64
		q0, q1, q2, q3 float64
	)
	i, n := 0, len(values)
	for ; i+8 <= n; i += 8 {
		v0, v1, v2, v3 := values[i], values[i+1], values[i+2], values[i+3]
		v4, v5, v6, v7 := values[i+4], values[i+5], values[i+6], values[i+7]
		e0, e1, e2, e3 := weights[i], weights[i+1], weights[i+2], weights[i+3]
		e4, e5, e6, e7 := weights[i+4], weights[i+5], weights[i+6], weights[i+7]
		w0 += e0 + e4
		w1 += e1 + e5
		w2 += e2 + e6
		w3 += e3 + e7
		d0 += v0*e0 + v4*e4
		d1 += v1*e1 + v5*e5
		d2 += v2*e2 + v6*e6
		d3 += v3*e3 + v7*e7
		q0 += v0*v0*e0 + v4*v4*e4
		q1 += v1*v1*e1 + v5*v5*e5
		q2 += v2*v2*e2 + v6*v6*e6
		q3 += v3*v3*e3 + v7*v7*e7
	}
	sumW = (w0 + w1) + (w2 + w3)
	sumWV = (d0 + d1) + (d2 + d3)
	sumWVV = (q0 + q1) + (q2 + q3)
	for ; i < n; i++ {
		w := weights[i]
		wv := values[i] * w
		sumW += w
		sumWV += wv
		sumWVV += values[i] * wv
	}
	return sumW, sumWV, sumWVV
}
