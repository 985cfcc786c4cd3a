package boosting

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/core/parallel"
	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// Dataset owns the training matrix together with the per-feature
// indexes a threshold sweep needs: example indices sorted ascending by
// feature value, and the set of examples whose value is missing.
// Feature values are float64 with NaN marking a missing value. A
// Dataset is immutable once constructed and safe for concurrent use.
type Dataset struct {
	features *mat.Dense
	labels   []float64

	sorted  [][]int           // per feature, non-missing example indices ascending by value
	missing []*roaring.Bitmap // per feature, example indices with NaN values

	fpOnce sync.Once
	fp     uint64
}

// NewDataset indexes a feature matrix (rows are examples, columns are
// features) against a label vector. Labels must be finite; feature
// values may be NaN to mark missingness. The matrix and label slice are
// retained; callers must not mutate them afterwards.
func NewDataset(features *mat.Dense, labels []float64) (*Dataset, error) {
	if features == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "NewDataset: nil feature matrix")
	}
	rows, cols := features.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "NewDataset: %dx%d feature matrix", rows, cols)
	}
	if len(labels) != rows {
		return nil, errors.NewDimensionError("NewDataset", rows, len(labels), 0)
	}
	if err := errors.CheckNumericalStability("NewDataset.labels", labels, 0); err != nil {
		return nil, err
	}
	// NaN marks a missing value; infinities have no meaning here and
	// would poison sweep thresholds.
	raw := features.RawMatrix()
	for r := 0; r < rows; r++ {
		base := r * raw.Stride
		for c := 0; c < cols; c++ {
			if math.IsInf(raw.Data[base+c], 0) {
				return nil, errors.NewValueError("NewDataset",
					fmt.Sprintf("infinite value at example %d, feature %d", r, c))
			}
		}
	}

	d := &Dataset{
		features: features,
		labels:   labels,
		sorted:   make([][]int, cols),
		missing:  make([]*roaring.Bitmap, cols),
	}

	// Each indexing task owns a distinct range of feature slots.
	parallel.Parallelize(cols, func(start, end int) {
		for f := start; f < end; f++ {
			d.indexFeature(f, rows)
		}
	})
	return d, nil
}

func (d *Dataset) indexFeature(f, rows int) {
	miss := roaring.New()
	order := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if math.IsNaN(d.features.At(i, f)) {
			miss.Add(uint32(i))
			continue
		}
		order = append(order, i)
	}
	// Ties order by example index so sweeps are deterministic.
	sort.Slice(order, func(a, b int) bool {
		va, vb := d.features.At(order[a], f), d.features.At(order[b], f)
		if va != vb {
			return va < vb
		}
		return order[a] < order[b]
	})
	d.sorted[f] = order
	d.missing[f] = miss
}

// NumExamples returns the number of training examples.
func (d *Dataset) NumExamples() int {
	rows, _ := d.features.Dims()
	return rows
}

// NumFeatures returns the number of features.
func (d *Dataset) NumFeatures() int {
	_, cols := d.features.Dims()
	return cols
}

// Labels returns the backing label slice. Read-only.
func (d *Dataset) Labels() []float64 { return d.labels }

// Label returns the target value of one example.
func (d *Dataset) Label(i int) float64 { return d.labels[i] }

// FeatureValue returns one feature value; NaN means missing.
func (d *Dataset) FeatureValue(i, feature int) float64 {
	return d.features.At(i, feature)
}

// SortedIndex returns the non-missing example indices of a feature in
// ascending value order. Read-only.
func (d *Dataset) SortedIndex(feature int) []int { return d.sorted[feature] }

// MissingSet returns the set of example indices whose value for the
// feature is missing. Read-only.
func (d *Dataset) MissingSet(feature int) *roaring.Bitmap { return d.missing[feature] }

// NumMissing returns how many examples lack a value for the feature.
func (d *Dataset) NumMissing(feature int) int {
	return int(d.missing[feature].GetCardinality())
}

// TotalMissing returns the number of missing values across all features.
func (d *Dataset) TotalMissing() int {
	total := 0
	for _, m := range d.missing {
		total += int(m.GetCardinality())
	}
	return total
}

// Fingerprint returns a stable content hash over dimensions, labels and
// feature values, computed once on first use. The trainer logs it so a
// training run can be matched to its data.
func (d *Dataset) Fingerprint() uint64 {
	d.fpOnce.Do(func() {
		h := xxhash.New()
		rows, cols := d.features.Dims()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(rows))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(cols))
		_, _ = h.Write(buf[:])
		for _, y := range d.labels {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(y))
			_, _ = h.Write(buf[:])
		}
		raw := d.features.RawMatrix()
		for r := 0; r < rows; r++ {
			base := r * raw.Stride
			for c := 0; c < cols; c++ {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(raw.Data[base+c]))
				_, _ = h.Write(buf[:])
			}
		}
		d.fp = h.Sum64()
	})
	return d.fp
}
