package boosting

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// LoadNPY builds a Dataset from two NumPy .npy files: a feature matrix
// (a vector is treated as a single column) and a label vector. Single
// precision files are widened to float64 with a conversion warning.
func LoadNPY(featuresPath, labelsPath string) (*Dataset, error) {
	features, err := readNpyMatrix(featuresPath)
	if err != nil {
		return nil, err
	}
	targets, err := readNpyMatrix(labelsPath)
	if err != nil {
		return nil, err
	}

	rows, cols := targets.Dims()
	if cols != 1 {
		return nil, errors.NewDimensionError("LoadNPY.labels", 1, cols, 1)
	}
	if err := errors.CheckMatrix("LoadNPY.labels", targets, rows, 1, 0); err != nil {
		return nil, err
	}
	labels := make([]float64, rows)
	mat.Col(labels, 0, targets)

	return NewDataset(features, labels)
}

func readNpyMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadNPY: open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadNPY: read npy header of %s", path)
	}

	var rows, cols int
	switch shape := r.Header.Descr.Shape; len(shape) {
	case 1:
		rows, cols = shape[0], 1
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return nil, errors.NewValueError("LoadNPY",
			fmt.Sprintf("%s has %d dimensions, want 1 or 2", path, len(shape)))
	}
	if r.Header.Descr.Fortran {
		return nil, errors.NewValueError("LoadNPY",
			fmt.Sprintf("%s is Fortran ordered, want C order", path))
	}

	n := rows * cols
	switch dtype := r.Header.Descr.Type; dtype {
	case "<f8", ">f8", "=f8", "f8":
		data := make([]float64, n)
		if err := r.Read(&data); err != nil {
			return nil, errors.Wrapf(err, "LoadNPY: read %s", path)
		}
		return mat.NewDense(rows, cols, data), nil
	case "<f4", ">f4", "=f4", "f4":
		raw := make([]float32, n)
		if err := r.Read(&raw); err != nil {
			return nil, errors.Wrapf(err, "LoadNPY: read %s", path)
		}
		errors.Warn(errors.NewDataConversionWarning("float32", "float64",
			fmt.Sprintf("%s stores single precision", path)))
		data := make([]float64, n)
		for i, v := range raw {
			data[i] = float64(v)
		}
		return mat.NewDense(rows, cols, data), nil
	default:
		return nil, errors.NewValueError("LoadNPY",
			fmt.Sprintf("unsupported npy dtype %q in %s", dtype, path))
	}
}
