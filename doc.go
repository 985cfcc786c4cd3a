// Package rtbkit provides weighted decision-stump training for boosted
// regression, built for services that retrain ranking and bidding
// models on a tight loop.
//
// The core is a three-bucket (false/true/missing) sufficient-statistics
// accumulator swept incrementally across sorted feature values, a
// variance split score with a branch-and-bound pruning bound, and leaf
// prediction synthesis, with the heavy reductions dispatched to the
// widest vector kernel the CPU supports.
//
// # Quick Start
//
// Training a single stump over a weighted dataset:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/happyguy1986/rtbkit/boosting"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := []float64{0, 0, 10, 10}
//
//	    ds, err := boosting.NewDataset(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    trainer := boosting.NewStumpTrainer(boosting.DefaultParams())
//	    stump, err := trainer.TrainStump(ds, boosting.UniformWeights(4), 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(stump)
//	}
//
// Missing feature values are first-class: mark them NaN and they route
// to their own bucket with their own leaf prediction.
//
// # Packages
//
//   - boosting: datasets, accumulators, split search, stump training
//   - metrics: regression evaluation (MSE, RMSE, weighted MSE, R²)
//   - diagnostics: split-score curves and plots
//   - core/simd: CPU-dispatched float64 reduction kernels
//   - core/parallel: chunked parallel execution helpers
//   - pkg/errors: structured errors and training warnings
//   - pkg/log: structured logging setup and attribute keys
//
// # Performance
//
// Split sweeps run one worker per feature with worker-private
// accumulators; the only shared state is the pruning bound, so results
// are identical at any worker count. Bulk accumulation picks AVX-512,
// AVX2 or NEON block kernels at first use, with a scalar path for
// short inputs.
package rtbkit
