// Package diagnostics renders training introspection artifacts, such as
// the split-score curve of a single feature across all of its candidate
// thresholds.
package diagnostics

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/happyguy1986/rtbkit/boosting"
	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// ScoreCurve evaluates the split score at every candidate threshold of
// one feature, in ascending threshold order. The curve's minimum is the
// score the search driver would select for this feature. Useful for
// inspecting why a feature did or did not win a round.
func ScoreCurve(ds *boosting.Dataset, weights []float64, stride, feature int) (thresholds, scores []float64, err error) {
	if ds == nil {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "ScoreCurve: nil dataset")
	}
	if stride < 1 {
		return nil, nil, errors.NewValidationError("stride", "must be >= 1", stride)
	}
	if feature < 0 || feature >= ds.NumFeatures() {
		return nil, nil, errors.NewValidationError("feature", "feature index out of range", feature)
	}
	if len(weights) < ds.NumExamples()*stride {
		return nil, nil, errors.NewDimensionError("ScoreCurve.weights",
			ds.NumExamples()*stride, len(weights), 0)
	}

	stats, err := boosting.NewRegressionStats(1)
	if err != nil {
		return nil, nil, err
	}
	var score boosting.RegressionScore

	it := ds.MissingSet(feature).Iterator()
	for it.HasNext() {
		i := int(it.Next())
		stats.Add(boosting.Label(ds.Label(i)), boosting.BucketMissing, 1.0, weights[i*stride:i*stride+1], 1)
	}
	stats.Clip(boosting.BucketMissing)

	order := ds.SortedIndex(feature)
	for _, i := range order {
		stats.Add(boosting.Label(ds.Label(i)), boosting.BucketTrue, 1.0, weights[i*stride:i*stride+1], 1)
	}
	missTerm := score.Missing(stats)

	n := len(order)
	k := 0
	for k < n {
		v := ds.FeatureValue(order[k], feature)
		for k < n && ds.FeatureValue(order[k], feature) == v {
			i := order[k]
			stats.Transfer(boosting.Label(ds.Label(i)), boosting.BucketTrue, boosting.BucketFalse, 1.0,
				weights[i*stride:i*stride+1], 1)
			k++
		}
		if k == n {
			break
		}
		next := ds.FeatureValue(order[k], feature)
		thresholds = append(thresholds, v+(next-v)/2)
		scores = append(scores, score.NonMissing(stats, missTerm))
	}

	if len(thresholds) == 0 {
		return nil, nil, errors.NewValueError("ScoreCurve",
			fmt.Sprintf("feature %d has no candidate thresholds", feature))
	}
	return thresholds, scores, nil
}

// PlotScoreCurve renders one feature's score curve to an image file;
// the format follows the path extension (.svg, .png, .pdf).
func PlotScoreCurve(ds *boosting.Dataset, weights []float64, stride, feature int, path string) error {
	thresholds, scores, err := ScoreCurve(ds, weights, stride, feature)
	if err != nil {
		return err
	}

	// gonum/plot panics on some malformed inputs; keep that contained.
	return errors.SafeExecute("PlotScoreCurve", func() error {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("split score, feature %d", feature)
		p.X.Label.Text = "threshold"
		p.Y.Label.Text = "score (lower is better)"

		pts := make(plotter.XYs, len(thresholds))
		for i := range thresholds {
			pts[i].X = thresholds[i]
			pts[i].Y = scores[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, "PlotScoreCurve: build line")
		}
		p.Add(plotter.NewGrid(), line)

		if err := p.Save(16*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
			return errors.Wrap(err, "PlotScoreCurve: save plot")
		}
		return nil
	})
}
