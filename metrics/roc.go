package metrics

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// DefaultSweepStep is the threshold increment of the analysis table.
const DefaultSweepStep = 0.01

// ROCPoint is one row of the threshold table.
type ROCPoint struct {
	Threshold float64
	FPR       float64 // FP/(TN+FP)
	TPR       float64 // TP/(TP+FN)
}

// ThresholdSweep evaluates samples at thresholds i*step for
// i = 0..round(1/step), capped at 1. Each threshold is rounded to 9 decimal
// places so grid values are the nearest float64 to the decimal (0.07, not
// 0.07000000000000001). A step outside (0, 1] falls back to DefaultSweepStep.
func ThresholdSweep(samples []Sample, step float64) []ROCPoint {
	if !(step > 0) || step > 1 {
		step = DefaultSweepStep
	}
	n := int(math.Round(1 / step))

	points := make([]ROCPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := math.Min(roundThreshold(float64(i)*step), 1)
		cm := Confusion(samples, t)
		points = append(points, ROCPoint{Threshold: t, FPR: cm.FPR(), TPR: cm.TPR()})
	}
	return points
}

func roundThreshold(t float64) float64 {
	return math.Round(t*1e9) / 1e9
}

// AUC はサンプルの ROC 曲線下面積を計算する。
// すべてのサンプルが同じクラスの場合は定義できないため 0.5 を返し、
// UndefinedMetricWarning を発生させる。
func AUC(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, errors.NewValueError("AUC", "no samples")
	}

	y := make([]float64, len(samples))
	classes := make([]bool, len(samples))
	positives := 0
	for i, s := range samples {
		if math.IsNaN(s.Probability) {
			return 0, errors.NewValueError("AUC", "NaN score")
		}
		y[i] = s.Probability
		classes[i] = s.Positive
		if s.Positive {
			positives++
		}
	}
	if positives == 0 || positives == len(samples) {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present", 0.5))
		return 0.5, nil
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
