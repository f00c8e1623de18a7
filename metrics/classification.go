package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// Sample は一枚の画像に対する平均事後確率と正解ラベルの組
type Sample struct {
	Probability float64
	Positive    bool
}

// ConfusionMatrix は閾値で二値化した結果の件数
type ConfusionMatrix struct {
	TP, TN, FP, FN int
}

// Confusion は閾値 threshold で samples を分類し、混同行列を返す。
// 陽性サンプルは score > threshold で TP、それ以外は FN。
// 陰性サンプルは score <= threshold で TN、それ以外は FP。
func Confusion(samples []Sample, threshold float64) ConfusionMatrix {
	var cm ConfusionMatrix
	for _, s := range samples {
		cm.Add(s.Probability, s.Positive, threshold)
	}
	return cm
}

// Add counts one scored sample.
func (c *ConfusionMatrix) Add(score float64, positive bool, threshold float64) {
	switch {
	case positive && score > threshold:
		c.TP++
	case positive:
		c.FN++
	case score <= threshold:
		c.TN++
	default:
		c.FP++
	}
}

// Total returns the number of counted samples.
func (c ConfusionMatrix) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

// Precision returns TP/(TP+FN).
//
// 注意: この名前は慣例上の precision ではなく、陽性サンプルのうち正しく
// 検出された割合を表す。出力の互換性のため名前を維持している。
// 分母がゼロの場合は NaN を返し UndefinedMetricWarning を発生させる。
func (c ConfusionMatrix) Precision() float64 {
	return errors.DivideOrWarn("precision", float64(c.TP), float64(c.TP+c.FN))
}

// Recall returns TP/(TP+FP). See Precision for the naming.
func (c ConfusionMatrix) Recall() float64 {
	return errors.DivideOrWarn("recall", float64(c.TP), float64(c.TP+c.FP))
}

// TPR returns the true positive rate TP/(TP+FN).
func (c ConfusionMatrix) TPR() float64 {
	return errors.DivideOrWarn("true positive rate", float64(c.TP), float64(c.TP+c.FN))
}

// FPR returns the false positive rate FP/(TN+FP).
func (c ConfusionMatrix) FPR() float64 {
	return errors.DivideOrWarn("false positive rate", float64(c.FP), float64(c.TN+c.FP))
}

// Matrix returns the counts as a 2x2 matrix [[TN FP] [FN TP]], rows being
// the true class and columns the predicted class.
func (c ConfusionMatrix) Matrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		float64(c.TN), float64(c.FP),
		float64(c.FN), float64(c.TP),
	})
}
