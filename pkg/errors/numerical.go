package errors

import (
	"math"
	"strconv"
)

// IsUndefined reports whether v is NaN or ±Inf.
func IsUndefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CheckProbability returns a ValueError when v is not a finite value in [0, 1].
func CheckProbability(operation string, v float64) error {
	if IsUndefined(v) || v < 0 || v > 1 {
		return NewValueError(operation, "probability outside [0, 1]: "+strconv.FormatFloat(v, 'g', -1, 64))
	}
	return nil
}

// DivideOrWarn divides numerator by denominator. A zero denominator is not
// guarded: the IEEE result (NaN or Inf) is returned and an
// UndefinedMetricWarning is raised through Warn.
func DivideOrWarn(metric string, numerator, denominator float64) float64 {
	v := numerator / denominator
	if denominator == 0 {
		Warn(NewUndefinedMetricWarning(metric, "zero denominator", v))
	}
	return v
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
