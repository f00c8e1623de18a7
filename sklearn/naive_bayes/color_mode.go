package naive_bayes

import (
	"strings"

	"github.com/YuminosukeSato/colorbayes/core/histogram"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// ColorMode は色空間のどのチャンネルをヒストグラムに使うかを表す
type ColorMode int

const (
	// ThreeChannel は (R, G, B) の3次元ヒストグラムを使う（デフォルト）
	ThreeChannel ColorMode = iota
	// SingleChannel は赤チャンネルのみの1次元ヒストグラムを使う
	SingleChannel
)

// String returns "rgb" or "r".
func (c ColorMode) String() string {
	if c == SingleChannel {
		return "r"
	}
	return "rgb"
}

func (c ColorMode) dims() histogram.Dims {
	if c == SingleChannel {
		return histogram.OneAxis
	}
	return histogram.ThreeAxis
}

// ParseColorMode は "r"/"R" と "rgb"/"RGB" を受け付ける
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r":
		return SingleChannel, nil
	case "rgb":
		return ThreeChannel, nil
	default:
		return ThreeChannel, errors.NewValidationError("method", "must be r or rgb", s)
	}
}
