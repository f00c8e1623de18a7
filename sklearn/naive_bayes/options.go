package naive_bayes

import (
	"github.com/YuminosukeSato/colorbayes/pkg/log"
)

// Option is a function that configures BayesModel
type Option func(*BayesModel)

// WithColorMode selects the red-only or the full RGB histogram
func WithColorMode(mode ColorMode) Option {
	return func(m *BayesModel) {
		m.mode = mode
	}
}

// WithSubsampling visits only every 2nd row and column during training and prediction
func WithSubsampling(subsample bool) Option {
	return func(m *BayesModel) {
		m.subsampling = subsample
	}
}

// WithLogger sets the logger used for training summaries
func WithLogger(logger log.Logger) Option {
	return func(m *BayesModel) {
		m.logger = logger
	}
}
