// Package model_selection evaluates BayesModel on held-out data and calibrates
// decision thresholds by leave-one-out cross-validation.
package model_selection

import (
	"math"
	"time"

	"github.com/YuminosukeSato/colorbayes/core/parallel"
	"github.com/YuminosukeSato/colorbayes/dataset"
	"github.com/YuminosukeSato/colorbayes/metrics"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/pkg/log"
	"github.com/YuminosukeSato/colorbayes/sklearn/naive_bayes"
)

// TrainingSample is the held-out score of one image and its true class.
type TrainingSample = metrics.Sample

// Scorer is anything that maps an image to a probability in [0, 1].
type Scorer interface {
	Predict(img dataset.Image) (float64, error)
}

// ModelParams are the hyperparameters of the models built during
// leave-one-out calibration.
type ModelParams struct {
	Quantization int
	ColorMode    naive_bayes.ColorMode
	Subsampling  bool
}

// DefaultModelParams returns Q=16, RGB, no subsampling.
func DefaultModelParams() ModelParams {
	return ModelParams{Quantization: 16, ColorMode: naive_bayes.ThreeChannel}
}

func (p ModelParams) options(logger log.Logger) []naive_bayes.Option {
	return []naive_bayes.Option{
		naive_bayes.WithColorMode(p.ColorMode),
		naive_bayes.WithSubsampling(p.Subsampling),
		naive_bayes.WithLogger(logger),
	}
}

// EvaluationResult は閾値評価の結果
type EvaluationResult struct {
	Threshold float64
	Confusion metrics.ConfusionMatrix
	Precision float64 // TP/(TP+FN)
	Recall    float64 // TP/(TP+FP)
	Samples   []TrainingSample
}

// Evaluator scores datasets against a model. It keeps no datasets between calls.
type Evaluator struct {
	loader   *dataset.Loader
	logger   log.Logger
	parallel bool
	workers  int
}

// EvaluatorOption is a function that configures Evaluator
type EvaluatorOption func(*Evaluator)

// WithLoader sets the dataset loader used for list files.
func WithLoader(loader *dataset.Loader) EvaluatorOption {
	return func(e *Evaluator) {
		e.loader = loader
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithParallel enables scoring and leave-one-out folds on multiple goroutines.
func WithParallel(parallel bool) EvaluatorOption {
	return func(e *Evaluator) {
		e.parallel = parallel
	}
}

// WithWorkers sets the number of goroutines; <= 0 means one per CPU core.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		logger: log.GetLoggerWithName("model_selection"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loader == nil {
		e.loader = dataset.NewLoader(dataset.WithLogger(e.logger))
	}
	return e
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return errors.NewValidationError("threshold", "must be a finite number", threshold)
	}
	return nil
}

// Evaluate loads both test lists and evaluates model at threshold.
func (e *Evaluator) Evaluate(model Scorer, positivePath, negativePath string, threshold float64) (*EvaluationResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	positive, negative, err := e.loader.LoadPair(positivePath, negativePath)
	if err != nil {
		return nil, err
	}
	return e.EvaluateImages(model, positive, negative, threshold)
}

// EvaluateImages scores every image and counts the outcomes at threshold.
// A positive image is a TP when its score is above threshold; a negative
// image is a TN when its score is at or below threshold.
func (e *Evaluator) EvaluateImages(model Scorer, positive, negative []dataset.Image, threshold float64) (*EvaluationResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	images, labels := concat(positive, negative)
	samples := make([]TrainingSample, len(images))
	err := parallel.ForEach(len(images), e.parallel, e.workers, func(i int) error {
		p, err := model.Predict(images[i])
		if err != nil {
			return errors.Wrapf(err, "failed to score test image %d", i)
		}
		samples[i] = TrainingSample{Probability: p, Positive: labels[i]}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cm := metrics.Confusion(samples, threshold)
	result := &EvaluationResult{
		Threshold: threshold,
		Confusion: cm,
		Precision: cm.Precision(),
		Recall:    cm.Recall(),
		Samples:   samples,
	}

	e.logger.Info("Evaluation completed",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseTesting,
		log.PositiveSamplesKey, len(positive),
		log.NegativeSamplesKey, len(negative),
		log.ThresholdKey, threshold,
		log.PrecisionKey, result.Precision,
		log.RecallKey, result.Recall,
	)
	return result, nil
}

// ComputeThreshold loads both training lists and runs leave-one-out
// calibration on them.
func (e *Evaluator) ComputeThreshold(positivePath, negativePath string, params ModelParams) ([]TrainingSample, error) {
	positive, negative, err := e.loader.LoadPair(positivePath, negativePath)
	if err != nil {
		return nil, err
	}
	return e.ComputeThresholdImages(positive, negative, params)
}

// ComputeThresholdImages scores every image with a fresh model trained on
// all other images. Samples are returned positives first, then negatives,
// each in input order, whether or not folds run in parallel.
func (e *Evaluator) ComputeThresholdImages(positive, negative []dataset.Image, params ModelParams) ([]TrainingSample, error) {
	if err := naive_bayes.ValidateQuantization(params.Quantization); err != nil {
		return nil, err
	}

	images, labels := concat(positive, negative)
	folds := LeaveOneOut{}.Split(len(images))
	if len(folds) == 0 {
		return nil, errors.NewModelError("ComputeThreshold", "leave-one-out needs at least two images", errors.ErrEmptyData)
	}

	start := time.Now()
	workers := 1
	if e.parallel {
		workers = parallel.Workers(len(folds), e.workers)
	}
	e.logger.Debug("Threshold calibration started",
		log.OperationKey, log.OperationComputeThreshold,
		log.PhaseKey, log.PhaseCalibration,
		log.SamplesKey, len(images),
		log.WorkersKey, workers,
	)

	foldLogger := e.logger.With(log.PhaseKey, log.PhaseCalibration)
	samples := make([]TrainingSample, len(images))
	err := parallel.ForEach(len(folds), e.parallel, workers, func(i int) error {
		fold := folds[i]
		var pos, neg []dataset.Image
		for _, j := range fold.TrainIndices {
			if labels[j] {
				pos = append(pos, images[j])
			} else {
				neg = append(neg, images[j])
			}
		}

		m, err := naive_bayes.NewBayesModel(params.Quantization, params.options(foldLogger)...)
		if err != nil {
			return err
		}
		if err := m.Train(pos, neg); err != nil {
			return errors.Wrapf(err, "fold %d", i)
		}

		test := fold.TestIndices[0]
		p, err := m.Predict(images[test])
		if err != nil {
			return errors.Wrapf(err, "fold %d", i)
		}
		samples[test] = TrainingSample{Probability: p, Positive: labels[test]}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Threshold calibration completed",
		log.OperationKey, log.OperationComputeThreshold,
		log.PhaseKey, log.PhaseCalibration,
		log.PositiveSamplesKey, len(positive),
		log.NegativeSamplesKey, len(negative),
		log.WorkersKey, workers,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return samples, nil
}

func concat(positive, negative []dataset.Image) ([]dataset.Image, []bool) {
	images := make([]dataset.Image, 0, len(positive)+len(negative))
	labels := make([]bool, 0, len(positive)+len(negative))
	for _, img := range positive {
		images = append(images, img)
		labels = append(labels, true)
	}
	for _, img := range negative {
		images = append(images, img)
		labels = append(labels, false)
	}
	return images, labels
}
