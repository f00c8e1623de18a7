// Package naive_bayes implements a per-pixel Bayes colour classifier.
//
// BayesModel learns one colour histogram per class from training images and
// scores a new image by the mean posterior probability of its pixels.
package naive_bayes

import (
	"time"

	"github.com/YuminosukeSato/colorbayes/core/histogram"
	"github.com/YuminosukeSato/colorbayes/core/model"
	"github.com/YuminosukeSato/colorbayes/dataset"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/pkg/log"
)

const modelName = "BayesModel"

// evidenceEpsilon is added to a non-positive evidence term before dividing.
const evidenceEpsilon = 1e-5

// BayesModel is a two-class colour histogram classifier.
type BayesModel struct {
	state *model.StateManager // One-way Trainable -> Trained

	// Hyperparameters
	quantization int       // Bucket width per channel, power of two in [1, 256]
	mode         ColorMode // Red-only or RGB histogram
	subsampling  bool      // Visit every 2nd row and column

	// Learned parameters
	positive        *histogram.NDHistogram // P(colour | positive), NormSum-normalised
	negative        *histogram.NDHistogram // P(colour | negative), NormSum-normalised
	prior           float64                // P(positive) over training images
	positiveSamples int
	negativeSamples int

	logger log.Logger
}

// ValidateQuantization reports whether q is a power of two in [1, 256].
func ValidateQuantization(q int) error {
	if q < 1 || q > 256 || q&(q-1) != 0 {
		return errors.NewValidationError("quantization", "must be a power of two in [1, 256]", q)
	}
	return nil
}

// NewBayesModel creates an untrained model with the given quantization.
//
// 使用例:
//
//	m, err := naive_bayes.NewBayesModel(16, naive_bayes.WithColorMode(naive_bayes.SingleChannel))
func NewBayesModel(quantization int, opts ...Option) (*BayesModel, error) {
	if err := ValidateQuantization(quantization); err != nil {
		return nil, err
	}

	m := &BayesModel{
		state:        model.NewStateManager(),
		quantization: quantization,
		mode:         ThreeChannel,
		logger:       log.GetLoggerWithName("naive_bayes"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.mode != SingleChannel && m.mode != ThreeChannel {
		return nil, errors.NewValidationError("color_mode", "unknown color mode", int(m.mode))
	}

	bins := m.bins()
	m.positive = histogram.New(m.mode.dims(), bins)
	m.negative = histogram.New(m.mode.dims(), bins)
	return m, nil
}

func (m *BayesModel) bins() int {
	return 256 / m.quantization
}

func (m *BayesModel) stride() int {
	if m.subsampling {
		return 2
	}
	return 1
}

// accumulate adds every visited pixel of img to h and returns the pixel count.
func (m *BayesModel) accumulate(h *histogram.NDHistogram, img dataset.Image) int {
	q := m.quantization
	s := m.stride()
	pixels := 0
	for y := 0; y < img.Height(); y += s {
		for x := 0; x < img.Width(); x += s {
			r, g, b := img.RGB(x, y)
			if m.mode == SingleChannel {
				h.Increment(int(r) / q)
			} else {
				h.Increment(int(r)/q, int(g)/q, int(b)/q)
			}
			pixels++
		}
	}
	return pixels
}

// densities returns P(colour | positive) and P(colour | negative) for one pixel.
func (m *BayesModel) densities(r, g, b uint8) (float64, float64) {
	q := m.quantization
	if m.mode == SingleChannel {
		i := int(r) / q
		return m.positive.At(i), m.negative.At(i)
	}
	i, j, k := int(r)/q, int(g)/q, int(b)/q
	return m.positive.At(i, j, k), m.negative.At(i, j, k)
}

// Train builds both class histograms from in-memory images. Every entry is
// trusted. The model can be trained only once.
func (m *BayesModel) Train(positive, negative []dataset.Image) (err error) {
	defer errors.Recover(&err, "BayesModel.Train")

	if err := m.state.BeginTraining("BayesModel.Train"); err != nil {
		return err
	}
	total := len(positive) + len(negative)
	if total == 0 {
		return errors.NewModelError("BayesModel.Train", "no training images", errors.ErrEmptyData)
	}

	// Counts go into local tables so a failed run leaves the model untouched.
	start := time.Now()
	pos := histogram.New(m.mode.dims(), m.bins())
	neg := histogram.New(m.mode.dims(), m.bins())
	pixels := 0
	for _, img := range positive {
		pixels += m.accumulate(pos, img)
	}
	for _, img := range negative {
		pixels += m.accumulate(neg, img)
	}
	pos.Normalize(histogram.NormSum)
	neg.Normalize(histogram.NormSum)

	m.positive, m.negative = pos, neg
	m.positiveSamples = len(positive)
	m.negativeSamples = len(negative)
	m.prior = float64(len(positive)) / float64(total)
	m.state.SetFitted()

	m.logger.Debug("Training completed",
		log.OperationKey, log.OperationTrain,
		log.PhaseKey, log.PhaseTraining,
		log.ModelNameKey, modelName,
		log.QuantizationKey, m.quantization,
		log.BinsKey, m.bins(),
		log.ColorModeKey, m.mode.String(),
		log.SubsamplingKey, m.subsampling,
		log.PositiveSamplesKey, m.positiveSamples,
		log.NegativeSamplesKey, m.negativeSamples,
		log.PixelsKey, pixels,
		log.PriorKey, m.prior,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// TrainFromLists trains from two list files. A list that cannot be opened
// is a DatasetError; unreadable images inside a list are skipped.
func (m *BayesModel) TrainFromLists(loader *dataset.Loader, positivePath, negativePath string) error {
	if err := m.state.BeginTraining("BayesModel.TrainFromLists"); err != nil {
		return err
	}
	if loader == nil {
		loader = dataset.NewLoader(dataset.WithLogger(m.logger))
	}
	positive, negative, err := loader.LoadPair(positivePath, negativePath)
	if err != nil {
		return err
	}
	return m.Train(positive, negative)
}

// Predict returns the mean posterior probability that img belongs to the
// positive class, in [0, 1].
//
// With subsampling the sum is divided by (w/2)*(h/2) in real arithmetic, not
// by the number of visited pixels. For odd sizes that ratio can exceed 1
// and the result is clipped to 1.
func (m *BayesModel) Predict(img dataset.Image) (float64, error) {
	if err := m.state.RequireFitted(modelName, "Predict"); err != nil {
		return 0, err
	}
	if img == nil || img.Width() <= 0 || img.Height() <= 0 {
		return 0, errors.NewValueError("BayesModel.Predict", "image has no pixels")
	}

	w, h := img.Width(), img.Height()
	s := m.stride()
	prior := m.prior

	sum := 0.0
	for y := 0; y < h; y += s {
		for x := 0; x < w; x += s {
			p, n := m.densities(img.RGB(x, y))
			evidence := prior*p + (1-prior)*n
			if evidence <= 0 {
				evidence += evidenceEpsilon
			}
			sum += p * prior / evidence
		}
	}

	// The denominator is real-valued; with odd sizes under subsampling it is
	// smaller than the visited pixel count.
	visited := (float64(w) / float64(s)) * (float64(h) / float64(s))
	return errors.ClipValue(sum/visited, 0, 1), nil
}

// TrainingSampleCount returns the number of images the model was trained on.
func (m *BayesModel) TrainingSampleCount() int {
	return m.positiveSamples + m.negativeSamples
}

// Prior returns P(positive) estimated from the training image counts.
func (m *BayesModel) Prior() float64 { return m.prior }

// Quantization returns the bucket width per channel.
func (m *BayesModel) Quantization() int { return m.quantization }

// ColorMode returns the histogram colour mode.
func (m *BayesModel) ColorMode() ColorMode { return m.mode }

// Subsampling reports whether every 2nd row and column is visited.
func (m *BayesModel) Subsampling() bool { return m.subsampling }

// IsFitted reports whether Train has completed.
func (m *BayesModel) IsFitted() bool { return m.state.IsFitted() }

// GetParams returns the hyperparameters.
func (m *BayesModel) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"quantization": m.quantization,
		"color_mode":   m.mode.String(),
		"subsampling":  m.subsampling,
	}
}
