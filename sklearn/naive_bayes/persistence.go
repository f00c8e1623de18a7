package naive_bayes

import (
	"io"

	"github.com/YuminosukeSato/colorbayes/core/histogram"
	"github.com/YuminosukeSato/colorbayes/core/model"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// Snapshot は学習済み BayesModel の永続化形式
type Snapshot struct {
	Quantization    int
	ColorMode       ColorMode
	Subsampling     bool
	Prior           float64
	PositiveSamples int
	NegativeSamples int
	Positive        []float64
	Negative        []float64
}

// Snapshot returns the trained parameters of the model.
func (m *BayesModel) Snapshot() (*Snapshot, error) {
	if err := m.state.RequireFitted(modelName, "Snapshot"); err != nil {
		return nil, err
	}
	return &Snapshot{
		Quantization:    m.quantization,
		ColorMode:       m.mode,
		Subsampling:     m.subsampling,
		Prior:           m.prior,
		PositiveSamples: m.positiveSamples,
		NegativeSamples: m.negativeSamples,
		Positive:        m.positive.Data(),
		Negative:        m.negative.Data(),
	}, nil
}

// FromSnapshot rebuilds a trained model. opts may override the logger; the
// learned hyperparameters always come from the snapshot.
func FromSnapshot(s *Snapshot, opts ...Option) (*BayesModel, error) {
	m, err := NewBayesModel(s.Quantization, append(opts, WithColorMode(s.ColorMode), WithSubsampling(s.Subsampling))...)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckProbability("FromSnapshot", s.Prior); err != nil {
		return nil, err
	}

	pos, err := histogram.FromData(m.mode.dims(), m.bins(), s.Positive)
	if err != nil {
		return nil, errors.Wrap(err, "positive histogram")
	}
	neg, err := histogram.FromData(m.mode.dims(), m.bins(), s.Negative)
	if err != nil {
		return nil, errors.Wrap(err, "negative histogram")
	}

	m.positive, m.negative = pos, neg
	m.prior = s.Prior
	m.positiveSamples = s.PositiveSamples
	m.negativeSamples = s.NegativeSamples
	m.state.SetFitted()
	return m, nil
}

// Save writes the trained model to w in gob format.
func (m *BayesModel) Save(w io.Writer) error {
	s, err := m.Snapshot()
	if err != nil {
		return err
	}
	return model.SaveModelToWriter(s, w)
}

// SaveFile writes the trained model to filename.
func (m *BayesModel) SaveFile(filename string) error {
	s, err := m.Snapshot()
	if err != nil {
		return err
	}
	return model.SaveModel(s, filename)
}

// LoadBayesModel reads a model written by Save.
func LoadBayesModel(r io.Reader, opts ...Option) (*BayesModel, error) {
	var s Snapshot
	if err := model.LoadModelFromReader(&s, r); err != nil {
		return nil, err
	}
	return FromSnapshot(&s, opts...)
}

// LoadBayesModelFile reads a model written by SaveFile.
func LoadBayesModelFile(filename string, opts ...Option) (*BayesModel, error) {
	var s Snapshot
	if err := model.LoadModel(&s, filename); err != nil {
		return nil, err
	}
	return FromSnapshot(&s, opts...)
}
