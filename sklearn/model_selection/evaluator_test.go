package model_selection

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/colorbayes/dataset"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/pkg/log"
	"github.com/YuminosukeSato/colorbayes/sklearn/naive_bayes"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func solids(n int, c color.RGBA) []dataset.Image {
	out := make([]dataset.Image, n)
	for i := range out {
		out[i] = dataset.Solid(4, 4, c)
	}
	return out
}

func quietEvaluator(opts ...EvaluatorOption) *Evaluator {
	logger, _ := log.NewTestLogger(log.LevelError)
	return NewEvaluator(append([]EvaluatorOption{WithLogger(logger)}, opts...)...)
}

func trainedModel(t *testing.T) *naive_bayes.BayesModel {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelError)
	m, err := naive_bayes.NewBayesModel(16, naive_bayes.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Train(solids(3, red), solids(3, blue)); err != nil {
		t.Fatal(err)
	}
	return m
}

func writeDataset(t *testing.T, dir, name string, n int, c color.RGBA) string {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		path := filepath.Join(dir, name+"_"+string(rune('a'+i))+".png")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, dataset.Solid(4, 4, c).ToImage()); err != nil {
			t.Fatal(err)
		}
		f.Close()
		lines[i] = path
	}
	list := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(list, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return list
}

func TestLeaveOneOutSplit(t *testing.T) {
	folds := LeaveOneOut{}.Split(4)
	if len(folds) != 4 {
		t.Fatalf("got %d folds, want 4", len(folds))
	}
	for i, fold := range folds {
		if len(fold.TestIndices) != 1 || fold.TestIndices[0] != i {
			t.Errorf("fold %d tests %v", i, fold.TestIndices)
		}
		if len(fold.TrainIndices) != 3 {
			t.Errorf("fold %d trains on %d samples, want 3", i, len(fold.TrainIndices))
		}
		for _, j := range fold.TrainIndices {
			if j == i {
				t.Errorf("fold %d trains on its own test sample", i)
			}
		}
	}

	for _, n := range []int{0, 1} {
		if got := (LeaveOneOut{}).Split(n); len(got) != 0 {
			t.Errorf("Split(%d) = %v, want no folds", n, got)
		}
	}
}

func TestEvaluateImagesPerfectSeparation(t *testing.T) {
	result, err := quietEvaluator().EvaluateImages(trainedModel(t), solids(4, red), solids(5, blue), 0.5)
	if err != nil {
		t.Fatalf("EvaluateImages: %v", err)
	}

	cm := result.Confusion
	if cm.TP != 4 || cm.TN != 5 || cm.FP != 0 || cm.FN != 0 {
		t.Errorf("confusion = %+v", cm)
	}
	if result.Precision != 1 || result.Recall != 1 {
		t.Errorf("precision = %v, recall = %v, want 1 and 1", result.Precision, result.Recall)
	}
	if len(result.Samples) != 9 || !result.Samples[0].Positive || result.Samples[8].Positive {
		t.Errorf("unexpected sample order %+v", result.Samples)
	}
}

func TestEvaluateImagesRejectsNaNThreshold(t *testing.T) {
	var zero float64
	_, err := quietEvaluator().EvaluateImages(trainedModel(t), solids(1, red), solids(1, blue), zero/zero)
	var ve *errors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEvaluateImagesUntrainedModel(t *testing.T) {
	m, err := naive_bayes.NewBayesModel(16)
	if err != nil {
		t.Fatal(err)
	}
	_, err = quietEvaluator().EvaluateImages(m, solids(1, red), nil, 0.5)
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
}

func TestEvaluateFromLists(t *testing.T) {
	dir := t.TempDir()
	pos := writeDataset(t, dir, "pos", 2, red)
	neg := writeDataset(t, dir, "neg", 3, blue)

	result, err := quietEvaluator().Evaluate(trainedModel(t), pos, neg, 0.5)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Confusion.Total() != 5 || result.Precision != 1 || result.Recall != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestEvaluateMissingList(t *testing.T) {
	dir := t.TempDir()
	pos := writeDataset(t, dir, "pos", 1, red)

	result, err := quietEvaluator().Evaluate(trainedModel(t), pos, filepath.Join(dir, "missing.txt"), 0.5)
	var de *errors.DatasetError
	if !errors.As(err, &de) {
		t.Fatalf("expected DatasetError, got %v", err)
	}
	if result != nil {
		t.Error("expected nil result")
	}
}

func TestComputeThresholdImages(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	e := NewEvaluator(WithLogger(logger))

	params := ModelParams{Quantization: 16, ColorMode: naive_bayes.SingleChannel}
	samples, err := e.ComputeThresholdImages(solids(3, red), solids(2, blue), params)
	if err != nil {
		t.Fatalf("ComputeThresholdImages: %v", err)
	}

	if len(samples) != 5 {
		t.Fatalf("got %d samples, want 5", len(samples))
	}
	for i, s := range samples {
		wantPositive := i < 3
		if s.Positive != wantPositive {
			t.Errorf("sample %d positive = %v, want %v", i, s.Positive, wantPositive)
		}
		if wantPositive && s.Probability <= 0.9 {
			t.Errorf("held-out red scored %v", s.Probability)
		}
		if !wantPositive && s.Probability >= 0.1 {
			t.Errorf("held-out blue scored %v", s.Probability)
		}
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	folds := 0
	for _, entry := range entries {
		if entry["message"] != "Training completed" {
			continue
		}
		folds++
		pos, _ := entry[log.PositiveSamplesKey].(float64)
		neg, _ := entry[log.NegativeSamplesKey].(float64)
		if pos+neg != 4 {
			t.Errorf("fold trained on %v images, want 4", pos+neg)
		}
	}
	if folds != 5 {
		t.Errorf("trained %d fold models, want 5", folds)
	}
}

func TestComputeThresholdParallelMatchesSequential(t *testing.T) {
	positive := solids(4, red)
	negative := solids(4, blue)
	mixed := dataset.NewRGB(4, 4)
	for x := 0; x < 4; x++ {
		mixed.Set(x, 0, 255, 0, 0)
		mixed.Set(x, 1, 0, 0, 255)
	}
	positive = append(positive, mixed)

	params := DefaultModelParams()
	seq, err := quietEvaluator().ComputeThresholdImages(positive, negative, params)
	if err != nil {
		t.Fatal(err)
	}
	par, err := quietEvaluator(WithParallel(true), WithWorkers(3)).ComputeThresholdImages(positive, negative, params)
	if err != nil {
		t.Fatal(err)
	}

	if len(seq) != len(par) {
		t.Fatalf("lengths differ: %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("sample %d: sequential %+v, parallel %+v", i, seq[i], par[i])
		}
	}
}

func TestComputeThresholdErrors(t *testing.T) {
	e := quietEvaluator()

	if _, err := e.ComputeThresholdImages(solids(1, red), nil, DefaultModelParams()); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("single image: expected ErrEmptyData, got %v", err)
	}

	var ve *errors.ValidationError
	if _, err := e.ComputeThresholdImages(solids(2, red), nil, ModelParams{Quantization: 3}); !errors.As(err, &ve) {
		t.Errorf("bad quantization: expected ValidationError, got %v", err)
	}

	dir := t.TempDir()
	neg := writeDataset(t, dir, "neg", 1, blue)
	samples, err := e.ComputeThreshold(filepath.Join(dir, "missing.txt"), neg, DefaultModelParams())
	var de *errors.DatasetError
	if !errors.As(err, &de) {
		t.Errorf("missing list: expected DatasetError, got %v", err)
	}
	if samples != nil {
		t.Error("missing list: expected nil samples")
	}
}

func TestComputeThresholdFromLists(t *testing.T) {
	dir := t.TempDir()
	pos := writeDataset(t, dir, "pos", 2, red)
	neg := writeDataset(t, dir, "neg", 2, blue)

	samples, err := quietEvaluator().ComputeThreshold(pos, neg, DefaultModelParams())
	if err != nil {
		t.Fatalf("ComputeThreshold: %v", err)
	}
	if len(samples) != 4 {
		t.Errorf("got %d samples, want 4", len(samples))
	}
}
