package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

func TestThresholdSweep(t *testing.T) {
	samples := scored([]float64{0.95, 0.8, 0.6, 0.3}, []float64{0.05, 0.2, 0.4, 0.7})
	points := ThresholdSweep(samples, DefaultSweepStep)

	if len(points) != 101 {
		t.Fatalf("got %d points, want 101", len(points))
	}
	if points[0].Threshold != 0 || points[100].Threshold != 1 {
		t.Errorf("thresholds run from %v to %v, want 0 to 1", points[0].Threshold, points[100].Threshold)
	}
	if points[0].FPR != 1 || points[0].TPR != 1 {
		t.Errorf("first point = %+v, want (1, 1)", points[0])
	}
	if points[100].FPR != 0 || points[100].TPR != 0 {
		t.Errorf("last point = %+v, want (0, 0)", points[100])
	}

	for i := 1; i < len(points); i++ {
		if points[i].Threshold <= points[i-1].Threshold {
			t.Fatalf("thresholds not increasing at %d", i)
		}
		if points[i].FPR > points[i-1].FPR || points[i].TPR > points[i-1].TPR {
			t.Errorf("rates increased between %+v and %+v", points[i-1], points[i])
		}
	}
}

func TestThresholdSweepDecimalGrid(t *testing.T) {
	// A positive scored exactly 0.07 is not above the 0.07 threshold.
	samples := scored([]float64{0.07, 0.3}, []float64{0.1})
	points := ThresholdSweep(samples, DefaultSweepStep)

	for i, pt := range points {
		if want := float64(i) / 100; pt.Threshold != want {
			t.Errorf("threshold %d = %v, want %v", i, pt.Threshold, want)
		}
	}
	if got := points[6].TPR; got != 1 {
		t.Errorf("TPR at 0.06 = %v, want 1", got)
	}
	if got := points[7].TPR; got != 0.5 {
		t.Errorf("TPR at 0.07 = %v, want 0.5", got)
	}

	tenths := ThresholdSweep(samples, 0.1)
	if tenths[3].Threshold != 0.3 {
		t.Errorf("third tenth = %v, want 0.3", tenths[3].Threshold)
	}
}

func TestThresholdSweepStep(t *testing.T) {
	samples := scored([]float64{0.9}, []float64{0.1})

	tests := []struct {
		name string
		step float64
		want int
	}{
		{"tenth", 0.1, 11},
		{"quarter", 0.25, 5},
		{"zero falls back", 0, 101},
		{"negative falls back", -1, 101},
		{"NaN falls back", math.NaN(), 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := ThresholdSweep(samples, tt.step)
			if len(points) != tt.want {
				t.Fatalf("got %d points, want %d", len(points), tt.want)
			}
			if last := points[len(points)-1].Threshold; last != 1 {
				t.Errorf("last threshold = %v, want 1", last)
			}
		})
	}
}

func TestAUC(t *testing.T) {
	tests := []struct {
		name    string
		pos     []float64
		neg     []float64
		want    float64
		wantErr bool
	}{
		{
			name: "Perfect classifier",
			pos:  []float64{0.7, 0.8, 0.9},
			neg:  []float64{0.1, 0.2, 0.3},
			want: 1.0,
		},
		{
			name: "Worst classifier",
			pos:  []float64{0.3, 0.2, 0.1},
			neg:  []float64{0.9, 0.8, 0.7},
			want: 0.0,
		},
		{
			name: "Random classifier",
			pos:  []float64{0.5, 0.5},
			neg:  []float64{0.5, 0.5},
			want: 0.5,
		},
		{
			name: "Typical case",
			pos:  []float64{0.35, 0.8},
			neg:  []float64{0.1, 0.4},
			want: 0.75,
		},
		{
			name: "All positive labels",
			pos:  []float64{0.1, 0.4, 0.35, 0.8},
			want: 0.5,
		},
		{
			name: "All negative labels",
			neg:  []float64{0.1, 0.4, 0.35, 0.8},
			want: 0.5,
		},
		{
			name:    "Empty samples",
			wantErr: true,
		},
		{
			name:    "NaN score",
			pos:     []float64{math.NaN()},
			neg:     []float64{0.2},
			wantErr: true,
		},
	}

	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AUC(scored(tt.pos, tt.neg))
			if (err != nil) != tt.wantErr {
				t.Errorf("AUC() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlotROC(t *testing.T) {
	samples := scored([]float64{0.95, 0.8, 0.6, 0.3}, []float64{0.05, 0.2, 0.4, 0.7})
	points := ThresholdSweep(samples, 0.05)
	auc, err := AUC(samples)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"roc.png", "roc.svg"} {
		path := filepath.Join(dir, name)
		if err := PlotROC(points, auc, path); err != nil {
			t.Fatalf("PlotROC(%s): %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("plot not written: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if err := PlotROC(nil, 0, filepath.Join(dir, "empty.png")); err == nil {
		t.Error("expected error for empty points")
	}
}
