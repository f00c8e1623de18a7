package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationTrain)
	testLogger.Warn("warning message", ImagePathKey, "missing.bmp")
	testLogger.Error("error message", fmt.Errorf("test error"), DatasetPathKey, "train_pos.txt")

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField(ErrorKey, "test error") {
		t.Error("Expected leading error to be stored under the error key")
	}
	if got := testLogger.CountLevel(LevelWarn); got != 1 {
		t.Errorf("CountLevel(Warn) = %d, want 1", got)
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "BayesModel",
		QuantizationKey, 16,
	)
	contextLogger.Info("contextual message", OperationKey, OperationPredict)

	if !testLogger.ContainsField(ModelNameKey, "BayesModel") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(QuantizationKey, 16.0) {
		t.Error("Quantization context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationPredict) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestLoggerConcurrentWrites checks that derived loggers share one lock
func TestLoggerConcurrentWrites(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(fold int) {
			defer wg.Done()
			testLogger.With(FoldKey, fold).Debug("fold scored")
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 8 {
		t.Errorf("Expected 8 entries, got %d", len(entries))
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("dataset").Info("named logger message")

	lines := buffer.String()
	for _, want := range []string{"provider test message", "named logger message", "dataset"} {
		if !strings.Contains(lines, want) {
			t.Errorf("%q not found in output", want)
		}
	}

	provider.SetLevel(LevelError)
	provider.GetLogger().Warn("dropped")
	if strings.Contains(buffer.String(), "dropped") {
		t.Error("Warn should be filtered after SetLevel(LevelError)")
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ModelNameKey, "BayesModel").Info("Training completed", PriorKey, 0.5, SamplesKey, 4)
	logger.Error("Failed to open list", errors.NewDatasetError("Train", "pos.txt", fmt.Errorf("no such file")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	for _, want := range []string{`"model.name":"BayesModel"`, `"model.prior":0.5`, `"data.samples":4`, `"error":`, "pos.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Enabled(Debug) should be false at info level")
	}
	if !logger.Enabled(context.Background(), LevelWarn) {
		t.Error("Enabled(Warn) should be true at info level")
	}
}

func TestSetupLoggerRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := SetupLogger("warn", &buf); err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))

	errors.Warn(errors.NewSkippedSampleWarning("img/broken.bmp", fmt.Errorf("bad header")))
	GetLoggerWithName("naive_bayes").Info("not shown")

	out := buf.String()
	if !strings.Contains(out, "img/broken.bmp") {
		t.Errorf("warning not routed through zerolog: %q", out)
	}
	if strings.Contains(out, "not shown") {
		t.Error("info record should be filtered at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
