// Command colorbayes classifies images with a per-pixel Bayes colour model.
//
// Usage:
//
//	colorbayes --evaluate --train pos.txt neg.txt --test pos.txt neg.txt --threshold 0.37
//	colorbayes --analyze --train pos.txt neg.txt --plot roc.png
//	colorbayes --predict --train pos.txt neg.txt --image img.bmp
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/colorbayes/dataset"
	"github.com/YuminosukeSato/colorbayes/metrics"
	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/pkg/log"
	"github.com/YuminosukeSato/colorbayes/sklearn/model_selection"
	"github.com/YuminosukeSato/colorbayes/sklearn/naive_bayes"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := log.SetupFromEnv(stderr); err != nil {
		fmt.Fprintf(stderr, "Invalid %s: %v\n", log.LevelEnvVar, err)
		return 1
	}
	logger := log.GetLoggerWithName("cli")

	p, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Wrong format or number of arguments.")
		fmt.Fprintf(stderr, "  %v\n", err)
		printUsage(stderr)
		return 1
	}

	switch p.variant {
	case variantHelp:
		printUsage(stdout)
		return 0
	case variantVersion:
		fmt.Fprintf(stdout, "colorbayes %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	a := &app{
		params: p,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		loader: dataset.NewLoader(dataset.WithLogger(log.GetLoggerWithName("dataset"))),
	}

	switch p.variant {
	case variantAnalyze:
		return a.analyze()
	case variantEvaluate:
		return a.evaluate()
	default:
		return a.predict()
	}
}

type app struct {
	params params
	stdout io.Writer
	stderr io.Writer
	logger log.Logger
	loader *dataset.Loader
}

func (a *app) fail(msg string, err error) int {
	fmt.Fprintln(a.stderr, msg)
	if err != nil {
		a.logger.Debug("command failed", err)
		fmt.Fprintf(a.stderr, "  %v\n", err)
	}
	return 1
}

func (a *app) evaluator() *model_selection.Evaluator {
	return model_selection.NewEvaluator(
		model_selection.WithLoader(a.loader),
		model_selection.WithLogger(log.GetLoggerWithName("model_selection")),
		model_selection.WithParallel(a.params.workers != 1),
		model_selection.WithWorkers(a.params.workers),
	)
}

// model loads a saved model or trains a new one from the training lists.
func (a *app) model() (*naive_bayes.BayesModel, error) {
	p := a.params
	if p.loadModel != "" {
		m, err := naive_bayes.LoadBayesModelFile(p.loadModel)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Model loaded",
			log.QuantizationKey, m.Quantization(),
			log.ColorModeKey, m.ColorMode().String(),
			log.SamplesKey, m.TrainingSampleCount(),
		)
		return m, nil
	}

	m, err := naive_bayes.NewBayesModel(p.quantization,
		naive_bayes.WithColorMode(p.mode),
		naive_bayes.WithSubsampling(p.subsampling),
	)
	if err != nil {
		return nil, err
	}
	if err := m.TrainFromLists(a.loader, p.trainPositive, p.trainNegative); err != nil {
		return nil, err
	}
	if p.saveModel != "" {
		if err := m.SaveFile(p.saveModel); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (a *app) analyze() int {
	p := a.params
	samples, err := a.evaluator().ComputeThreshold(p.trainPositive, p.trainNegative, model_selection.ModelParams{
		Quantization: p.quantization,
		ColorMode:    p.mode,
		Subsampling:  p.subsampling,
	})
	if err != nil {
		return a.fail("Failed to load positive or negative training samples.", err)
	}

	points := metrics.ThresholdSweep(samples, metrics.DefaultSweepStep)
	fmt.Fprintln(a.stdout, "threshold\tFP/(TN+FP)\tTP/(TP+FN)")
	for _, pt := range points {
		fmt.Fprintf(a.stdout, "%.6g\t%.6g\t%.6g\n", pt.Threshold, pt.FPR, pt.TPR)
	}

	auc, err := metrics.AUC(samples)
	if err != nil {
		return a.fail("Failed to compute AUC.", err)
	}
	fmt.Fprintf(a.stdout, "AUC\t%.6g\n", auc)
	a.logger.Info("Analysis completed", log.OperationKey, log.OperationAnalyze, log.AUCKey, auc)

	if p.plotPath != "" {
		if err := metrics.PlotROC(points, auc, p.plotPath); err != nil {
			return a.fail("Failed to write ROC plot.", err)
		}
	}
	return 0
}

func (a *app) evaluate() int {
	p := a.params
	if !p.thresholdSet {
		fmt.Fprintln(a.stderr, "Use --threshold to define positive threshold value.")
		printUsage(a.stderr)
		return 1
	}

	m, err := a.model()
	if err != nil {
		return a.fail("Failed to open training text file.", err)
	}

	result, err := a.evaluator().Evaluate(m, p.testPositive, p.testNegative, p.threshold)
	if err != nil {
		return a.fail("Failed to open test text file.", err)
	}

	fmt.Fprintf(a.stdout, "Precision %.2f %%\n", result.Precision*100)
	fmt.Fprintf(a.stdout, "Recall %.2f %%\n", result.Recall*100)
	return 0
}

func (a *app) predict() int {
	p := a.params
	if p.image == "" {
		return a.fail("Input image not found (use parameter --image).", nil)
	}

	m, err := a.model()
	if err != nil {
		return a.fail("Failed to open training text file.", err)
	}

	img, err := a.loader.Open(p.image)
	if err != nil {
		return a.fail(fmt.Sprintf("Image %s not found", p.image), err)
	}

	prob, err := m.Predict(img)
	if err != nil {
		var ve *errors.ValueError
		if errors.As(err, &ve) {
			return a.fail(fmt.Sprintf("Image %s has no pixels", p.image), err)
		}
		return a.fail("Prediction failed.", err)
	}
	a.logger.Debug("Prediction completed", log.OperationKey, log.OperationPredict, log.ImagePathKey, p.image, log.ProbabilityKey, prob)
	fmt.Fprintf(a.stdout, "Posterior probability of sample: %.2f %%\n", prob*100)
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: colorbayes variant [options]
  variant --evaluate: evaluate the classifier on the test dataset
  variant --analyze:  print a table of rates for the training samples
  variant --predict:  predict the probability of one image
Required arguments:
  evaluate: --test pos neg, --train pos neg, --threshold num
  analyze:  --train pos neg
  predict:  --train pos neg, --image path
Optional arguments:
  --method r | --method rgb (default)
  --q num: bucket width per colour channel, power of 2 up to 256 (default 16)
  --subsample: visit every 2nd row and column (default off)
  --workers num: goroutines for scoring and leave-one-out, 0 = all cores (default 1)
  --plot path: write the ROC curve of --analyze (png, svg, pdf)
  --save-model path: save the trained model (evaluate, predict)
  --load-model path: use a saved model instead of training (evaluate, predict)
  --help, --version
Environment variables:
  COLORBAYES_LOG_LEVEL=debug|info|warn|error (default warn)
Defaults:
  --train ../data/train_pos.txt ../data/train_neg.txt
  --test  ../data/test_pos.txt ../data/test_neg.txt
Example:
  colorbayes --evaluate --train p1.txt n1.txt --test p2.txt n2.txt --threshold 0.34
  colorbayes --analyze --train p.txt n.txt
  colorbayes --predict --image img.bmp
`)
}
