package main

import (
	"math"
	"strconv"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/sklearn/naive_bayes"
)

type variant int

const (
	variantNone variant = iota
	variantEvaluate
	variantAnalyze
	variantPredict
	variantHelp
	variantVersion
)

// params holds the parsed command line.
type params struct {
	variant variant

	trainPositive string
	trainNegative string
	testPositive  string
	testNegative  string
	image         string

	quantization int
	mode         naive_bayes.ColorMode
	subsampling  bool
	threshold    float64
	thresholdSet bool

	plotPath  string
	saveModel string
	loadModel string
	workers   int
}

func defaultParams() params {
	return params{
		trainPositive: "../data/train_pos.txt",
		trainNegative: "../data/train_neg.txt",
		testPositive:  "../data/test_pos.txt",
		testNegative:  "../data/test_neg.txt",
		quantization:  16,
		mode:          naive_bayes.ThreeChannel,
		workers:       1,
	}
}

// parseArgs parses args (without the program name). The last variant flag wins.
func parseArgs(args []string) (params, error) {
	p := defaultParams()

	next := func(i *int, flag string, n int) ([]string, error) {
		if *i+n >= len(args) {
			return nil, errors.NewValidationError(flag, "missing value", nil)
		}
		vals := args[*i+1 : *i+1+n]
		*i += n
		return vals, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--evaluate":
			p.variant = variantEvaluate
		case "--analyze":
			p.variant = variantAnalyze
		case "--predict":
			p.variant = variantPredict
		case "--help", "-h":
			p.variant = variantHelp
			return p, nil
		case "--version", "-v":
			p.variant = variantVersion
			return p, nil
		case "--subsample":
			p.subsampling = true
		case "--train", "--test":
			v, err := next(&i, arg, 2)
			if err != nil {
				return p, err
			}
			if arg == "--train" {
				p.trainPositive, p.trainNegative = v[0], v[1]
			} else {
				p.testPositive, p.testNegative = v[0], v[1]
			}
		case "--image", "--plot", "--save-model", "--load-model":
			v, err := next(&i, arg, 1)
			if err != nil {
				return p, err
			}
			switch arg {
			case "--image":
				p.image = v[0]
			case "--plot":
				p.plotPath = v[0]
			case "--save-model":
				p.saveModel = v[0]
			default:
				p.loadModel = v[0]
			}
		case "--threshold":
			v, err := next(&i, arg, 1)
			if err != nil {
				return p, err
			}
			t, err := strconv.ParseFloat(v[0], 64)
			if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
				return p, errors.NewValidationError("threshold", "must be a finite number", v[0])
			}
			p.threshold, p.thresholdSet = t, true
		case "--q", "--workers":
			v, err := next(&i, arg, 1)
			if err != nil {
				return p, err
			}
			n, err := strconv.Atoi(v[0])
			if err != nil {
				return p, errors.NewValidationError(arg[2:], "must be an integer", v[0])
			}
			if arg == "--q" {
				p.quantization = n
			} else {
				p.workers = n
			}
		case "--method":
			v, err := next(&i, arg, 1)
			if err != nil {
				return p, err
			}
			mode, err := naive_bayes.ParseColorMode(v[0])
			if err != nil {
				return p, err
			}
			p.mode = mode
		default:
			return p, errors.NewValidationError("argument", "unknown argument", arg)
		}
	}

	if err := naive_bayes.ValidateQuantization(p.quantization); err != nil {
		return p, err
	}
	if p.workers < 0 {
		return p, errors.NewValidationError("workers", "must not be negative", p.workers)
	}
	if p.variant == variantNone {
		return p, errors.NewValidationError("variant", "one of --evaluate, --analyze, --predict is required", nil)
	}
	return p, nil
}
