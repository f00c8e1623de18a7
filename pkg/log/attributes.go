// Package log defines standard attribute keys for classifier operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.quantization",
// "data.samples") so log lines from training, evaluation and calibration can
// be filtered uniformly.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model. Example: "BayesModel"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "train", "predict", "evaluate", "compute_threshold", "analyze"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "naive_bayes", "model_selection", "dataset"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Hyperparameters
const (
	// QuantizationKey records the colour bucket width Q.
	QuantizationKey = "model.quantization"

	// ColorModeKey records the histogram colour mode: "r" or "rgb".
	ColorModeKey = "model.color_mode"

	// SubsamplingKey records whether every 2nd row and column is visited.
	SubsamplingKey = "model.subsampling"

	// BinsKey records the number of buckets per histogram axis (256/Q).
	BinsKey = "model.bins"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of images processed.
	SamplesKey = "data.samples"

	// PositiveSamplesKey indicates the number of positive-class images.
	PositiveSamplesKey = "data.positive"

	// NegativeSamplesKey indicates the number of negative-class images.
	NegativeSamplesKey = "data.negative"

	// SkippedKey indicates the number of dataset entries that could not be decoded.
	SkippedKey = "data.skipped"

	// PixelsKey indicates the number of pixels visited in an image.
	PixelsKey = "data.pixels"

	// DatasetPathKey is the path of a dataset list file.
	DatasetPathKey = "data.list_path"

	// ImagePathKey is the path of a single image.
	ImagePathKey = "data.image_path"
)

// Results
const (
	// PriorKey records the estimated positive-class prior.
	PriorKey = "model.prior"

	// ProbabilityKey records a mean posterior probability for one image.
	ProbabilityKey = "preds.probability"

	// ThresholdKey records a decision threshold.
	ThresholdKey = "eval.threshold"

	// PrecisionKey records TP/(TP+FN).
	PrecisionKey = "eval.precision"

	// RecallKey records TP/(TP+FP).
	RecallKey = "eval.recall"

	// AUCKey records the area under the ROC curve.
	AUCKey = "eval.auc"

	// FoldKey records the leave-one-out fold index.
	FoldKey = "eval.fold"

	// WorkersKey records the number of parallel workers in use.
	WorkersKey = "infra.workers"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorKey is the field an error value is attached to.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information extracted from
	// cockroachdb/errors safe details.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationTrain            = "train"
	OperationPredict          = "predict"
	OperationEvaluate         = "evaluate"
	OperationComputeThreshold = "compute_threshold"
	OperationAnalyze          = "analyze"

	PhaseTraining    = "training"
	PhaseInference   = "inference"
	PhaseCalibration = "calibration"
	PhaseTesting     = "testing"
)
