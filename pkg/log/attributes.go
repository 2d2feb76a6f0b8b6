// Package log defines standard attribute keys for machine learning operations.
//
// Using the same keys everywhere lets a run be filtered by model, operation
// or pipeline stage. Keys follow a dotted hierarchy ("model.name",
// "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "SVC", "StandardScaler", "LabelEncoder"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "split"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "svm", "datasets", "plotting", "pipeline"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the run.
	PhaseKey = "ml.phase"

	// StageKey names the pipeline stage ("load", "visualize", "split", "train", "evaluate").
	StageKey = "pipeline.stage"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct class labels.
	ClassesKey = "data.classes"

	// TrainSamplesKey and TestSamplesKey record partition sizes.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records model accuracy, in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// BalancedAccuracyKey records the mean per-class recall.
	BalancedAccuracyKey = "metrics.balanced_accuracy"

	// IterationKey records the number of solver iterations.
	IterationKey = "training.iteration"

	// SupportVectorsKey records the number of support vectors of a fitted SVC.
	SupportVectorsKey = "svm.support_vectors"
)

// Error and Warning Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// ErrorDetailKey carries the structured fields of typed errors and warnings.
	ErrorDetailKey = "error.detail"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by Error when the error carries a stack.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// OutputPathKey records where an artifact was written.
	OutputPathKey = "output.path"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationSplit     = "split"
	OperationRender    = "render"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"
)
