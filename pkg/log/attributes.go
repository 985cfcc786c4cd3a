// Package log defines standard attribute keys for boosted training operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in RTBKit learners. Using these standard keys enables
// better log analysis, monitoring, and debugging of training runs.
//
// The attributes are organized into categories:
//   - Learner and Operation Context
//   - Data Shape and Characteristics
//   - Split Search Results
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "learner.name",
// "data.examples") to enable structured log analysis and filtering.

package log

// Learner and Operation Context
// These attributes identify the learner type and the operation being performed.
const (
	// LearnerKey identifies the type of weak learner.
	// Examples: "RegressionStump"
	LearnerKey = "learner.name"

	// UpdateRuleKey records the update rule the learner was trained under.
	// Examples: "normal", "gentle", "prob"
	UpdateRuleKey = "learner.update_rule"

	// OperationKey specifies the training operation being performed.
	// Standard values: "train", "search", "predict", "load"
	OperationKey = "boosting.operation"

	// ComponentKey identifies which component or package is performing the
	// operation. Examples: "boosting.trainer", "boosting.search", "metrics"
	ComponentKey = "boosting.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// ExamplesKey indicates the number of training examples (rows).
	ExamplesKey = "data.examples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// MissingKey indicates the number of missing feature values encountered.
	MissingKey = "data.missing"

	// WeightChannelsKey indicates the stride of the per-example weight matrix.
	WeightChannelsKey = "data.weight_channels"

	// FingerprintKey carries the dataset content hash for run reproducibility.
	FingerprintKey = "data.fingerprint"
)

// Split Search Results
// These attributes describe the outcome of a stump split search.
const (
	// FeatureKey records the feature index of a split.
	FeatureKey = "split.feature"

	// ThresholdKey records the threshold of a split.
	ThresholdKey = "split.threshold"

	// ScoreKey records the split quality score (lower is better).
	ScoreKey = "split.score"

	// CandidatesKey records how many candidate thresholds were examined.
	CandidatesKey = "split.candidates"

	// PrunedKey records how many candidates the lower bound discarded
	// before a full score was computed.
	PrunedKey = "split.pruned"
)

// Performance Metrics
// These attributes capture timing and resource usage information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records the number of concurrent sweep workers used.
	WorkersKey = "perf.workers"

	// KernelISAKey records which reduction kernel variant was dispatched.
	KernelISAKey = "perf.kernel_isa"

	// MSEKey records mean squared error for evaluation operations.
	MSEKey = "metrics.mse"

	// RMSEKey records root mean squared error for evaluation operations.
	RMSEKey = "metrics.rmse"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "INVALID_PROBLEM", "DIMENSION_MISMATCH"
	ErrorCodeKey = "error.code"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check label vector length", "Provide at least one feature"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard training operations
	OperationTrain   = "train"
	OperationSearch  = "search"
	OperationPredict = "predict"
	OperationLoad    = "load"

	// Standard error codes
	ErrorInvalidProblem       = "INVALID_PROBLEM"
	ErrorDimensionMismatch    = "DIMENSION_MISMATCH"
	ErrorEmptyData            = "EMPTY_DATA"
	ErrorNotImplemented       = "NOT_IMPLEMENTED"
	ErrorNumericalInstability = "NUMERICAL_INSTABILITY"
	ErrorDegenerateFeature    = "DEGENERATE_FEATURE"
)
