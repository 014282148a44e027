// Package log defines standard attribute keys for Gaussian Process
// operations. Using these keys keeps log output filterable across the
// library: every fit, prediction and factorization reports its context
// under the same hierarchical names.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "GPRegressor".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_cov", "sample", "update".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "gp", "kernel", "linalg".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// TrainPointsKey is the number of training inputs bound to the model.
	TrainPointsKey = "data.train_points"

	// TestPointsKey is the number of test inputs in a prediction query.
	TestPointsKey = "data.test_points"

	// FeaturesKey is the input dimensionality.
	FeaturesKey = "data.features"
)

// Gaussian Process configuration and diagnostics.
const (
	// KernelKey names the covariance function in use, e.g. "RBF".
	KernelKey = "gp.kernel"

	// NoiseVarianceKey is the observation noise variance added to the
	// diagonal of the training covariance.
	NoiseVarianceKey = "gp.noise_variance"

	// JitterKey is the opt-in diagonal jitter, zero when disabled.
	JitterKey = "gp.jitter"

	// LogLikelihoodKey is the log marginal likelihood of the fitted model.
	LogLikelihoodKey = "gp.log_likelihood"

	// LogDetKey is the log-determinant of the regularized covariance.
	LogDetKey = "gp.logdet"

	// MatrixSizeKey is the order of the matrix being factorized.
	MatrixSizeKey = "linalg.matrix_size"

	// PivotKey is the index of a failing Cholesky pivot.
	PivotKey = "linalg.pivot"
)

// Performance.
const (
	// DurationMsKey is the wall-clock duration of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"
)
