// Package errors provides structured error handling and the warning system
// used across the GPGo library. Error types carry enough context to diagnose
// a failed factorization or a misconfigured kernel, and every constructor
// attaches a stack trace via cockroachdb/errors.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("GPGo-Warning: %v\n", w)
	}
	// zerolog warn function, set lazily to avoid a circular import.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler. This controls how
// non-fatal conditions such as clamped posterior variances are reported.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warn function (set lazily to
// avoid a circular import with pkg/log).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog function is installed it takes
// precedence over the plain handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// NegativeVarianceWarning is emitted when a posterior marginal variance
// comes out negative due to floating-point cancellation and is clamped to
// zero before being reported to the caller.
type NegativeVarianceWarning struct {
	Op       string
	Index    int
	Variance float64
}

func (w *NegativeVarianceWarning) Error() string {
	return fmt.Sprintf("%s: posterior variance %.6g at test point %d is negative, clamped to 0",
		w.Op, w.Variance, w.Index)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *NegativeVarianceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("index", w.Index).
		Float64("variance", w.Variance).
		Str("type", "NegativeVarianceWarning")
}

// NewNegativeVarianceWarning creates a new NegativeVarianceWarning.
func NewNegativeVarianceWarning(op string, index int, variance float64) *NegativeVarianceWarning {
	return &NegativeVarianceWarning{Op: op, Index: index, Variance: variance}
}

// JitterAppliedWarning is emitted when the opt-in jitter fallback had to
// inflate the diagonal before a covariance matrix became factorizable.
type JitterAppliedWarning struct {
	Op       string
	Jitter   float64
	Attempts int
}

func (w *JitterAppliedWarning) Error() string {
	return fmt.Sprintf("%s: added jitter %.3g to the diagonal after %d attempt(s) to obtain a positive-definite matrix",
		w.Op, w.Jitter, w.Attempts)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *JitterAppliedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Float64("jitter", w.Jitter).
		Int("attempts", w.Attempts).
		Str("type", "JitterAppliedWarning")
}

// NewJitterAppliedWarning creates a new JitterAppliedWarning.
func NewJitterAppliedWarning(op string, jitter float64, attempts int) *JitterAppliedWarning {
	return &JitterAppliedWarning{Op: op, Jitter: jitter, Attempts: attempts}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict, LogMarginalLikelihood or another
// read of derived state is invoked before the model has been successfully
// fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("gpgo: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input dimensions do not match what the
// operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("gpgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// NotPositiveDefiniteError is returned when a Cholesky factorization meets
// a non-positive pivot. It names the matrix being factorized, its size and
// the offending pivot so a degenerate kernel/noise combination can be
// diagnosed. The factorization never clamps or regularizes on its own.
type NotPositiveDefiniteError struct {
	Op    string
	Size  int
	Pivot int
	Value float64
}

func (e *NotPositiveDefiniteError) Error() string {
	return fmt.Sprintf("gpgo: %s: matrix (%dx%d) is not positive definite: pivot %d has value %.6g. "+
		"Check for duplicate inputs or increase the noise variance",
		e.Op, e.Size, e.Size, e.Pivot, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotPositiveDefiniteError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("size", e.Size).
		Int("pivot", e.Pivot).
		Float64("pivot_value", e.Value).
		Str("type", "NotPositiveDefiniteError")
}

// NewNotPositiveDefiniteError creates a NotPositiveDefiniteError with a
// stack trace attached.
func NewNotPositiveDefiniteError(op string, size, pivot int, value float64) error {
	err := &NotPositiveDefiniteError{Op: op, Size: size, Pivot: pivot, Value: value}
	return errors.WithStack(err)
}

// ValidationError is returned when a configuration parameter fails
// validation before any computation starts, such as a non-positive
// lengthscale or a negative noise variance.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gpgo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned for arguments whose value is invalid for the
// requested operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gpgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error raised by a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gpgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("gpgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError reports NaN or Inf values produced by a
// numerical operation.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("gpgo: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace attached.
func NewNumericalInstabilityError(operation string, values []float64) error {
	err := &NumericalInstabilityError{Operation: operation, Values: values}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = New("matrix is not square")
)
