// Package model provides the estimator scaffolding shared by GPGo models:
// the fitted-state machine and the interfaces a regression model satisfies.
package model

// EstimatorState represents the lifecycle state of a model.
type EstimatorState int

const (
	// NotFitted means the model has no valid derived state; predictions
	// and likelihood reads are rejected in this state.
	NotFitted EstimatorState = iota
	// Fitted means the model holds derived state consistent with its
	// bound training data and parameters.
	Fitted
)

// BaseEstimator is embedded by models to track their fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model holds valid derived state.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
