package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained on data.
type Fitter interface {
	// Fit binds training data to the model and computes derived state.
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that produces point predictions.
type Predictor interface {
	// Predict returns predictions for the given inputs as a column vector.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// PosteriorPredictor is a probabilistic model that reports predictive
// uncertainty alongside the point prediction.
type PosteriorPredictor interface {
	Predictor

	// PredictWithStd returns the predictive mean and the marginal
	// standard deviation at each input.
	PredictWithStd(X mat.Matrix) (*mat.VecDense, *mat.VecDense, error)

	// PredictWithCov returns the predictive mean and the full posterior
	// covariance over the inputs.
	PredictWithCov(X mat.Matrix) (*mat.VecDense, *mat.SymDense, error)
}

// Scorer is a model that can evaluate itself on held-out data.
type Scorer interface {
	// Score returns the coefficient of determination R² on (X, y).
	Score(X, y mat.Matrix) (float64, error)
}
