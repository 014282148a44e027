package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/metrics"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// checkTest validates a test input block against the fitted state. A zero
// row count is legal and reported back to the caller, which returns the
// matching empty outputs.
func checkTest(op string, X mat.Matrix, nFeatures int) (m int, empty bool, err error) {
	m, c := X.Dims()
	if m == 0 {
		return 0, true, nil
	}
	if c != nFeatures {
		return 0, false, errors.NewDimensionError(op, nFeatures, c, 1)
	}
	return m, false, nil
}

// Predict returns the posterior mean at each test input as an m×1 column.
// The mean is K*ᵀα with the cached α, so no solve runs here at all.
func (g *GPRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	const op = "GPRegressor.Predict"

	post, xTrain, nFeatures, err := g.snapshot("Predict")
	if err != nil {
		return nil, err
	}
	m, empty, err := checkTest(op, X, nFeatures)
	if err != nil {
		return nil, err
	}
	if empty {
		return &mat.Dense{}, nil
	}

	kstar, err := kernel.Cross(xTrain, X, g.kern)
	if err != nil {
		return nil, err
	}

	mu := mat.NewVecDense(m, nil)
	mu.MulVec(kstar.T(), post.alpha)

	out := mat.NewDense(m, 1, nil)
	for i := 0; i < m; i++ {
		out.Set(i, 0, mu.AtVec(i)*post.yStd+post.yMean)
	}
	return out, nil
}

// PredictWithStd returns the posterior mean and the marginal standard
// deviation at each test input. Variances come from the diagonal
// k(x,x) - ‖L⁻¹k*‖² without forming the full covariance, so the cost is
// linear in the number of test points beyond the triangular solves.
//
// Round-off can push a variance slightly below zero near training inputs;
// such values are clamped to zero and reported through the warning system.
func (g *GPRegressor) PredictWithStd(X mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	const op = "GPRegressor.PredictWithStd"

	post, xTrain, nFeatures, err := g.snapshot("PredictWithStd")
	if err != nil {
		return nil, nil, err
	}
	m, empty, err := checkTest(op, X, nFeatures)
	if err != nil {
		return nil, nil, err
	}
	if empty {
		return &mat.VecDense{}, &mat.VecDense{}, nil
	}

	kstar, err := kernel.Cross(xTrain, X, g.kern)
	if err != nil {
		return nil, nil, err
	}
	v, err := post.chol.SolveLower(kstar)
	if err != nil {
		return nil, nil, err
	}

	mu := mat.NewVecDense(m, nil)
	mu.MulVec(kstar.T(), post.alpha)

	prior := kernel.Diagonal(X, g.kern)
	mean := mat.NewVecDense(m, nil)
	std := mat.NewVecDense(m, nil)
	for j := 0; j < m; j++ {
		variance := prior[j]
		for i := 0; i < post.n; i++ {
			w := v.At(i, j)
			variance -= w * w
		}
		if variance < 0 {
			errors.Warn(errors.NewNegativeVarianceWarning(op, j, variance))
			variance = 0
		}
		mean.SetVec(j, mu.AtVec(j)*post.yStd+post.yMean)
		std.SetVec(j, math.Sqrt(variance)*post.yStd)
	}
	return mean, std, nil
}

// PredictWithCov returns the posterior mean and the full m×m posterior
// covariance over the test inputs: K** - VᵀV with V = L⁻¹K*. The train
// covariance is never inverted; everything flows through the cached factor.
func (g *GPRegressor) PredictWithCov(X mat.Matrix) (*mat.VecDense, *mat.SymDense, error) {
	const op = "GPRegressor.PredictWithCov"

	post, xTrain, nFeatures, err := g.snapshot("PredictWithCov")
	if err != nil {
		return nil, nil, err
	}
	m, empty, err := checkTest(op, X, nFeatures)
	if err != nil {
		return nil, nil, err
	}
	if empty {
		return &mat.VecDense{}, &mat.SymDense{}, nil
	}

	kstar, err := kernel.Cross(xTrain, X, g.kern)
	if err != nil {
		return nil, nil, err
	}
	kss, err := kernel.Gram(X, g.kern)
	if err != nil {
		return nil, nil, err
	}
	v, err := post.chol.SolveLower(kstar)
	if err != nil {
		return nil, nil, err
	}

	mu := mat.NewVecDense(m, nil)
	mu.MulVec(kstar.T(), post.alpha)

	var vtv mat.Dense
	vtv.Mul(v.T(), v)

	scale := post.yStd * post.yStd
	mean := mat.NewVecDense(m, nil)
	cov := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		mean.SetVec(i, mu.AtVec(i)*post.yStd+post.yMean)
		for j := i; j < m; j++ {
			cov.SetSym(i, j, (kss.At(i, j)-vtv.At(i, j))*scale)
		}
	}
	return mean, cov, nil
}

// Score returns the coefficient of determination R² of the predictions on
// (X, y). The best possible score is 1.0.
func (g *GPRegressor) Score(X, y mat.Matrix) (float64, error) {
	const op = "GPRegressor.Score"

	pred, err := g.Predict(X)
	if err != nil {
		return 0, err
	}

	r, cy := y.Dims()
	pr, _ := pred.Dims()
	if r != pr {
		return 0, errors.NewDimensionError(op, pr, r, 0)
	}
	if cy != 1 {
		return 0, errors.NewValueError(op, "y must be a column vector")
	}

	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, pred.At(i, 0))
	}
	return metrics.R2Score(yTrue, yPred)
}
