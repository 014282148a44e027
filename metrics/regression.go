// Package metrics provides evaluation metrics for regression models,
// including the probabilistic scores that assess a predictive distribution
// rather than a point estimate.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE computes the mean squared error (1/n) Σ(yTrue - yPred)².
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error (1/n) Σ|yTrue - yPred|.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R² = 1 - RSS/TSS. It
// fails when yTrue has no variance, since R² is undefined there.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		yp := yPred.AtVec(i)
		tss += (yt - yMean) * (yt - yMean)
		rss += (yt - yp) * (yt - yp)
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MAPE computes the mean absolute percentage error over the entries where
// yTrue is nonzero.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		if yt == 0 {
			continue
		}
		sum += math.Abs(yt-yPred.AtVec(i)) / math.Abs(yt)
		valid++
	}
	if valid == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	return (sum / float64(valid)) * 100, nil
}

// NegativeLogPredictiveDensity computes the average negative log density of
// the observations under independent Gaussian predictions N(mean_i, var_i).
// Lower is better; unlike MSE it penalizes both miscalibrated means and
// miscalibrated variances. Every variance must be strictly positive.
func NegativeLogPredictiveDensity(yTrue, mean, variance *mat.VecDense) (float64, error) {
	const op = "NegativeLogPredictiveDensity"

	n, err := checkPair(op, yTrue, mean)
	if err != nil {
		return 0, err
	}
	if variance.Len() != n {
		return 0, errors.NewDimensionError(op, n, variance.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		v := variance.AtVec(i)
		if v <= 0 {
			return 0, errors.NewValidationError("variance", "must be strictly positive", v)
		}
		diff := yTrue.AtVec(i) - mean.AtVec(i)
		sum += 0.5 * (math.Log(2*math.Pi*v) + diff*diff/v)
	}
	return sum / float64(n), nil
}
