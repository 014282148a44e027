package gp

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Diagonal bump applied when the posterior covariance is only positive
// semi-definite, which happens whenever a test input coincides with a
// training input.
const sampleJitter = 1e-10

// SampleY draws nSamples joint function values from the posterior at the
// test inputs, returned as an m×nSamples matrix with one draw per column.
// Pass a nil src for an unseeded source.
func (g *GPRegressor) SampleY(X mat.Matrix, nSamples int, src rand.Source) (*mat.Dense, error) {
	const op = "GPRegressor.SampleY"

	if nSamples <= 0 {
		return nil, errors.NewValidationError("nSamples", "must be positive", nSamples)
	}

	mean, cov, err := g.PredictWithCov(X)
	if err != nil {
		return nil, err
	}
	m := mean.Len()
	if m == 0 {
		return &mat.Dense{}, nil
	}

	mu := make([]float64, m)
	for i := 0; i < m; i++ {
		mu[i] = mean.AtVec(i)
	}

	normal, ok := distmv.NewNormal(mu, cov, src)
	if !ok {
		// The posterior covariance degenerates at training inputs. Retry
		// once with a small diagonal bump; the draw changes by at most
		// O(√sampleJitter) per coordinate.
		bumped := mat.NewSymDense(m, nil)
		bumped.CopySym(cov)
		for i := 0; i < m; i++ {
			bumped.SetSym(i, i, cov.At(i, i)+sampleJitter)
		}
		normal, ok = distmv.NewNormal(mu, bumped, src)
		if !ok {
			return nil, errors.NewModelError(op, "posterior covariance is not positive semi-definite", nil)
		}
	}

	samples := mat.NewDense(m, nSamples, nil)
	for s := 0; s < nSamples; s++ {
		draw := normal.Rand(nil)
		for i := 0; i < m; i++ {
			samples.Set(i, s, draw[i])
		}
	}
	return samples, nil
}
