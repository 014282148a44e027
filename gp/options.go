package gp

import (
	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/pkg/log"
)

// Option configures a GPRegressor at construction or update time.
type Option func(*GPRegressor)

// WithKernel replaces the covariance function. Mostly useful through
// WithParams to refit the same data under new kernel hyperparameters.
func WithKernel(k kernel.Kernel) Option {
	return func(g *GPRegressor) {
		g.kern = k
	}
}

// WithNoiseVariance sets the observation noise variance σ² added to the
// diagonal of the training covariance. Must be non-negative; zero models
// noise-free observations and usually needs well-separated inputs or the
// jitter fallback to stay factorizable.
func WithNoiseVariance(sigma2 float64) Option {
	return func(g *GPRegressor) {
		g.noiseVariance = sigma2
	}
}

// WithJitter enables the opt-in diagonal jitter fallback: when K + σ²I is
// not positive definite, factorization is retried with eps (then eps*10,
// and so on) added to the diagonal. Disabled by default; without it a
// degenerate covariance surfaces as a NotPositiveDefiniteError.
func WithJitter(eps float64) Option {
	return func(g *GPRegressor) {
		g.jitter = eps
	}
}

// WithNormalizeY standardizes the targets to zero mean and unit variance
// before fitting, and folds the transform back into predictions. This
// aligns the data with the zero-mean prior when targets have a large
// offset.
func WithNormalizeY(normalize bool) Option {
	return func(g *GPRegressor) {
		g.normalizeY = normalize
	}
}

// WithLogger sets the structured logger used by the model.
func WithLogger(logger log.Logger) Option {
	return func(g *GPRegressor) {
		g.logger = logger
	}
}
