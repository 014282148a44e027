// Package gp implements Gaussian Process regression with a zero-mean prior
// and homoscedastic Gaussian observation noise.
//
// A fitted GPRegressor caches the Cholesky factor of K + σ²I together with
// the whitened residual, so the log marginal likelihood is an O(1) read and
// posterior prediction costs two triangular solves per test column. The
// cache is an immutable snapshot: concurrent readers are safe against a
// refit, and a failed refit leaves the previous snapshot readable.
package gp

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/model"
	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/linalg"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
	"github.com/YuminosukeSato/gpgo/pkg/log"
	"github.com/YuminosukeSato/gpgo/preprocessing"
)

// Retry budget for the opt-in jitter fallback.
const jitterMaxAttempts = 10

var (
	_ model.Fitter             = (*GPRegressor)(nil)
	_ model.PosteriorPredictor = (*GPRegressor)(nil)
	_ model.Scorer             = (*GPRegressor)(nil)
)

// posterior is the derived state of a fitted model. It is built off to the
// side and installed with a single pointer swap, so it is immutable once
// visible to readers.
type posterior struct {
	chol    *linalg.Cholesky
	alpha   *mat.VecDense // (K+σ²I)⁻¹ y, via two triangular solves
	logDet  float64
	dataFit float64 // yᵀ(K+σ²I)⁻¹y = ‖L⁻¹y‖²
	n       int

	appliedJitter float64

	// Target normalization constants; 0 and 1 when normalization is off.
	yMean float64
	yStd  float64
}

// GPRegressor is a Gaussian Process regression model.
type GPRegressor struct {
	model.BaseEstimator

	kern          kernel.Kernel
	noiseVariance float64
	jitter        float64
	normalizeY    bool
	logger        log.Logger

	mu        sync.RWMutex
	xTrain    *mat.Dense
	yTrain    *mat.VecDense
	nFeatures int
	post      *posterior
}

// New creates a GPRegressor with the given kernel. Kernel parameters and
// the noise variance are validated here, before any computation.
func New(k kernel.Kernel, opts ...Option) (*GPRegressor, error) {
	g := &GPRegressor{
		kern:   k,
		logger: log.GetLoggerWithName("gp.regressor"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GPRegressor) validate() error {
	if g.kern == nil {
		return errors.NewValidationError("kernel", "must not be nil", nil)
	}
	if err := g.kern.Validate(); err != nil {
		return err
	}
	if g.noiseVariance < 0 {
		return errors.NewValidationError("noise_variance", "must be non-negative", g.noiseVariance)
	}
	if g.jitter < 0 {
		return errors.NewValidationError("jitter", "must be non-negative", g.jitter)
	}
	return nil
}

// Kernel returns the model's covariance function.
func (g *GPRegressor) Kernel() kernel.Kernel { return g.kern }

// NoiseVariance returns the observation noise variance σ².
func (g *GPRegressor) NoiseVariance() float64 { return g.noiseVariance }

// Fit binds training data to the model: it builds the training covariance
// K, forms K + σ²I, factorizes it and caches the factor, the whitened
// residual and the log-determinant. On failure the model's previous fitted
// state, if any, is retained untouched.
func (g *GPRegressor) Fit(X, y mat.Matrix) error {
	const op = "GPRegressor.Fit"

	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	xTrain := mat.DenseCopyOf(X)
	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	// Targets used for the solve; normalized when requested so they match
	// the zero-mean prior.
	yFit := yVec
	yMean, yStd := 0.0, 1.0
	if g.normalizeY {
		scaler := preprocessing.NewStandardScaler(true, true)
		normalized, err := scaler.FitTransform(y)
		if err != nil {
			return errors.Wrap(err, op)
		}
		yMean, yStd = scaler.Mean[0], scaler.Scale[0]
		yFit = mat.NewVecDense(r, nil)
		for i := 0; i < r; i++ {
			yFit.SetVec(i, normalized.At(i, 0))
		}
	}

	post, err := g.computePosterior(xTrain, yFit, yMean, yStd)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.xTrain = xTrain
	g.yTrain = yVec
	g.nFeatures = c
	g.post = post
	g.SetFitted()
	g.mu.Unlock()

	g.logger.Debug("model fitted",
		log.OperationKey, "fit",
		log.ModelNameKey, "GPRegressor",
		log.TrainPointsKey, r,
		log.FeaturesKey, c,
		log.KernelKey, g.kern.Name(),
		log.NoiseVarianceKey, g.noiseVariance,
		log.JitterKey, post.appliedJitter,
		log.LogDetKey, post.logDet,
	)
	return nil
}

// computePosterior builds the derived state for the given training data
// without touching the model, so a failure cannot corrupt a valid cache.
func (g *GPRegressor) computePosterior(X *mat.Dense, y *mat.VecDense, yMean, yStd float64) (*posterior, error) {
	const op = "GPRegressor.Fit"

	gram, err := kernel.Gram(X, g.kern)
	if err != nil {
		return nil, err
	}

	n := y.Len()
	for i := 0; i < n; i++ {
		gram.SetSym(i, i, gram.At(i, i)+g.noiseVariance)
	}

	chol := &linalg.Cholesky{}
	var applied float64
	if g.jitter > 0 {
		applied, err = linalg.FactorizeWithJitter(chol, gram, g.jitter, jitterMaxAttempts)
	} else {
		err = chol.Factorize(gram)
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	// Whitening uses one consistent triangular orientation: v = L⁻¹y,
	// α = L⁻ᵀv, and the data-fit term is ‖v‖².
	white, err := chol.SolveLowerVec(y)
	if err != nil {
		return nil, err
	}
	alpha, err := chol.SolveUpperVec(white)
	if err != nil {
		return nil, err
	}

	logDet := chol.LogDet()
	dataFit := mat.Dot(white, white)
	if err := errors.CheckScalar("log_determinant", logDet); err != nil {
		return nil, err
	}
	if err := errors.CheckScalar("data_fit", dataFit); err != nil {
		return nil, err
	}

	return &posterior{
		chol:          chol,
		alpha:         alpha,
		logDet:        logDet,
		dataFit:       dataFit,
		n:             n,
		appliedJitter: applied,
		yMean:         yMean,
		yStd:          yStd,
	}, nil
}

// snapshot returns the current fitted state, or a NotFittedError when the
// model has none. Readers compute from the returned snapshot only, so a
// concurrent refit cannot interleave with them.
func (g *GPRegressor) snapshot(method string) (*posterior, *mat.Dense, int, error) {
	g.mu.RLock()
	post, xTrain, nFeatures := g.post, g.xTrain, g.nFeatures
	g.mu.RUnlock()
	if post == nil {
		return nil, nil, 0, errors.NewNotFittedError("GPRegressor", method)
	}
	return post, xTrain, nFeatures, nil
}

// LogMarginalLikelihood returns the log marginal likelihood of the
// training observations,
//
//	-0.5 * (n log 2π + log det(K+σ²I) + yᵀ(K+σ²I)⁻¹y)
//
// as an O(1) read of cached state. When the model normalizes targets the
// value refers to the normalized observations.
func (g *GPRegressor) LogMarginalLikelihood() (float64, error) {
	post, _, _, err := g.snapshot("LogMarginalLikelihood")
	if err != nil {
		return 0, err
	}
	n := float64(post.n)
	return -0.5 * (n*math.Log(2*math.Pi) + post.logDet + post.dataFit), nil
}

// WithParams returns a new model with updated configuration, refitted on
// this model's training data when it has any. The receiver is left
// untouched, so readers of the old model never observe a partial update;
// this is the immutable-snapshot form of a parameter update.
func (g *GPRegressor) WithParams(opts ...Option) (*GPRegressor, error) {
	g.mu.RLock()
	clone := &GPRegressor{
		kern:          g.kern,
		noiseVariance: g.noiseVariance,
		jitter:        g.jitter,
		normalizeY:    g.normalizeY,
		logger:        g.logger,
	}
	xTrain, yTrain := g.xTrain, g.yTrain
	g.mu.RUnlock()

	for _, opt := range opts {
		opt(clone)
	}
	if err := clone.validate(); err != nil {
		return nil, err
	}

	if xTrain != nil {
		if err := clone.Fit(xTrain, yTrain); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
