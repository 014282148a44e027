package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// FactorizeWithJitter factorizes a, and when a is not positive definite
// retries with an increasing diagonal jitter: jitter, then jitter*10, and
// so on for up to maxAttempts retries. This is the opt-in stabilization for
// near-singular covariance matrices; callers that did not ask for it get
// the plain Factorize failure instead.
//
// On success after at least one retry a JitterAppliedWarning is emitted and
// the jitter that was actually applied is returned. The input matrix is
// never modified.
func FactorizeWithJitter(c *Cholesky, a *mat.SymDense, jitter float64, maxAttempts int) (float64, error) {
	const op = "linalg.FactorizeWithJitter"

	if jitter <= 0 {
		return 0, errors.NewValidationError("jitter", "must be positive", jitter)
	}
	if maxAttempts < 1 {
		return 0, errors.NewValidationError("maxAttempts", "must be at least 1", maxAttempts)
	}

	err := c.Factorize(a)
	if err == nil {
		return 0, nil
	}
	var pde *errors.NotPositiveDefiniteError
	if !errors.As(err, &pde) {
		return 0, err
	}

	n := a.SymmetricDim()
	jittered := mat.NewSymDense(n, nil)
	eps := jitter
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		jittered.CopySym(a)
		for i := 0; i < n; i++ {
			jittered.SetSym(i, i, a.At(i, i)+eps)
		}

		if err = c.Factorize(jittered); err == nil {
			errors.Warn(errors.NewJitterAppliedWarning(op, eps, attempt))
			return eps, nil
		}
		if !errors.As(err, &pde) {
			return 0, err
		}
		eps *= 10
	}

	return 0, errors.Wrapf(err, "%s: still not positive definite after %d attempts (max jitter %.3g)",
		op, maxAttempts, eps/10)
}
