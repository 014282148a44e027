// Package linalg provides the dense Cholesky factorization and triangular
// solves backing Gaussian Process training and prediction.
//
// The factor is stored lower-triangular: for a symmetric positive-definite
// matrix M, Factorize computes L with M = LLᵀ. All downstream quantities
// (log-determinant, whitened residuals, posterior solves, the explicit
// inverse) derive from L through forward and backward substitution; the
// dense inverse of M is never formed unless explicitly requested.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/parallel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Column count above which multi-column solves fan out across goroutines.
const solveParallelThreshold = 16

// Cholesky holds the lower-triangular factor of a symmetric
// positive-definite matrix. The zero value is unfactorized; call Factorize
// before any solve.
type Cholesky struct {
	l *mat.TriDense
	n int
}

// Factorize computes the lower factor L with a = LLᵀ. It fails with a
// NotPositiveDefiniteError naming the offending pivot when a is not
// strictly positive definite; the input is never modified or regularized.
func (c *Cholesky) Factorize(a *mat.SymDense) error {
	n := a.SymmetricDim()
	if n == 0 {
		return errors.NewValueError("Cholesky.Factorize", "empty matrix")
	}

	l := mat.NewTriDense(n, mat.Lower, nil)

	for j := 0; j < n; j++ {
		pivot := a.At(j, j)
		for k := 0; k < j; k++ {
			v := l.At(j, k)
			pivot -= v * v
		}
		// The comparison is written so NaN pivots also fail.
		if !(pivot > 0) {
			c.l = nil
			c.n = 0
			return errors.NewNotPositiveDefiniteError("Cholesky.Factorize", n, j, pivot)
		}
		d := math.Sqrt(pivot)
		l.SetTri(j, j, d)

		for i := j + 1; i < n; i++ {
			s := a.At(i, j)
			for k := 0; k < j; k++ {
				s -= l.At(i, k) * l.At(j, k)
			}
			l.SetTri(i, j, s/d)
		}
	}

	c.l = l
	c.n = n
	return nil
}

// IsFactorized reports whether a factor is available.
func (c *Cholesky) IsFactorized() bool {
	return c.l != nil
}

// Size returns the order of the factorized matrix, 0 if unfactorized.
func (c *Cholesky) Size() int {
	return c.n
}

// LTo copies the lower factor into dst.
func (c *Cholesky) LTo(dst *mat.TriDense) error {
	if c.l == nil {
		return errors.NewValueError("Cholesky.LTo", "matrix not factorized")
	}
	dst.Copy(c.l)
	return nil
}

// SolveLowerVec solves L x = b by forward substitution.
func (c *Cholesky) SolveLowerVec(b *mat.VecDense) (*mat.VecDense, error) {
	if err := c.checkSolve("Cholesky.SolveLowerVec", b.Len()); err != nil {
		return nil, err
	}

	x := mat.NewVecDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		s := b.AtVec(i)
		for k := 0; k < i; k++ {
			s -= c.l.At(i, k) * x.AtVec(k)
		}
		x.SetVec(i, s/c.l.At(i, i))
	}
	return x, nil
}

// SolveUpperVec solves Lᵀ x = b by backward substitution.
func (c *Cholesky) SolveUpperVec(b *mat.VecDense) (*mat.VecDense, error) {
	if err := c.checkSolve("Cholesky.SolveUpperVec", b.Len()); err != nil {
		return nil, err
	}

	x := mat.NewVecDense(c.n, nil)
	for i := c.n - 1; i >= 0; i-- {
		s := b.AtVec(i)
		for k := i + 1; k < c.n; k++ {
			// Lᵀ[i,k] = L[k,i].
			s -= c.l.At(k, i) * x.AtVec(k)
		}
		x.SetVec(i, s/c.l.At(i, i))
	}
	return x, nil
}

// SolveVec solves (LLᵀ) x = b with a forward then a backward substitution.
func (c *Cholesky) SolveVec(b *mat.VecDense) (*mat.VecDense, error) {
	v, err := c.SolveLowerVec(b)
	if err != nil {
		return nil, err
	}
	return c.SolveUpperVec(v)
}

// Solve solves (LLᵀ) X = B column by column, two triangular solves per
// column. Columns are independent and processed in parallel when B is wide.
func (c *Cholesky) Solve(B mat.Matrix) (*mat.Dense, error) {
	r, q := B.Dims()
	if err := c.checkSolve("Cholesky.Solve", r); err != nil {
		return nil, err
	}

	X := mat.NewDense(c.n, q, nil)
	var solveErr error

	parallel.ParallelizeWithThreshold(q, solveParallelThreshold, func(start, end int) {
		col := mat.NewVecDense(c.n, nil)
		for j := start; j < end; j++ {
			for i := 0; i < c.n; i++ {
				col.SetVec(i, B.At(i, j))
			}
			x, err := c.SolveVec(col)
			if err != nil {
				solveErr = err
				return
			}
			for i := 0; i < c.n; i++ {
				X.Set(i, j, x.AtVec(i))
			}
		}
	})

	if solveErr != nil {
		return nil, solveErr
	}
	return X, nil
}

// SolveLower solves L X = B column by column (forward substitution only).
// Posterior covariance uses this to whiten the cross-covariance block.
func (c *Cholesky) SolveLower(B mat.Matrix) (*mat.Dense, error) {
	r, q := B.Dims()
	if err := c.checkSolve("Cholesky.SolveLower", r); err != nil {
		return nil, err
	}

	X := mat.NewDense(c.n, q, nil)
	var solveErr error

	parallel.ParallelizeWithThreshold(q, solveParallelThreshold, func(start, end int) {
		col := mat.NewVecDense(c.n, nil)
		for j := start; j < end; j++ {
			for i := 0; i < c.n; i++ {
				col.SetVec(i, B.At(i, j))
			}
			x, err := c.SolveLowerVec(col)
			if err != nil {
				solveErr = err
				return
			}
			for i := 0; i < c.n; i++ {
				X.Set(i, j, x.AtVec(i))
			}
		}
	})

	if solveErr != nil {
		return nil, solveErr
	}
	return X, nil
}

// LogDet returns log det(LLᵀ) = 2 Σ log L[i,i]. Computing the determinant
// through the factor avoids the overflow a direct determinant hits for
// large matrices.
func (c *Cholesky) LogDet() float64 {
	if c.l == nil {
		return math.NaN()
	}
	var sum float64
	for i := 0; i < c.n; i++ {
		sum += math.Log(c.l.At(i, i))
	}
	return 2 * sum
}

// Inverse computes the explicit dense inverse (LLᵀ)⁻¹ = L⁻ᵀ L⁻¹. It is
// O(n³) and only needed when a caller wants the inverse itself; solves
// should go through SolveVec instead.
func (c *Cholesky) Inverse() (*mat.SymDense, error) {
	if c.l == nil {
		return nil, errors.NewValueError("Cholesky.Inverse", "matrix not factorized")
	}

	// Forward-substitute the identity to get Linv = L⁻¹ (lower triangular).
	linv := mat.NewTriDense(c.n, mat.Lower, nil)
	for j := 0; j < c.n; j++ {
		for i := j; i < c.n; i++ {
			var s float64
			if i == j {
				s = 1
			}
			for k := j; k < i; k++ {
				s -= c.l.At(i, k) * linv.At(k, j)
			}
			linv.SetTri(i, j, s/c.l.At(i, i))
		}
	}

	inv := mat.NewSymDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		for j := i; j < c.n; j++ {
			var s float64
			for k := j; k < c.n; k++ {
				s += linv.At(k, i) * linv.At(k, j)
			}
			inv.SetSym(i, j, s)
		}
	}
	return inv, nil
}

func (c *Cholesky) checkSolve(op string, got int) error {
	if c.l == nil {
		return errors.NewValueError(op, "matrix not factorized")
	}
	if got != c.n {
		return errors.NewDimensionError(op, c.n, got, 0)
	}
	return nil
}
