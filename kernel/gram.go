package kernel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/parallel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Row count below which matrix fills run sequentially; the goroutine
// fan-out costs more than the kernel evaluations for small matrices.
const parallelThreshold = 64

// Gram builds the n×n kernel matrix over one input set, entry (i, j) being
// k(X[i], X[j]). Only the upper triangle is evaluated; the result is
// symmetric by construction. Entries are independent, so rows are filled in
// parallel for large n.
func Gram(X mat.Matrix, k Kernel) (*mat.SymDense, error) {
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.NewValueError("kernel.Gram", "empty input set")
	}

	rows := extractRows(X)
	gram := mat.NewSymDense(n, nil)

	parallel.ParallelizeSymWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i; j < n; j++ {
				gram.SetSym(i, j, k.Eval(rows[i], rows[j]))
			}
		}
	})

	return gram, nil
}

// Cross builds the p×q cross-covariance matrix between two input sets,
// entry (i, j) being k(X[i], Z[j]). The sets must share dimensionality.
// Unlike Gram the result is not symmetric in general.
func Cross(X, Z mat.Matrix, k Kernel) (*mat.Dense, error) {
	p, dx := X.Dims()
	q, dz := Z.Dims()
	if p == 0 || q == 0 {
		return nil, errors.NewValueError("kernel.Cross", "empty input set")
	}
	if dx != dz {
		return nil, errors.NewDimensionError("kernel.Cross", dx, dz, 1)
	}

	xRows := extractRows(X)
	zRows := extractRows(Z)
	cross := mat.NewDense(p, q, nil)

	parallel.ParallelizeWithThreshold(p, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < q; j++ {
				cross.Set(i, j, k.Eval(xRows[i], zRows[j]))
			}
		}
	})

	return cross, nil
}

// Diagonal evaluates k(X[i], X[i]) for each row, the prior variances. This
// is the O(n) path prediction uses when only marginals are needed.
func Diagonal(X mat.Matrix, k Kernel) []float64 {
	n, _ := X.Dims()
	diag := make([]float64, n)
	rows := extractRows(X)
	for i := 0; i < n; i++ {
		diag[i] = k.Eval(rows[i], rows[i])
	}
	return diag
}

// extractRows copies the rows of m into slices once, so the fill loops
// avoid repeated At calls on an interface value.
func extractRows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	backing := make([]float64, r*c)
	for i := 0; i < r; i++ {
		row := backing[i*c : (i+1)*c]
		for j := 0; j < c; j++ {
			row[j] = m.At(i, j)
		}
		rows[i] = row
	}
	return rows
}
