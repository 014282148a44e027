// Package gpgo provides Gaussian Process regression for Go, designed for
// backend services that need calibrated predictive uncertainty rather than
// point estimates alone.
//
// The library trains a GP on observed input/output pairs and answers
// queries with a full posterior: a predictive mean plus a standard
// deviation or covariance at every test input. Training reduces to one
// Cholesky factorization of the kernel matrix; everything downstream (log
// marginal likelihood, posterior means, covariances, sampling) reuses the
// cached factor through triangular solves.
//
// # Installation
//
// Install gpgo using go get:
//
//	go get github.com/YuminosukeSato/gpgo
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gpgo/gp"
//	    "github.com/YuminosukeSato/gpgo/kernel"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(3, 1, []float64{0, 1, 2})
//	    y := mat.NewDense(3, 1, []float64{0, 1, 0})
//
//	    model, err := gp.New(
//	        &kernel.RBF{Variance: 1, Lengthscale: 1},
//	        gp.WithNoiseVariance(0.01),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    Xs := mat.NewDense(1, 1, []float64{1.5})
//	    mean, std, err := model.PredictWithStd(Xs)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("f(1.5) = %.3f ± %.3f\n", mean.AtVec(0), std.AtVec(0))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - gp: the GPRegressor model (fit, likelihood, posterior prediction, sampling)
//   - kernel: covariance functions (RBF, Matérn, Periodic, Linear, Constant, Sum, Product)
//   - linalg: Cholesky factorization and triangular solves
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R², negative log predictive density)
//   - preprocessing: data standardization
//   - core/model: core interfaces and base types
//   - core/parallel: parallel processing utilities
//
// # Numerical Behavior
//
// A kernel matrix that is not positive definite fails loudly with the
// offending pivot instead of being silently regularized. Stabilization is
// opt-in through gp.WithJitter, and every applied jitter is reported
// through the pkg/errors warning system.
//
// # License
//
// gpgo is released under the MIT License.
package gpgo
