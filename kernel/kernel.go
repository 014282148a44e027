// Package kernel provides covariance functions for Gaussian Process models
// and the builders that evaluate them pairwise into dense matrices.
//
// A Kernel maps two input vectors to a prior covariance value. Kernels are
// symmetric (Eval(a, b) == Eval(b, a)) and carry their own parameters;
// anything satisfying the interface plugs into the matrix builders and the
// GP model without changes elsewhere.
package kernel

// Kernel is a covariance function over pairs of input vectors.
type Kernel interface {
	// Eval returns the covariance between x and z. Both slices must have
	// the same length; the matrix builders guarantee this.
	Eval(x, z []float64) float64

	// Name identifies the kernel in logs and error messages.
	Name() string

	// Params returns the kernel's named parameters.
	Params() map[string]float64

	// Validate checks the parameters and returns a ValidationError when a
	// constraint is violated. Models call this at construction so a bad
	// configuration is rejected before any computation.
	Validate() error
}

// sqDist returns the squared Euclidean distance between x and z.
func sqDist(x, z []float64) float64 {
	var sum float64
	for i := range x {
		d := x[i] - z[i]
		sum += d * d
	}
	return sum
}
