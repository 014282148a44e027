package kernel

import (
	"math"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

var _ Kernel = (*RBF)(nil)

// RBF is the exponentiated quadratic (squared-exponential) kernel:
//
//	k(x, z) = variance * exp(-0.5 * ||x-z||² / lengthscale²)
//
// The lengthscale controls how quickly correlation decays with distance;
// the variance sets the prior amplitude.
type RBF struct {
	Variance    float64
	Lengthscale float64
}

// NewRBF creates an RBF kernel with the given variance and lengthscale.
func NewRBF(variance, lengthscale float64) *RBF {
	return &RBF{Variance: variance, Lengthscale: lengthscale}
}

// Eval implements Kernel.Eval.
func (k *RBF) Eval(x, z []float64) float64 {
	return k.Variance * math.Exp(-0.5*sqDist(x, z)/(k.Lengthscale*k.Lengthscale))
}

// Name implements Kernel.Name.
func (k *RBF) Name() string { return "RBF" }

// Params implements Kernel.Params.
func (k *RBF) Params() map[string]float64 {
	return map[string]float64{
		"variance":    k.Variance,
		"lengthscale": k.Lengthscale,
	}
}

// Validate implements Kernel.Validate.
func (k *RBF) Validate() error {
	if k.Variance <= 0 {
		return errors.NewValidationError("variance", "must be positive", k.Variance)
	}
	if k.Lengthscale <= 0 {
		return errors.NewValidationError("lengthscale", "must be positive", k.Lengthscale)
	}
	return nil
}
