package kernel

import (
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

var _ Kernel = (*Linear)(nil)

// Linear is the dot-product kernel:
//
//	k(x, z) = variance * ⟨x, z⟩ + bias
//
// A GP with this kernel is Bayesian linear regression.
type Linear struct {
	Variance float64
	Bias     float64
}

// NewLinear creates a Linear kernel.
func NewLinear(variance, bias float64) *Linear {
	return &Linear{Variance: variance, Bias: bias}
}

// Eval implements Kernel.Eval.
func (k *Linear) Eval(x, z []float64) float64 {
	var dot float64
	for i := range x {
		dot += x[i] * z[i]
	}
	return k.Variance*dot + k.Bias
}

// Name implements Kernel.Name.
func (k *Linear) Name() string { return "Linear" }

// Params implements Kernel.Params.
func (k *Linear) Params() map[string]float64 {
	return map[string]float64{
		"variance": k.Variance,
		"bias":     k.Bias,
	}
}

// Validate implements Kernel.Validate.
func (k *Linear) Validate() error {
	if k.Variance <= 0 {
		return errors.NewValidationError("variance", "must be positive", k.Variance)
	}
	if k.Bias < 0 {
		return errors.NewValidationError("bias", "must be non-negative", k.Bias)
	}
	return nil
}
