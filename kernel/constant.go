package kernel

import (
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

var _ Kernel = (*Constant)(nil)

// Constant returns the same covariance for every pair of inputs. On its own
// it models a constant offset; combined with Sum or Product it shifts or
// scales another kernel.
type Constant struct {
	Variance float64
}

// NewConstant creates a Constant kernel.
func NewConstant(variance float64) *Constant {
	return &Constant{Variance: variance}
}

// Eval implements Kernel.Eval.
func (k *Constant) Eval(x, z []float64) float64 {
	return k.Variance
}

// Name implements Kernel.Name.
func (k *Constant) Name() string { return "Constant" }

// Params implements Kernel.Params.
func (k *Constant) Params() map[string]float64 {
	return map[string]float64{"variance": k.Variance}
}

// Validate implements Kernel.Validate.
func (k *Constant) Validate() error {
	if k.Variance < 0 {
		return errors.NewValidationError("variance", "must be non-negative", k.Variance)
	}
	return nil
}
