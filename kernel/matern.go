package kernel

import (
	"math"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

var (
	_ Kernel = (*Matern32)(nil)
	_ Kernel = (*Matern52)(nil)
)

// Matern32 is the Matérn kernel with smoothness ν = 3/2:
//
//	k(x, z) = variance * (1 + √3 r/ℓ) * exp(-√3 r/ℓ)
//
// Sample paths are once differentiable, making it a common choice when the
// RBF kernel is too smooth.
type Matern32 struct {
	Variance    float64
	Lengthscale float64
}

// NewMatern32 creates a Matérn 3/2 kernel.
func NewMatern32(variance, lengthscale float64) *Matern32 {
	return &Matern32{Variance: variance, Lengthscale: lengthscale}
}

// Eval implements Kernel.Eval.
func (k *Matern32) Eval(x, z []float64) float64 {
	r := math.Sqrt(3*sqDist(x, z)) / k.Lengthscale
	return k.Variance * (1 + r) * math.Exp(-r)
}

// Name implements Kernel.Name.
func (k *Matern32) Name() string { return "Matern32" }

// Params implements Kernel.Params.
func (k *Matern32) Params() map[string]float64 {
	return map[string]float64{
		"variance":    k.Variance,
		"lengthscale": k.Lengthscale,
	}
}

// Validate implements Kernel.Validate.
func (k *Matern32) Validate() error {
	if k.Variance <= 0 {
		return errors.NewValidationError("variance", "must be positive", k.Variance)
	}
	if k.Lengthscale <= 0 {
		return errors.NewValidationError("lengthscale", "must be positive", k.Lengthscale)
	}
	return nil
}

// Matern52 is the Matérn kernel with smoothness ν = 5/2:
//
//	k(x, z) = variance * (1 + √5 r/ℓ + 5r²/3ℓ²) * exp(-√5 r/ℓ)
type Matern52 struct {
	Variance    float64
	Lengthscale float64
}

// NewMatern52 creates a Matérn 5/2 kernel.
func NewMatern52(variance, lengthscale float64) *Matern52 {
	return &Matern52{Variance: variance, Lengthscale: lengthscale}
}

// Eval implements Kernel.Eval.
func (k *Matern52) Eval(x, z []float64) float64 {
	d2 := sqDist(x, z)
	r := math.Sqrt(5*d2) / k.Lengthscale
	poly := 1 + r + 5*d2/(3*k.Lengthscale*k.Lengthscale)
	return k.Variance * poly * math.Exp(-r)
}

// Name implements Kernel.Name.
func (k *Matern52) Name() string { return "Matern52" }

// Params implements Kernel.Params.
func (k *Matern52) Params() map[string]float64 {
	return map[string]float64{
		"variance":    k.Variance,
		"lengthscale": k.Lengthscale,
	}
}

// Validate implements Kernel.Validate.
func (k *Matern52) Validate() error {
	if k.Variance <= 0 {
		return errors.NewValidationError("variance", "must be positive", k.Variance)
	}
	if k.Lengthscale <= 0 {
		return errors.NewValidationError("lengthscale", "must be positive", k.Lengthscale)
	}
	return nil
}
