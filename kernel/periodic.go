package kernel

import (
	"math"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

var _ Kernel = (*Periodic)(nil)

// Periodic is the exp-sine-squared kernel:
//
//	k(x, z) = variance * exp(-2 sin²(π r / period) / lengthscale²)
//
// where r is the Euclidean distance between x and z. Function values one
// period apart are perfectly correlated.
type Periodic struct {
	Variance    float64
	Lengthscale float64
	Period      float64
}

// NewPeriodic creates a Periodic kernel.
func NewPeriodic(variance, lengthscale, period float64) *Periodic {
	return &Periodic{Variance: variance, Lengthscale: lengthscale, Period: period}
}

// Eval implements Kernel.Eval.
func (k *Periodic) Eval(x, z []float64) float64 {
	r := math.Sqrt(sqDist(x, z))
	s := math.Sin(math.Pi * r / k.Period)
	return k.Variance * math.Exp(-2*s*s/(k.Lengthscale*k.Lengthscale))
}

// Name implements Kernel.Name.
func (k *Periodic) Name() string { return "Periodic" }

// Params implements Kernel.Params.
func (k *Periodic) Params() map[string]float64 {
	return map[string]float64{
		"variance":    k.Variance,
		"lengthscale": k.Lengthscale,
		"period":      k.Period,
	}
}

// Validate implements Kernel.Validate.
func (k *Periodic) Validate() error {
	if k.Variance <= 0 {
		return errors.NewValidationError("variance", "must be positive", k.Variance)
	}
	if k.Lengthscale <= 0 {
		return errors.NewValidationError("lengthscale", "must be positive", k.Lengthscale)
	}
	if k.Period <= 0 {
		return errors.NewValidationError("period", "must be positive", k.Period)
	}
	return nil
}
