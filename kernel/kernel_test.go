package kernel

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

const tol = 1e-12

func TestRBFKnownValues(t *testing.T) {
	k := NewRBF(2.0, 1.0)

	// At zero distance the kernel returns the variance.
	if got := k.Eval([]float64{1, 2}, []float64{1, 2}); math.Abs(got-2.0) > tol {
		t.Errorf("k(x,x) = %v, want 2.0", got)
	}

	// Unit distance with unit lengthscale: variance * exp(-0.5).
	want := 2.0 * math.Exp(-0.5)
	if got := k.Eval([]float64{0}, []float64{1}); math.Abs(got-want) > tol {
		t.Errorf("k(0,1) = %v, want %v", got, want)
	}
}

func TestKernelSymmetry(t *testing.T) {
	x := []float64{0.3, -1.2, 2.5}
	z := []float64{-0.7, 0.4, 1.1}

	kernels := []Kernel{
		NewRBF(1.5, 0.8),
		NewMatern32(1.0, 2.0),
		NewMatern52(0.5, 1.3),
		NewLinear(1.0, 0.1),
		NewPeriodic(1.0, 1.0, 3.0),
		NewConstant(0.7),
		NewSum(NewRBF(1, 1), NewLinear(0.5, 0)),
		NewProduct(NewRBF(1, 1), NewPeriodic(1, 1, 2)),
	}

	for _, k := range kernels {
		ab := k.Eval(x, z)
		ba := k.Eval(z, x)
		if math.Abs(ab-ba) > tol {
			t.Errorf("%s: k(x,z)=%v but k(z,x)=%v", k.Name(), ab, ba)
		}
	}
}

func TestKernelValidation(t *testing.T) {
	cases := []struct {
		name    string
		k       Kernel
		wantErr bool
	}{
		{"rbf ok", NewRBF(1, 1), false},
		{"rbf zero variance", NewRBF(0, 1), true},
		{"rbf negative lengthscale", NewRBF(1, -2), true},
		{"matern32 zero lengthscale", NewMatern32(1, 0), true},
		{"matern52 ok", NewMatern52(2, 3), false},
		{"linear zero variance", NewLinear(0, 0), true},
		{"periodic zero period", NewPeriodic(1, 1, 0), true},
		{"constant negative", NewConstant(-1), true},
		{"constant zero ok", NewConstant(0), false},
		{"sum with bad part", NewSum(NewRBF(1, 1), NewRBF(-1, 1)), true},
		{"product ok", NewProduct(NewRBF(1, 1), NewConstant(2)), false},
	}

	for _, tc := range cases {
		err := tc.k.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr {
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("%s: expected ValidationError, got %T", tc.name, err)
			}
		}
	}
}

func TestMatern52Value(t *testing.T) {
	k := NewMatern52(1.0, 1.0)
	// At distance 1: (1 + √5 + 5/3) * exp(-√5).
	r := math.Sqrt(5)
	want := (1 + r + 5.0/3.0) * math.Exp(-r)
	if got := k.Eval([]float64{0}, []float64{1}); math.Abs(got-want) > tol {
		t.Errorf("matern52 at distance 1 = %v, want %v", got, want)
	}
}

func TestPeriodicRepeats(t *testing.T) {
	k := NewPeriodic(1.0, 1.0, 2.0)
	// Points a full period apart are perfectly correlated.
	if got := k.Eval([]float64{0}, []float64{2}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("k at one period = %v, want 1.0", got)
	}
}

func TestSumFlattensAndAdds(t *testing.T) {
	a := NewRBF(1, 1)
	b := NewConstant(0.5)
	c := NewLinear(1, 0)

	nested := NewSum(NewSum(a, b), c)
	if len(nested.parts) != 3 {
		t.Errorf("expected 3 flattened parts, got %d", len(nested.parts))
	}

	x := []float64{1.0}
	z := []float64{0.5}
	want := a.Eval(x, z) + b.Eval(x, z) + c.Eval(x, z)
	if got := nested.Eval(x, z); math.Abs(got-want) > tol {
		t.Errorf("sum eval = %v, want %v", got, want)
	}

	params := nested.Params()
	if _, ok := params["0.lengthscale"]; !ok {
		t.Errorf("expected namespaced params, got %v", params)
	}
}

func TestProductMultiplies(t *testing.T) {
	a := NewRBF(2, 1)
	b := NewConstant(3)

	p := NewProduct(a, b)
	x := []float64{0}
	z := []float64{1}
	want := a.Eval(x, z) * 3
	if got := p.Eval(x, z); math.Abs(got-want) > tol {
		t.Errorf("product eval = %v, want %v", got, want)
	}
	if len(NewProduct(p, a).parts) != 3 {
		t.Error("nested product should flatten")
	}
}
