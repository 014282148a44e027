package linalg

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// randomSPD builds a random symmetric positive-definite matrix as AᵀA + I.
func randomSPD(rng *rand.Rand, n int) *mat.SymDense {
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}
	var ata mat.Dense
	ata.Mul(a.T(), a)

	spd := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := ata.At(i, j)
			if i == j {
				v += 1
			}
			spd.SetSym(i, j, v)
		}
	}
	return spd
}

func TestFactorReconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 5, 20} {
		m := randomSPD(rng, n)

		var chol Cholesky
		if err := chol.Factorize(m); err != nil {
			t.Fatalf("n=%d: factorization failed: %v", n, err)
		}

		l := mat.NewTriDense(n, mat.Lower, nil)
		if err := chol.LTo(l); err != nil {
			t.Fatalf("LTo failed: %v", err)
		}

		var llt mat.Dense
		llt.Mul(l, l.T())
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if math.Abs(llt.At(i, j)-m.At(i, j)) > 1e-9 {
					t.Fatalf("n=%d: LLᵀ(%d,%d) = %v, want %v", n, i, j, llt.At(i, j), m.At(i, j))
				}
			}
		}
	}
}

func TestFactorizeNotPositiveDefinite(t *testing.T) {
	// Indefinite: eigenvalues 3 and -1.
	m := mat.NewSymDense(2, []float64{1, 2, 2, 1})

	var chol Cholesky
	err := chol.Factorize(m)
	if err == nil {
		t.Fatal("expected factorization to fail")
	}

	var pde *errors.NotPositiveDefiniteError
	if !errors.As(err, &pde) {
		t.Fatalf("expected NotPositiveDefiniteError, got %T: %v", err, err)
	}
	if pde.Size != 2 {
		t.Errorf("expected size 2, got %d", pde.Size)
	}
	if pde.Pivot != 1 {
		t.Errorf("expected failure at pivot 1, got %d", pde.Pivot)
	}
	if chol.IsFactorized() {
		t.Error("failed factorization must not leave a factor behind")
	}
}

func TestSolveVec(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := 10
	m := randomSPD(rng, n)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, rng.NormFloat64())
	}

	var chol Cholesky
	if err := chol.Factorize(m); err != nil {
		t.Fatalf("factorization failed: %v", err)
	}

	x, err := chol.SolveVec(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	var mx mat.VecDense
	mx.MulVec(m, x)
	for i := 0; i < n; i++ {
		if math.Abs(mx.AtVec(i)-b.AtVec(i)) > 1e-8 {
			t.Fatalf("residual at %d: Mx=%v b=%v", i, mx.AtVec(i), b.AtVec(i))
		}
	}
}

func TestTriangularSolveOrientations(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 6
	m := randomSPD(rng, n)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, rng.NormFloat64())
	}

	var chol Cholesky
	if err := chol.Factorize(m); err != nil {
		t.Fatalf("factorization failed: %v", err)
	}
	l := mat.NewTriDense(n, mat.Lower, nil)
	_ = chol.LTo(l)

	v, err := chol.SolveLowerVec(b)
	if err != nil {
		t.Fatalf("lower solve failed: %v", err)
	}
	var lv mat.VecDense
	lv.MulVec(l, v)
	for i := 0; i < n; i++ {
		if math.Abs(lv.AtVec(i)-b.AtVec(i)) > 1e-10 {
			t.Fatalf("L v != b at %d", i)
		}
	}

	u, err := chol.SolveUpperVec(b)
	if err != nil {
		t.Fatalf("upper solve failed: %v", err)
	}
	var ltu mat.VecDense
	ltu.MulVec(l.T(), u)
	for i := 0; i < n; i++ {
		if math.Abs(ltu.AtVec(i)-b.AtVec(i)) > 1e-10 {
			t.Fatalf("Lᵀ u != b at %d", i)
		}
	}
}

func TestLogDetMatchesDirectDeterminant(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{1, 2, 3, 5} {
		m := randomSPD(rng, n)

		var chol Cholesky
		if err := chol.Factorize(m); err != nil {
			t.Fatalf("factorization failed: %v", err)
		}

		want := math.Log(mat.Det(m))
		got := chol.LogDet()
		if math.Abs(got-want) > 1e-8 {
			t.Errorf("n=%d: logdet=%v, direct=%v", n, got, want)
		}
	}
}

func TestSolveMultiColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n, q := 12, 40 // q above the parallel threshold
	m := randomSPD(rng, n)
	B := mat.NewDense(n, q, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < q; j++ {
			B.Set(i, j, rng.NormFloat64())
		}
	}

	var chol Cholesky
	if err := chol.Factorize(m); err != nil {
		t.Fatalf("factorization failed: %v", err)
	}

	X, err := chol.Solve(B)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	var mx mat.Dense
	mx.Mul(m, X)
	for i := 0; i < n; i++ {
		for j := 0; j < q; j++ {
			if math.Abs(mx.At(i, j)-B.At(i, j)) > 1e-8 {
				t.Fatalf("residual at (%d,%d)", i, j)
			}
		}
	}
}

func TestInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	n := 7
	m := randomSPD(rng, n)

	var chol Cholesky
	if err := chol.Factorize(m); err != nil {
		t.Fatalf("factorization failed: %v", err)
	}

	inv, err := chol.Inverse()
	if err != nil {
		t.Fatalf("inverse failed: %v", err)
	}

	var prod mat.Dense
	prod.Mul(m, inv)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod.At(i, j)-want) > 1e-8 {
				t.Fatalf("M·M⁻¹ differs from identity at (%d,%d): %v", i, j, prod.At(i, j))
			}
		}
	}
}

func TestSolveBeforeFactorize(t *testing.T) {
	var chol Cholesky
	b := mat.NewVecDense(3, nil)
	if _, err := chol.SolveVec(b); err == nil {
		t.Error("expected error for solve before factorization")
	}
}

func TestFactorizeWithJitter(t *testing.T) {
	// Duplicate rows make the Gram matrix singular; plain factorization
	// must fail, the jitter path must recover.
	m := mat.NewSymDense(2, []float64{1, 1, 1, 1})

	var plain Cholesky
	if err := plain.Factorize(m); err == nil {
		t.Fatal("expected singular matrix to fail factorization")
	}

	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(func(error) {})

	var chol Cholesky
	applied, err := FactorizeWithJitter(&chol, m, 1e-10, 10)
	if err != nil {
		t.Fatalf("jittered factorization failed: %v", err)
	}
	if applied <= 0 {
		t.Errorf("expected positive applied jitter, got %v", applied)
	}
	if !chol.IsFactorized() {
		t.Error("factor should be available")
	}

	var jw *errors.JitterAppliedWarning
	if captured == nil || !errors.As(captured, &jw) {
		t.Errorf("expected JitterAppliedWarning, got %v", captured)
	}

	// Input must be untouched.
	if m.At(0, 0) != 1 || m.At(1, 1) != 1 {
		t.Error("input matrix was modified")
	}
}

func TestFactorizeWithJitterNoOpOnSPD(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := randomSPD(rng, 4)

	var chol Cholesky
	applied, err := FactorizeWithJitter(&chol, m, 1e-10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 0 {
		t.Errorf("no jitter should be applied to an SPD matrix, got %v", applied)
	}
}
