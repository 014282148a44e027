package kernel

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

func randomInputs(rng *rand.Rand, n, d int) *mat.Dense {
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(n, d, data)
}

func TestGramExactSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// n=100 exercises the parallel fill path (threshold is 64).
	X := randomInputs(rng, 100, 3)
	k := NewRBF(1.0, 0.7)

	gram, err := Gram(X, k)
	if err != nil {
		t.Fatalf("Gram failed: %v", err)
	}

	n, _ := gram.Dims()
	if n != 100 {
		t.Fatalf("expected 100x100, got %dx%d", n, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if gram.At(i, j) != gram.At(j, i) {
				t.Fatalf("asymmetry at (%d,%d): %v vs %v", i, j, gram.At(i, j), gram.At(j, i))
			}
		}
	}
}

func TestGramMatchesDirectEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	X := randomInputs(rng, 80, 2)
	k := NewMatern52(1.5, 1.2)

	gram, err := Gram(X, k)
	if err != nil {
		t.Fatalf("Gram failed: %v", err)
	}

	for i := 0; i < 80; i++ {
		xi := mat.Row(nil, i, X)
		for j := 0; j < 80; j++ {
			xj := mat.Row(nil, j, X)
			want := k.Eval(xi, xj)
			if math.Abs(gram.At(i, j)-want) > 1e-12 {
				t.Fatalf("entry (%d,%d) = %v, want %v", i, j, gram.At(i, j), want)
			}
		}
	}
}

// emptyMatrix is a zero-row mat.Matrix; gonum cannot construct one directly.
type emptyMatrix struct{}

func (emptyMatrix) Dims() (int, int)    { return 0, 1 }
func (emptyMatrix) At(i, j int) float64 { panic("empty matrix has no elements") }
func (m emptyMatrix) T() mat.Matrix     { return mat.Transpose{Matrix: m} }

func TestGramEmptyInput(t *testing.T) {
	if _, err := Gram(emptyMatrix{}, NewRBF(1, 1)); err == nil {
		t.Error("expected error for empty input set")
	}
}

func TestCrossDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	X := randomInputs(rng, 5, 2)
	Z := randomInputs(rng, 7, 2)
	k := NewRBF(1, 1)

	cross, err := Cross(X, Z, k)
	if err != nil {
		t.Fatalf("Cross failed: %v", err)
	}
	p, q := cross.Dims()
	if p != 5 || q != 7 {
		t.Errorf("expected 5x7, got %dx%d", p, q)
	}

	xi := mat.Row(nil, 2, X)
	zj := mat.Row(nil, 4, Z)
	if math.Abs(cross.At(2, 4)-k.Eval(xi, zj)) > 1e-12 {
		t.Error("cross entry does not match direct evaluation")
	}
}

func TestCrossDimensionMismatch(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	Z := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})

	_, err := Cross(X, Z, NewRBF(1, 1))
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError, got %T", err)
	}
}

func TestDiagonal(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	k := NewRBF(2.5, 1)

	diag := Diagonal(X, k)
	if len(diag) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(diag))
	}
	for i, v := range diag {
		if math.Abs(v-2.5) > 1e-12 {
			t.Errorf("diag[%d] = %v, want 2.5", i, v)
		}
	}
}
