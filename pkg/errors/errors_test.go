package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("GPRegressor", "Predict")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.ModelName != "GPRegressor" || nfe.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Gram", 3, 5, 1)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatalf("expected DimensionError, got %T", err)
	}
	if de.Expected != 3 || de.Got != 5 {
		t.Errorf("unexpected fields: %+v", de)
	}
	if !strings.Contains(err.Error(), "features") {
		t.Errorf("axis 1 should report features: %s", err.Error())
	}
}

func TestNotPositiveDefiniteError(t *testing.T) {
	err := NewNotPositiveDefiniteError("Cholesky.Factorize", 4, 2, -1e-9)

	var pde *NotPositiveDefiniteError
	if !As(err, &pde) {
		t.Fatalf("expected NotPositiveDefiniteError, got %T", err)
	}
	if pde.Size != 4 || pde.Pivot != 2 {
		t.Errorf("unexpected fields: %+v", pde)
	}
	if !strings.Contains(err.Error(), "positive definite") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("lengthscale", "must be positive", -1.0)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.ParamName != "lengthscale" {
		t.Errorf("unexpected fields: %+v", ve)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewNegativeVarianceWarning("PredictWithStd", 3, -1e-12)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not called")
	}
	var nvw *NegativeVarianceWarning
	if !As(captured, &nvw) || nvw.Index != 3 {
		t.Errorf("unexpected warning: %v", captured)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("logdet", 1.5); err != nil {
		t.Errorf("finite value should pass: %v", err)
	}
	if err := CheckScalar("logdet", math.NaN()); err == nil {
		t.Error("NaN should fail")
	}
	if err := CheckValues("alpha", []float64{0, math.Inf(1)}); err == nil {
		t.Error("Inf should fail")
	}
}
