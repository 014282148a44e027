package kernel

import (
	"fmt"
	"strings"
)

var (
	_ Kernel = (*Sum)(nil)
	_ Kernel = (*Product)(nil)
)

// Sum is the pointwise sum of component kernels. Sums of valid kernels are
// valid kernels, so composed models (e.g. periodic plus trend) plug into
// the builders unchanged.
type Sum struct {
	parts []Kernel
}

// NewSum combines two kernels into their sum. Nested sums are flattened so
// NewSum(NewSum(a, b), c) holds three parts, not two.
func NewSum(first, second Kernel) *Sum {
	parts := make([]Kernel, 0, 2)
	switch first := first.(type) {
	case *Sum:
		parts = append(parts, first.parts...)
	default:
		parts = append(parts, first)
	}
	switch second := second.(type) {
	case *Sum:
		parts = append(parts, second.parts...)
	default:
		parts = append(parts, second)
	}
	return &Sum{parts: parts}
}

// Eval implements Kernel.Eval.
func (k *Sum) Eval(x, z []float64) float64 {
	var sum float64
	for _, part := range k.parts {
		sum += part.Eval(x, z)
	}
	return sum
}

// Name implements Kernel.Name.
func (k *Sum) Name() string { return composeName("Sum", k.parts) }

// Params implements Kernel.Params. Component parameters are namespaced by
// position, e.g. "0.variance".
func (k *Sum) Params() map[string]float64 { return composeParams(k.parts) }

// Validate implements Kernel.Validate.
func (k *Sum) Validate() error {
	for _, part := range k.parts {
		if err := part.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Product is the pointwise product of component kernels. Products of valid
// kernels are valid kernels; a common use is localizing a periodic kernel
// with an RBF envelope.
type Product struct {
	parts []Kernel
}

// NewProduct combines two kernels into their product, flattening nested
// products the same way NewSum does.
func NewProduct(first, second Kernel) *Product {
	parts := make([]Kernel, 0, 2)
	switch first := first.(type) {
	case *Product:
		parts = append(parts, first.parts...)
	default:
		parts = append(parts, first)
	}
	switch second := second.(type) {
	case *Product:
		parts = append(parts, second.parts...)
	default:
		parts = append(parts, second)
	}
	return &Product{parts: parts}
}

// Eval implements Kernel.Eval.
func (k *Product) Eval(x, z []float64) float64 {
	prod := 1.0
	for _, part := range k.parts {
		prod *= part.Eval(x, z)
	}
	return prod
}

// Name implements Kernel.Name.
func (k *Product) Name() string { return composeName("Product", k.parts) }

// Params implements Kernel.Params.
func (k *Product) Params() map[string]float64 { return composeParams(k.parts) }

// Validate implements Kernel.Validate.
func (k *Product) Validate() error {
	for _, part := range k.parts {
		if err := part.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func composeName(op string, parts []Kernel) string {
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = part.Name()
	}
	return op + "(" + strings.Join(names, ", ") + ")"
}

func composeParams(parts []Kernel) map[string]float64 {
	params := make(map[string]float64)
	for i, part := range parts {
		for name, value := range part.Params() {
			params[fmt.Sprintf("%d.%s", i, name)] = value
		}
	}
	return params
}
