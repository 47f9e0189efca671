// Package constraint provides in-place parameter constraint projections.
//
// A constraint projects a parameter tensor back onto its feasible set after
// each parameter step. Projections are idempotent: applying one twice gives
// the same result as applying it once.
package constraint

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Constraint projects a parameter tensor onto a feasible set, mutating it
// in place.
type Constraint[B tensor.Backend] interface {
	Apply(param *tensor.Tensor[float32, B])
}

// NonNegative clamps every element to be >= 0.
type NonNegative[B tensor.Backend] struct{}

// Apply clamps negative entries to zero in place.
func (NonNegative[B]) Apply(param *tensor.Tensor[float32, B]) {
	data := param.Data()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
}

// Clip clamps every element into [Low, High].
type Clip[B tensor.Backend] struct {
	Low  float32
	High float32
}

// Apply clamps entries into [Low, High] in place.
func (c Clip[B]) Apply(param *tensor.Tensor[float32, B]) {
	data := param.Data()
	for i, v := range data {
		switch {
		case v < c.Low:
			data[i] = c.Low
		case v > c.High:
			data[i] = c.High
		}
	}
}
