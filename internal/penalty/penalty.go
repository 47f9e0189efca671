// Package penalty provides parameter penalty functionals.
//
// A penalty contributes additively to a layer's parameter gradients, never
// to the energy itself. Each penalty exposes its value and its gradient at
// the current parameter vector.
package penalty

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Penalty is a differentiable regularization functional over a parameter
// tensor.
type Penalty[B tensor.Backend] interface {
	// Value evaluates the penalty at the given parameter value.
	Value(param *tensor.Tensor[float32, B]) float32

	// Grad evaluates the penalty gradient at the given parameter value.
	Grad(param *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// L2 is the squared-norm penalty (1/2) * coeff * sum_i p_i^2.
type L2[B tensor.Backend] struct {
	Coeff float32
}

// Value returns (1/2) * coeff * sum_i p_i^2.
func (p L2[B]) Value(param *tensor.Tensor[float32, B]) float32 {
	return 0.5 * p.Coeff * param.Square().Sum().Item()
}

// Grad returns coeff * p.
func (p L2[B]) Grad(param *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return param.MulScalar(p.Coeff)
}

// L1 is the absolute-value penalty coeff * sum_i |p_i|.
type L1[B tensor.Backend] struct {
	Coeff float32
}

// Value returns coeff * sum_i |p_i|.
func (p L1[B]) Value(param *tensor.Tensor[float32, B]) float32 {
	return p.Coeff * param.Mul(param.Sign()).Sum().Item()
}

// Grad returns coeff * sign(p). The subgradient at zero is taken as zero.
func (p L1[B]) Grad(param *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return param.Sign().MulScalar(p.Coeff)
}
