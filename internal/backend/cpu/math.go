package cpu

import (
	"math"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// mapFloat applies f element-wise. The float32 path widens through float64
// per element, matching the precision convention of the math package.
func (cpu *CPUBackend) mapFloat(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	checkFloat(op, x)
	result := cpu.newResult(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	}
	return result
}

// Exp computes element-wise exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("exp", x, math.Exp)
}

// Log computes element-wise ln(x). Non-positive arguments yield -Inf/NaN;
// keeping fields inside the analytic domain is the caller's contract.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("log", x, math.Log)
}

// Sqrt computes element-wise sqrt(x).
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("sqrt", x, math.Sqrt)
}

// Square computes element-wise x*x.
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("square", x, func(v float64) float64 { return v * v })
}

// Reciprocal computes element-wise 1/x.
func (cpu *CPUBackend) Reciprocal(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("reciprocal", x, func(v float64) float64 { return 1 / v })
}

// Sign computes the element-wise sign: -1, 0, or +1.
func (cpu *CPUBackend) Sign(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("sign", x, func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	})
}

// Tanh computes element-wise tanh(x).
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("tanh", x, math.Tanh)
}

// Atanh computes element-wise atanh(x), defined on (-1, 1).
func (cpu *CPUBackend) Atanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("atanh", x, math.Atanh)
}

// Logistic computes element-wise 1/(1+exp(-x)).
func (cpu *CPUBackend) Logistic(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("logistic", x, func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Logit computes element-wise log(x/(1-x)), the inverse of Logistic,
// defined on (0, 1).
func (cpu *CPUBackend) Logit(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("logit", x, func(v float64) float64 {
		return math.Log(v) - math.Log1p(-v)
	})
}

// Softplus computes element-wise log(1+exp(x)), overflow-safe for large x.
func (cpu *CPUBackend) Softplus(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("softplus", x, func(v float64) float64 {
		if v > 30 {
			return v // log1p(exp(v)) = v to double precision
		}
		return math.Log1p(math.Exp(v))
	})
}

// Logcosh computes element-wise log(cosh(x)) without overflowing for
// large |x|: log(cosh(x)) = |x| + log1p(exp(-2|x|)) - log(2).
func (cpu *CPUBackend) Logcosh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("logcosh", x, func(v float64) float64 {
		a := math.Abs(v)
		return a + math.Log1p(math.Exp(-2*a)) - math.Ln2
	})
}
