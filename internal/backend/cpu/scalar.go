package cpu

import (
	"fmt"
	"math"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("addscalar", scalar)
	return cpu.mapFloat("addscalar", x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("subscalar", scalar)
	return cpu.mapFloat("subscalar", x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("mulscalar", scalar)
	return cpu.mapFloat("mulscalar", x, func(v float64) float64 { return v * s })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("divscalar", scalar)
	return cpu.mapFloat("divscalar", x, func(v float64) float64 { return v / s })
}

// Pow raises every element to the given power.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	if exponent == 2 {
		return cpu.Square(x)
	}
	return cpu.mapFloat("pow", x, func(v float64) float64 { return math.Pow(v, exponent) })
}

// Clip clamps every element into [low, high].
func (cpu *CPUBackend) Clip(x *tensor.RawTensor, low, high float64) *tensor.RawTensor {
	if low > high {
		panic(fmt.Sprintf("clip: low %v greater than high %v", low, high))
	}
	return cpu.mapFloat("clip", x, func(v float64) float64 {
		return math.Min(math.Max(v, low), high)
	})
}

// toFloat64 widens a numeric scalar argument.
func toFloat64(op string, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, scalar))
	}
}
