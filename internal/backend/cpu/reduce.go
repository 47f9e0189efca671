package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Sum computes the total sum of all elements (scalar result).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("sum", x)
	result := cpu.newResult("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	case tensor.Float64:
		result.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	}
	return result
}

// SumDim sums along one dimension. Negative dims index from the end.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("sumdim", dim, len(shape))
	checkFloat("sumdim", x)

	result := cpu.newResult("sumdim", reducedShape(shape, dim, keepDim), x.DType())

	strides := shape.ComputeStrides()
	outShape := shape.Clone()
	outShape[dim] = 1
	outStrides := outShape.ComputeStrides()

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[reducedIndex(i, dim, shape, strides, outStrides)] += v
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[reducedIndex(i, dim, shape, strides, outStrides)] += v
		}
	}
	return result
}

// MeanDim averages along one dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	sum := cpu.SumDim(x, dim, keepDim)
	n := float64(x.Shape()[normalizeDim("meandim", dim, len(x.Shape()))])

	switch sum.DType() {
	case tensor.Float32:
		data := sum.AsFloat32()
		inv := float32(1 / n)
		for i := range data {
			data[i] *= inv
		}
	case tensor.Float64:
		floats.Scale(1/n, sum.AsFloat64())
	}
	return sum
}

// VarDim computes the population variance along one dimension,
// E[x^2] - E[x]^2.
func (cpu *CPUBackend) VarDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	mean := cpu.MeanDim(x, dim, keepDim)
	meanSq := cpu.MeanDim(cpu.Square(x), dim, keepDim)
	return cpu.Sub(meanSq, cpu.Square(mean))
}

// Max reduces all elements to their maximum (scalar result).
func (cpu *CPUBackend) Max(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.extremum("max", x, func(a, b float64) bool { return a > b })
}

// Min reduces all elements to their minimum (scalar result).
func (cpu *CPUBackend) Min(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.extremum("min", x, func(a, b float64) bool { return a < b })
}

func (cpu *CPUBackend) extremum(op string, x *tensor.RawTensor, better func(a, b float64) bool) *tensor.RawTensor {
	checkFloat(op, x)
	if x.NumElements() == 0 {
		panic(fmt.Sprintf("%s: empty tensor", op))
	}
	result := cpu.newResult(op, tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		best := src[0]
		for _, v := range src[1:] {
			if better(float64(v), float64(best)) {
				best = v
			}
		}
		result.AsFloat32()[0] = best
	case tensor.Float64:
		src := x.AsFloat64()
		best := src[0]
		for _, v := range src[1:] {
			if better(v, best) {
				best = v
			}
		}
		result.AsFloat64()[0] = best
	}
	return result
}

// Any reports whether any element of a bool tensor is true.
func (cpu *CPUBackend) Any(x *tensor.RawTensor) bool {
	for _, v := range boolData("any", x) {
		if v {
			return true
		}
	}
	return false
}

// All reports whether every element of a bool tensor is true.
func (cpu *CPUBackend) All(x *tensor.RawTensor) bool {
	for _, v := range boolData("all", x) {
		if !v {
			return false
		}
	}
	return true
}

func boolData(op string, x *tensor.RawTensor) []bool {
	if x.DType() != tensor.Bool {
		panic(fmt.Sprintf("%s: dtype is %s, not bool", op, x.DType()))
	}
	return x.AsBool()
}

func normalizeDim(op string, dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("%s: dimension out of range for %dD tensor", op, ndim))
	}
	return dim
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	return out
}

// reducedIndex maps a flat input index to its flat output index with the
// reduced dimension pinned to coordinate 0.
func reducedIndex(idx, dim int, shape tensor.Shape, strides, outStrides []int) int {
	out := 0
	for d := range shape {
		coord := idx / strides[d]
		idx %= strides[d]
		if d != dim {
			out += coord * outStrides[d]
		}
	}
	return out
}
