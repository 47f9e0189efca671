package cpu

import (
	"fmt"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Greater compares element-wise with broadcasting: a > b.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b, func(x, y float64) bool { return x > y })
}

// Lower compares element-wise with broadcasting: a < b.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lower", a, b, func(x, y float64) bool { return x < y })
}

func (cpu *CPUBackend) compare(op string, a, b *tensor.RawTensor, pred func(x, y float64) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	checkFloat(op, a)

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	result := cpu.newResult(op, outShape, tensor.Bool)
	dst := result.AsBool()

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	switch a.DType() {
	case tensor.Float32:
		x, y := a.AsFloat32(), b.AsFloat32()
		for i := range dst {
			dst[i] = pred(float64(x[flatIndex(i, outStrides, aStrides)]), float64(y[flatIndex(i, outStrides, bStrides)]))
		}
	case tensor.Float64:
		x, y := a.AsFloat64(), b.AsFloat64()
		for i := range dst {
			dst[i] = pred(x[flatIndex(i, outStrides, aStrides)], y[flatIndex(i, outStrides, bStrides)])
		}
	}
	return result
}

// Where selects x where condition is true and y otherwise.
// All three tensors must share one shape; x and y must share one dtype.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition dtype is %s, not bool", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}
	if !condition.Shape().Equal(x.Shape()) || !x.Shape().Equal(y.Shape()) {
		panic(fmt.Sprintf("where: shape mismatch: %v, %v, %v", condition.Shape(), x.Shape(), y.Shape()))
	}
	checkFloat("where", x)

	result := cpu.newResult("where", x.Shape(), x.DType())
	cond := condition.AsBool()

	switch x.DType() {
	case tensor.Float32:
		dst, xs, ys := result.AsFloat32(), x.AsFloat32(), y.AsFloat32()
		for i := range dst {
			if cond[i] {
				dst[i] = xs[i]
			} else {
				dst[i] = ys[i]
			}
		}
	case tensor.Float64:
		dst, xs, ys := result.AsFloat64(), x.AsFloat64(), y.AsFloat64()
		for i := range dst {
			if cond[i] {
				dst[i] = xs[i]
			} else {
				dst[i] = ys[i]
			}
		}
	}
	return result
}
