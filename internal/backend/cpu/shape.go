package cpu

import (
	"fmt"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape.
// The element count must be preserved.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements()))
	}
	result := cpu.newResult("reshape", newShape, x.DType())
	copy(result.Data(), x.Data())
	return result
}

// Expand broadcasts a tensor to a larger shape, materializing the result.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}
	if !outShape.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", x.Shape(), shape))
	}
	checkFloat("expand", x)

	result := cpu.newResult("expand", shape, x.DType())
	outStrides := shape.ComputeStrides()
	srcStrides := broadcastStrides(x.Shape(), shape)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i := range dst {
			dst[i] = src[flatIndex(i, outStrides, srcStrides)]
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = src[flatIndex(i, outStrides, srcStrides)]
		}
	}
	return result
}
