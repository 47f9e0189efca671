// Package cpu implements the reference pure-Go tensor backend.
//
// It implements every operation of the tensor.Backend contract with plain
// loops over the typed buffer views. Shape and dtype misuse panics;
// analytic domain violations (log of a non-positive value) are the
// caller's concern and propagate as non-finite values.
package cpu

import (
	"fmt"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// CPUBackend computes tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// newResult allocates an output tensor, panicking on invalid shapes. The
// contract treats allocation failure as a programming error.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}

func checkFloat(op string, x *tensor.RawTensor) {
	if x.DType() != tensor.Float32 && x.DType() != tensor.Float64 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}
}
