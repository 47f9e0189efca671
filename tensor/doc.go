// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for harmonium.
//
// # Overview
//
// Tensors are the numeric substrate under the layer package. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Device abstraction behind the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/harmonium-ml/harmonium/tensor"
//	    "github.com/harmonium-ml/harmonium/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Randn[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	    field := z.MatMul(y.T())
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32 and float64 for numeric data, and
// bool for comparison masks. Model state is held in float32; backend
// kernels may accumulate in float64.
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	bias := tensor.Zeros[float32](tensor.Shape{3}, backend)    // (3,)
//	batch := tensor.Ones[float32](tensor.Shape{4, 3}, backend) // (4, 3)
//	sum := batch.Add(bias)                                     // (4, 3)
//
// Shape or dtype misuse panics; numeric domain violations (log of a
// non-positive value, division by zero) propagate as non-finite values
// instead.
package tensor
