// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements the reference backend:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Float64 accumulation kernels via gonum
//
// # Basic Usage
//
//	import (
//	    "github.com/harmonium-ml/harmonium/backend/cpu"
//	    "github.com/harmonium-ml/harmonium/layer"
//	    "github.com/harmonium-ml/harmonium/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    visible := layer.NewBernoulli(784, backend)
//	}
//
// # Thread Safety
//
// The CPU backend holds no mutable state of its own; every operation
// allocates its result. Concurrent operations on distinct tensors are
// safe.
package cpu
