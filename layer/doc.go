// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layer provides the building blocks of bipartite energy-based
// models: exchangeable layers of stochastic units and the weight layer
// coupling two of them.
//
// # Overview
//
// A harmonium (restricted Boltzmann machine) is two unit layers joined by
// a bilinear energy term. Each unit layer is one exponential-family
// distribution applied unit-wise:
//   - Gaussian: real-valued units with per-unit mean and variance
//   - Ising: spins in {-1, +1}
//   - Bernoulli: binary units in {0, 1}
//   - Exponential: non-negative units with a per-unit rate
//
// # Basic Usage
//
//	import (
//	    "github.com/harmonium-ml/harmonium/backend/cpu"
//	    "github.com/harmonium-ml/harmonium/layer"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    visible := layer.NewBernoulli(784, backend)
//	    hidden := layer.NewBernoulli(256, backend)
//	    weights := layer.NewWeights(784, 256, backend)
//
//	    // Initialize the visible bias from data, then drive the hidden
//	    // layer through the coupling.
//	    _ = visible.OnlineParamUpdate(data)
//	    hidden.Update(visible.Rescale(data), weights.W(), nil)
//	    h := hidden.SampleState()
//	}
//
// # The two-phase protocol
//
// Update computes a layer's extrinsic (field-dependent) parameters from
// the connected layer's rescaled state and the coupling matrix. Mode,
// Mean and SampleState read only that extrinsic state and must not be
// called before the first Update. The extrinsic state is transient:
// recompute it whenever the connected layer changes.
//
// # Layer kinds
//
// Configuration strings resolve to layer kinds once, through ParseKind;
// construction from a Kind cannot fail:
//
//	kind, err := layer.ParseKind("gaussian")
//	visible := layer.NewUnit(kind, 784, backend)
package layer
