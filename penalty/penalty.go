// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package penalty provides parameter penalty functionals for layers.
//
// A penalty contributes additively to a layer's parameter gradients,
// never to the energy itself:
//
//	visible := layer.NewGaussian(784, backend)
//	_ = visible.AddPenalty("loc", penalty.L2[*cpu.Backend]{Coeff: 1e-4})
package penalty

import (
	"github.com/harmonium-ml/harmonium/internal/penalty"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Penalty is a differentiable regularization functional over a parameter
// tensor.
type Penalty[B tensor.Backend] = penalty.Penalty[B]

// L2 is the squared-norm penalty (1/2) * coeff * sum_i p_i^2.
type L2[B tensor.Backend] = penalty.L2[B]

// L1 is the absolute-value penalty coeff * sum_i |p_i|.
type L1[B tensor.Backend] = penalty.L1[B]
