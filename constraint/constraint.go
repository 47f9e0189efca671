// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package constraint provides in-place parameter constraint projections.
//
// A constraint projects a parameter tensor back onto its feasible set
// after each parameter step:
//
//	weights := layer.NewWeights(784, 256, backend)
//	_ = weights.AddConstraint("matrix", constraint.NonNegative[*cpu.Backend]{})
package constraint

import (
	"github.com/harmonium-ml/harmonium/internal/constraint"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Constraint projects a parameter tensor onto a feasible set, mutating it
// in place. Projections are idempotent.
type Constraint[B tensor.Backend] = constraint.Constraint[B]

// NonNegative clamps every element to be >= 0.
type NonNegative[B tensor.Backend] = constraint.NonNegative[B]

// Clip clamps every element into [Low, High].
type Clip[B tensor.Backend] = constraint.Clip[B]
