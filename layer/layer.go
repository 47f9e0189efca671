// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package layer

import (
	"github.com/harmonium-ml/harmonium/internal/layer"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Unit is the capability set shared by every unit-layer variant. The
// concrete variants are Gaussian, Ising, Bernoulli and Exponential; the
// set is closed.
type Unit[B tensor.Backend] = layer.Unit[B]

// Parameter is a named intrinsic parameter of a layer.
type Parameter[B tensor.Backend] = layer.Parameter[B]

// NewParameter creates a named parameter around an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return layer.NewParameter(name, t)
}

// Sentinel errors. All are catchable with errors.Is.
var (
	// ErrNoMode is returned by Mode on distributions without a mode.
	ErrNoMode = layer.ErrNoMode

	// ErrUnknownLayerKind is returned when a layer-kind token matches no
	// known distribution family.
	ErrUnknownLayerKind = layer.ErrUnknownLayerKind

	// ErrUnknownParameter is returned when a delta, penalty or constraint
	// references a parameter name the layer does not have.
	ErrUnknownParameter = layer.ErrUnknownParameter

	// ErrShapeMismatch is returned when an argument disagrees with the
	// layer's unit count or a parameter's shape.
	ErrShapeMismatch = layer.ErrShapeMismatch
)

// Unit layer variants

// Gaussian is a layer of real-valued units.
type Gaussian[B tensor.Backend] = layer.Gaussian[B]

// NewGaussian creates a Gaussian layer with zero mean and unit variance.
func NewGaussian[B tensor.Backend](numUnits int, backend B) *Gaussian[B] {
	return layer.NewGaussian(numUnits, backend)
}

// Ising is a layer of spin units taking values in {-1, +1}.
type Ising[B tensor.Backend] = layer.Ising[B]

// NewIsing creates an Ising layer with a zero-initialized bias.
func NewIsing[B tensor.Backend](numUnits int, backend B) *Ising[B] {
	return layer.NewIsing(numUnits, backend)
}

// Bernoulli is a layer of binary units taking values in {0, 1}.
type Bernoulli[B tensor.Backend] = layer.Bernoulli[B]

// NewBernoulli creates a Bernoulli layer with activation probability 1/2.
func NewBernoulli[B tensor.Backend](numUnits int, backend B) *Bernoulli[B] {
	return layer.NewBernoulli(numUnits, backend)
}

// Exponential is a layer of non-negative units.
type Exponential[B tensor.Backend] = layer.Exponential[B]

// NewExponential creates an Exponential layer with a zero-initialized rate.
func NewExponential[B tensor.Backend](numUnits int, backend B) *Exponential[B] {
	return layer.NewExponential(numUnits, backend)
}

// Weights couples two unit layers through a dense bilinear energy term.
type Weights[B tensor.Backend] = layer.Weights[B]

// NewWeights creates a weight layer with a small random coupling matrix.
//
// Example:
//
//	weights := layer.NewWeights(784, 256, backend)
func NewWeights[B tensor.Backend](numVisible, numHidden int, backend B) *Weights[B] {
	return layer.NewWeights(numVisible, numHidden, backend)
}

// Layer kinds

// Kind identifies one of the closed set of unit-layer variants.
type Kind = layer.Kind

// Kind constants.
const (
	KindGaussian    Kind = layer.KindGaussian
	KindIsing       Kind = layer.KindIsing
	KindBernoulli   Kind = layer.KindBernoulli
	KindExponential Kind = layer.KindExponential
)

// ParseKind resolves a configuration string to a layer kind. Matching is
// case-insensitive and accepts any name containing a recognized fragment
// ("gauss", "ising", "bern", "expo").
func ParseKind(name string) (Kind, error) {
	return layer.ParseKind(name)
}

// NewUnit constructs a unit layer of the given kind with zero-initialized
// intrinsic parameters.
func NewUnit[B tensor.Backend](kind Kind, numUnits int, backend B) Unit[B] {
	return layer.NewUnit[B](kind, numUnits, backend)
}

// NewUnitFromName resolves a configuration string with ParseKind and
// constructs the layer in one step.
func NewUnitFromName[B tensor.Backend](name string, numUnits int, backend B) (Unit[B], error) {
	return layer.NewUnitFromName[B](name, numUnits, backend)
}
