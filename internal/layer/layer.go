// Package layer implements the unit layers of bipartite energy-based
// models: exchangeable blocks of stochastic units drawn from one
// exponential-family distribution, plus the weight layer coupling two of
// them through a bilinear energy term.
//
// Every unit layer follows a two-phase protocol. Update computes the
// extrinsic (field-dependent) parameters from the connected layer's state;
// Mode, Mean and SampleState then read only that extrinsic state. The
// extrinsic state is transient and must be recomputed whenever the
// connected layer changes.
//
// Layers never hold references to each other; coupling is always mediated
// by the explicit weights argument, so the object graph stays acyclic.
package layer

import (
	"fmt"
	"math"

	"github.com/harmonium-ml/harmonium/internal/constraint"
	"github.com/harmonium-ml/harmonium/internal/penalty"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Clip bounds for guarding moment inversions against degenerate batches.
const (
	epsilon    = float64(tensor.Epsilon)
	maxFloat64 = math.MaxFloat64
)

// Parameter is a named intrinsic parameter of a layer. It is owned
// exclusively by its layer and mutated only through ParameterStep,
// Replace, or the layer's moment-matching update.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter creates a named parameter around an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Replace swaps in a new value for the parameter.
// Panics if the new value's shape disagrees with the current one; a
// parameter's shape is fixed for the life of its layer.
func (p *Parameter[B]) Replace(t *tensor.Tensor[float32, B]) {
	if !p.tensor.Shape().Equal(t.Shape()) {
		panic(fmt.Sprintf("parameter %q: shape %v cannot replace %v", p.name, t.Shape(), p.tensor.Shape()))
	}
	p.tensor = t
}

// Unit is the capability set shared by every unit-layer variant.
// The concrete variants are Gaussian, Ising, Bernoulli and Exponential;
// the set is closed.
type Unit[B tensor.Backend] interface {
	// NumUnits returns the fixed size of the layer.
	NumUnits() int

	// SampleSize returns the number of observations absorbed so far by
	// OnlineParamUpdate. It never decreases.
	SampleSize() int

	// Energy returns the per-sample energy contribution of the layer for
	// the given unit values, shape (numSamples,).
	Energy(units *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// LogPartition returns the per-unit log partition function under the
	// external field phi, shape equal to phi's. Its gradient in phi is
	// the conditional mean. Precondition: the intrinsic parameters must
	// keep the argument inside the analytic domain (positive variance,
	// rate margin loc > phi); violations propagate as non-finite values.
	LogPartition(phi *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// OnlineParamUpdate absorbs an observed batch, shape
	// (numSamples, numUnits), into the intrinsic parameters by
	// moment matching. Used to initialize parameters from data before
	// any gradient step.
	OnlineParamUpdate(data *tensor.Tensor[float32, B]) error

	// ShrinkParameters pulls scale parameters toward 1 by the given
	// amount in [0, 1]. A no-op for variants without a scale.
	ShrinkParameters(shrinkage float32)

	// Update recomputes the extrinsic parameters from the rescaled state
	// of the connected layer, shape (numSamples, numConnected), and the
	// coupling matrix, shape (numConnected, numUnits). beta, shape
	// (numSamples, 1), optionally scales the field by an inverse
	// temperature; nil means no tempering.
	Update(scaledUnits, weights, beta *tensor.Tensor[float32, B])

	// Derivatives returns the gradient of the negative log-likelihood
	// contribution with respect to each intrinsic parameter, evaluated
	// at the observed units, keyed by parameter name. Registered penalty
	// gradients are included.
	Derivatives(vis, hid, weights, beta *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B]

	// Rescale maps observed unit values to the scale used in the weight
	// coupling. Identity for all variants except Gaussian.
	Rescale(observations *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Mode returns the most probable state under the current extrinsic
	// parameters, or ErrNoMode for distributions without one.
	Mode() (*tensor.Tensor[float32, B], error)

	// Mean returns the expected state under the current extrinsic
	// parameters.
	Mean() *tensor.Tensor[float32, B]

	// SampleState draws a state from the conditional distribution under
	// the current extrinsic parameters.
	SampleState() *tensor.Tensor[float32, B]

	// Random draws an unconditioned state of the given shape from the
	// layer's base distribution, for sampler initialization.
	Random(shape tensor.Shape) *tensor.Tensor[float32, B]

	// Shared parameter bookkeeping.
	AddPenalty(name string, p penalty.Penalty[B]) error
	AddConstraint(name string, c constraint.Constraint[B]) error
	PenaltyValues() map[string]float32
	PenaltyGradients() map[string]*tensor.Tensor[float32, B]
	ParameterStep(deltas map[string]*tensor.Tensor[float32, B]) error
	EnforceConstraints()
	Parameters() []*Parameter[B]
}

// base carries the parameter bookkeeping shared by every layer: the named
// intrinsic parameters, and the penalty and constraint registrations bound
// to them. Registrations are validated against the parameter set when they
// are made, not when they are used.
type base[B tensor.Backend] struct {
	params      []*Parameter[B]
	penalties   []boundPenalty[B]
	constraints []boundConstraint[B]
}

type boundPenalty[B tensor.Backend] struct {
	name string
	fn   penalty.Penalty[B]
}

type boundConstraint[B tensor.Backend] struct {
	name string
	fn   constraint.Constraint[B]
}

func newBase[B tensor.Backend](params ...*Parameter[B]) base[B] {
	return base[B]{params: params}
}

func (b *base[B]) param(name string) (*Parameter[B], bool) {
	for _, p := range b.params {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Parameters returns the layer's intrinsic parameters in declaration order.
func (b *base[B]) Parameters() []*Parameter[B] {
	return b.params
}

// AddPenalty binds a penalty to the named parameter. Re-registering a name
// replaces the previous penalty (last write wins).
func (b *base[B]) AddPenalty(name string, p penalty.Penalty[B]) error {
	if _, ok := b.param(name); !ok {
		return fmt.Errorf("add penalty: %w: %q", ErrUnknownParameter, name)
	}
	for i := range b.penalties {
		if b.penalties[i].name == name {
			b.penalties[i].fn = p
			return nil
		}
	}
	b.penalties = append(b.penalties, boundPenalty[B]{name: name, fn: p})
	return nil
}

// AddConstraint binds a constraint to the named parameter. Re-registering a
// name replaces the previous constraint (last write wins).
func (b *base[B]) AddConstraint(name string, c constraint.Constraint[B]) error {
	if _, ok := b.param(name); !ok {
		return fmt.Errorf("add constraint: %w: %q", ErrUnknownParameter, name)
	}
	for i := range b.constraints {
		if b.constraints[i].name == name {
			b.constraints[i].fn = c
			return nil
		}
	}
	b.constraints = append(b.constraints, boundConstraint[B]{name: name, fn: c})
	return nil
}

// PenaltyValues evaluates every registered penalty at the current
// parameter values.
func (b *base[B]) PenaltyValues() map[string]float32 {
	values := make(map[string]float32, len(b.penalties))
	for _, bp := range b.penalties {
		p, _ := b.param(bp.name)
		values[bp.name] = bp.fn.Value(p.Tensor())
	}
	return values
}

// PenaltyGradients evaluates every registered penalty gradient at the
// current parameter values.
func (b *base[B]) PenaltyGradients() map[string]*tensor.Tensor[float32, B] {
	grads := make(map[string]*tensor.Tensor[float32, B], len(b.penalties))
	for _, bp := range b.penalties {
		p, _ := b.param(bp.name)
		grads[bp.name] = bp.fn.Grad(p.Tensor())
	}
	return grads
}

// addPenaltyGradients folds the registered penalty gradients into a
// derivative map in place.
func (b *base[B]) addPenaltyGradients(derivs map[string]*tensor.Tensor[float32, B]) {
	for name, grad := range b.PenaltyGradients() {
		if d, ok := derivs[name]; ok {
			derivs[name] = d.Add(grad)
		}
	}
}

// ParameterStep subtracts deltas[name] from each named parameter in place,
// then applies the registered constraints. The whole delta set is validated
// before anything is applied, so a bad step mutates nothing.
func (b *base[B]) ParameterStep(deltas map[string]*tensor.Tensor[float32, B]) error {
	for name, delta := range deltas {
		p, ok := b.param(name)
		if !ok {
			return fmt.Errorf("parameter step: %w: %q", ErrUnknownParameter, name)
		}
		if !p.Tensor().Shape().Equal(delta.Shape()) {
			return fmt.Errorf("parameter step %q: %w: got %v, want %v",
				name, ErrShapeMismatch, delta.Shape(), p.Tensor().Shape())
		}
	}

	for name, delta := range deltas {
		p, _ := b.param(name)
		data := p.Tensor().Data()
		for i, d := range delta.Data() {
			data[i] -= d
		}
	}

	b.EnforceConstraints()
	return nil
}

// EnforceConstraints applies every registered constraint projection to its
// parameter in place, in registration order. Projections are idempotent,
// so repeated application is harmless.
func (b *base[B]) EnforceConstraints() {
	for _, bc := range b.constraints {
		p, _ := b.param(bc.name)
		bc.fn.Apply(p.Tensor())
	}
}

// checkData validates an observed batch against the layer's unit count.
func checkData[B tensor.Backend](data *tensor.Tensor[float32, B], numUnits int) error {
	shape := data.Shape()
	if len(shape) != 2 || shape[1] != numUnits {
		return fmt.Errorf("online param update: %w: got %v, want (numSamples, %d)",
			ErrShapeMismatch, shape, numUnits)
	}
	return nil
}
