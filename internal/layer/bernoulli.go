package layer

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Bernoulli is a layer of binary units taking values in {0, 1}. Single
// intrinsic parameter: "loc", the per-unit bias in log-odds space.
type Bernoulli[B tensor.Backend] struct {
	base[B]
	numUnits   int
	sampleSize int
	loc        *Parameter[B]

	// Extrinsic parameter, valid only after Update.
	field *tensor.Tensor[float32, B]

	backend B
}

// NewBernoulli creates a Bernoulli layer with a zero-initialized bias
// (activation probability 1/2).
func NewBernoulli[B tensor.Backend](numUnits int, backend B) *Bernoulli[B] {
	loc := NewParameter("loc", tensor.Zeros[float32](tensor.Shape{numUnits}, backend))
	return &Bernoulli[B]{
		base:     newBase(loc),
		numUnits: numUnits,
		loc:      loc,
		backend:  backend,
	}
}

// NumUnits returns the fixed size of the layer.
func (l *Bernoulli[B]) NumUnits() int { return l.numUnits }

// SampleSize returns the number of observations absorbed so far.
func (l *Bernoulli[B]) SampleSize() int { return l.sampleSize }

// Energy computes, for each sample k, E_k = -dot(x_k, loc) / numUnits.
func (l *Bernoulli[B]) Energy(units *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return units.Dot(l.loc.Tensor()).MulScalar(-1 / float32(l.numUnits))
}

// LogPartition computes the per-unit log partition function under the
// external field phi:
//
//	Z_i = 1 + exp(loc_i + phi_i),  log Z_i = softplus(loc_i + phi_i).
func (l *Bernoulli[B]) LogPartition(phi *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return phi.Add(l.loc.Tensor()).Softplus()
}

// OnlineParamUpdate absorbs an observed batch by moment matching on the
// first moment logistic(loc), inverting through logit at the end. The
// accumulation happens in moment space; averaging logits of per-batch
// estimates would not converge to the maximum-likelihood value.
func (l *Bernoulli[B]) OnlineParamUpdate(data *tensor.Tensor[float32, B]) error {
	if err := checkData(data, l.numUnits); err != nil {
		return err
	}

	n := data.Shape()[0]
	total := l.sampleSize + n

	x := l.loc.Tensor().Logistic().MulScalar(float32(l.sampleSize) / float32(total))
	x = x.Add(data.MeanDim(0, false).MulScalar(float32(n) / float32(total)))

	// Guard the logit domain against all-zero or all-one batches.
	l.loc.Replace(x.Clip(epsilon, 1-epsilon).Logit())
	l.sampleSize = total
	return nil
}

// ShrinkParameters is a no-op: the Bernoulli layer has no scale parameter.
func (l *Bernoulli[B]) ShrinkParameters(float32) {}

// Update recomputes the extrinsic field from the connected layer's state
// and the coupling matrix.
func (l *Bernoulli[B]) Update(scaledUnits, weights, beta *tensor.Tensor[float32, B]) {
	field := scaledUnits.MatMul(weights)
	if beta != nil {
		field = field.Mul(beta)
	}
	l.field = field.Add(l.loc.Tensor())
}

// Derivatives computes the data-side gradient of the negative
// log-likelihood: d_loc = -mean_k x_k, plus registered penalty gradients.
func (l *Bernoulli[B]) Derivatives(vis, hid, weights, beta *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B] {
	derivs := map[string]*tensor.Tensor[float32, B]{
		"loc": vis.MeanDim(0, false).MulScalar(-1),
	}
	l.addPenaltyGradients(derivs)
	return derivs
}

// Rescale is the identity for Bernoulli units.
func (l *Bernoulli[B]) Rescale(observations *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return observations
}

// Mode returns 1 where the field is positive, 0 elsewhere.
func (l *Bernoulli[B]) Mode() (*tensor.Tensor[float32, B], error) {
	field := l.ext()
	zeros := tensor.Zeros[float32](field.Shape(), l.backend)
	return tensor.Where(field.Greater(zeros), tensor.Ones[float32](field.Shape(), l.backend), zeros), nil
}

// Mean returns logistic(field), the per-unit activation probability.
func (l *Bernoulli[B]) Mean() *tensor.Tensor[float32, B] {
	return l.ext().Logistic()
}

// SampleState draws units: 1 with probability logistic(field), else 0.
func (l *Bernoulli[B]) SampleState() *tensor.Tensor[float32, B] {
	p := l.ext().Logistic()
	r := tensor.Rand[float32](p.Shape(), l.backend)
	return tensor.Where(r.Lower(p), tensor.Ones[float32](p.Shape(), l.backend), tensor.Zeros[float32](p.Shape(), l.backend))
}

// Random draws an unconditioned fair-coin state.
func (l *Bernoulli[B]) Random(shape tensor.Shape) *tensor.Tensor[float32, B] {
	r := tensor.Rand[float32](shape, l.backend)
	half := tensor.Full[float32](shape, 0.5, l.backend)
	return tensor.Where(r.Lower(half), tensor.Ones[float32](shape, l.backend), tensor.Zeros[float32](shape, l.backend))
}

func (l *Bernoulli[B]) ext() *tensor.Tensor[float32, B] {
	if l.field == nil {
		panic("bernoulli: Update must be called before Mode/Mean/SampleState")
	}
	return l.field
}
