package layer

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Exponential is a layer of non-negative units with an exponential
// conditional distribution. Single intrinsic parameter: "loc", the
// per-unit rate.
type Exponential[B tensor.Backend] struct {
	base[B]
	numUnits   int
	sampleSize int
	loc        *Parameter[B]

	// Extrinsic parameter, valid only after Update.
	rate *tensor.Tensor[float32, B]

	backend B
}

// NewExponential creates an Exponential layer with a zero-initialized
// rate. Callers should run OnlineParamUpdate or a parameter step before
// sampling; the conditional distribution is only defined for positive
// rates.
func NewExponential[B tensor.Backend](numUnits int, backend B) *Exponential[B] {
	loc := NewParameter("loc", tensor.Zeros[float32](tensor.Shape{numUnits}, backend))
	return &Exponential[B]{
		base:     newBase(loc),
		numUnits: numUnits,
		loc:      loc,
		backend:  backend,
	}
}

// NumUnits returns the fixed size of the layer.
func (l *Exponential[B]) NumUnits() int { return l.numUnits }

// SampleSize returns the number of observations absorbed so far.
func (l *Exponential[B]) SampleSize() int { return l.sampleSize }

// Energy computes, for each sample k, E_k = +dot(x_k, loc) / numUnits.
// The sign is opposite to the binary variants: a larger rate suppresses
// large unit values.
func (l *Exponential[B]) Energy(units *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return units.Dot(l.loc.Tensor()).MulScalar(1 / float32(l.numUnits))
}

// LogPartition computes the per-unit log partition function under the
// external field phi:
//
//	Z_i = 1 / (loc_i - phi_i),  log Z_i = -log(loc_i - phi_i).
//
// Precondition: loc_i > phi_i elementwise. Violations are the caller's
// responsibility (temperature scaling or gradient clipping upstream) and
// propagate as non-finite values rather than being clamped here.
func (l *Exponential[B]) LogPartition(phi *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return l.loc.Tensor().Sub(phi).Log().MulScalar(-1)
}

// OnlineParamUpdate absorbs an observed batch by moment matching on the
// first moment 1/loc, inverting through the reciprocal at the end.
func (l *Exponential[B]) OnlineParamUpdate(data *tensor.Tensor[float32, B]) error {
	if err := checkData(data, l.numUnits); err != nil {
		return err
	}

	n := data.Shape()[0]
	total := l.sampleSize + n

	// The zero-initialized rate has no finite moment, so the first batch
	// starts the recursion from scratch.
	x := tensor.Zeros[float32](tensor.Shape{l.numUnits}, l.backend)
	if l.sampleSize > 0 {
		x = l.loc.Tensor().Reciprocal().MulScalar(float32(l.sampleSize) / float32(total))
	}
	x = x.Add(data.MeanDim(0, false).MulScalar(float32(n) / float32(total)))

	// Guard the reciprocal against an all-zero batch.
	l.loc.Replace(x.Clip(epsilon, maxFloat64).Reciprocal())
	l.sampleSize = total
	return nil
}

// ShrinkParameters is a no-op: the Exponential layer has no scale
// parameter.
func (l *Exponential[B]) ShrinkParameters(float32) {}

// Update recomputes the extrinsic rate from the connected layer's state
// and the coupling matrix: rate = loc - phi.
func (l *Exponential[B]) Update(scaledUnits, weights, beta *tensor.Tensor[float32, B]) {
	rate := scaledUnits.MatMul(weights).MulScalar(-1)
	if beta != nil {
		rate = rate.Mul(beta)
	}
	l.rate = rate.Add(l.loc.Tensor())
}

// Derivatives computes the data-side gradient of the negative
// log-likelihood: d_loc = +mean_k x_k (the energy carries a positive
// sign), plus registered penalty gradients.
func (l *Exponential[B]) Derivatives(vis, hid, weights, beta *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B] {
	derivs := map[string]*tensor.Tensor[float32, B]{
		"loc": vis.MeanDim(0, false),
	}
	l.addPenaltyGradients(derivs)
	return derivs
}

// Rescale is the identity for Exponential units.
func (l *Exponential[B]) Rescale(observations *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return observations
}

// Mode signals ErrNoMode: the exponential distribution has no mode.
func (l *Exponential[B]) Mode() (*tensor.Tensor[float32, B], error) {
	return nil, ErrNoMode
}

// Mean returns 1/rate, the conditional mean.
func (l *Exponential[B]) Mean() *tensor.Tensor[float32, B] {
	return l.ext().Reciprocal()
}

// SampleState draws by inversion sampling: -log(U) / rate.
func (l *Exponential[B]) SampleState() *tensor.Tensor[float32, B] {
	r := tensor.Rand[float32](l.ext().Shape(), l.backend)
	return r.Log().MulScalar(-1).Div(l.rate)
}

// Random draws an unconditioned unit-rate exponential state.
func (l *Exponential[B]) Random(shape tensor.Shape) *tensor.Tensor[float32, B] {
	return tensor.Rand[float32](shape, l.backend).Log().MulScalar(-1)
}

func (l *Exponential[B]) ext() *tensor.Tensor[float32, B] {
	if l.rate == nil {
		panic("exponential: Update must be called before Mean/SampleState")
	}
	return l.rate
}
