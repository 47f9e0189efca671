package layer

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Ising is a layer of spin units taking values in {-1, +1}. Single
// intrinsic parameter: "loc", the per-unit bias.
type Ising[B tensor.Backend] struct {
	base[B]
	numUnits   int
	sampleSize int
	loc        *Parameter[B]

	// Extrinsic parameter, valid only after Update.
	field *tensor.Tensor[float32, B]

	backend B
}

// NewIsing creates an Ising layer with a zero-initialized bias.
func NewIsing[B tensor.Backend](numUnits int, backend B) *Ising[B] {
	loc := NewParameter("loc", tensor.Zeros[float32](tensor.Shape{numUnits}, backend))
	return &Ising[B]{
		base:     newBase(loc),
		numUnits: numUnits,
		loc:      loc,
		backend:  backend,
	}
}

// NumUnits returns the fixed size of the layer.
func (l *Ising[B]) NumUnits() int { return l.numUnits }

// SampleSize returns the number of observations absorbed so far.
func (l *Ising[B]) SampleSize() int { return l.sampleSize }

// Energy computes, for each sample k, E_k = -dot(x_k, loc) / numUnits.
func (l *Ising[B]) Energy(units *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return units.Dot(l.loc.Tensor()).MulScalar(-1 / float32(l.numUnits))
}

// LogPartition computes the per-unit log partition function under the
// external field phi:
//
//	Z_i = Tr_{x_i} exp((loc_i + phi_i) x_i) = 2 cosh(loc_i + phi_i)
//
// returned up to the constant log 2 as logcosh(loc_i + phi_i).
func (l *Ising[B]) LogPartition(phi *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return phi.Add(l.loc.Tensor()).Logcosh()
}

// OnlineParamUpdate absorbs an observed batch by moment matching on the
// first moment tanh(loc), inverting through atanh at the end.
func (l *Ising[B]) OnlineParamUpdate(data *tensor.Tensor[float32, B]) error {
	if err := checkData(data, l.numUnits); err != nil {
		return err
	}

	n := data.Shape()[0]
	total := l.sampleSize + n

	x := l.loc.Tensor().Tanh().MulScalar(float32(l.sampleSize) / float32(total))
	x = x.Add(data.MeanDim(0, false).MulScalar(float32(n) / float32(total)))

	// Guard the atanh domain against saturated batches.
	l.loc.Replace(x.Clip(-1+epsilon, 1-epsilon).Atanh())
	l.sampleSize = total
	return nil
}

// ShrinkParameters is a no-op: the Ising layer has no scale parameter.
func (l *Ising[B]) ShrinkParameters(float32) {}

// Update recomputes the extrinsic field from the connected layer's state
// and the coupling matrix.
func (l *Ising[B]) Update(scaledUnits, weights, beta *tensor.Tensor[float32, B]) {
	field := scaledUnits.MatMul(weights)
	if beta != nil {
		field = field.Mul(beta)
	}
	l.field = field.Add(l.loc.Tensor())
}

// Derivatives computes the data-side gradient of the negative
// log-likelihood: d_loc = -mean_k x_k, plus registered penalty gradients.
func (l *Ising[B]) Derivatives(vis, hid, weights, beta *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B] {
	derivs := map[string]*tensor.Tensor[float32, B]{
		"loc": vis.MeanDim(0, false).MulScalar(-1),
	}
	l.addPenaltyGradients(derivs)
	return derivs
}

// Rescale is the identity for Ising units.
func (l *Ising[B]) Rescale(observations *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return observations
}

// Mode returns sign(field) mapped onto {-1, +1}.
func (l *Ising[B]) Mode() (*tensor.Tensor[float32, B], error) {
	field := l.ext()
	zeros := tensor.Zeros[float32](field.Shape(), l.backend)
	return tensor.Where(field.Greater(zeros), l.ones(field.Shape()), l.negOnes(field.Shape())), nil
}

// Mean returns tanh(field), the expected spin.
func (l *Ising[B]) Mean() *tensor.Tensor[float32, B] {
	return l.ext().Tanh()
}

// SampleState draws spins: +1 with probability logistic(field), else -1.
func (l *Ising[B]) SampleState() *tensor.Tensor[float32, B] {
	p := l.ext().Logistic()
	r := tensor.Rand[float32](p.Shape(), l.backend)
	return tensor.Where(r.Lower(p), l.ones(p.Shape()), l.negOnes(p.Shape()))
}

// Random draws an unconditioned fair spin state.
func (l *Ising[B]) Random(shape tensor.Shape) *tensor.Tensor[float32, B] {
	r := tensor.Rand[float32](shape, l.backend)
	half := tensor.Full[float32](shape, 0.5, l.backend)
	return tensor.Where(r.Lower(half), l.ones(shape), l.negOnes(shape))
}

func (l *Ising[B]) ones(shape tensor.Shape) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, l.backend)
}

func (l *Ising[B]) negOnes(shape tensor.Shape) *tensor.Tensor[float32, B] {
	return tensor.Full[float32](shape, -1, l.backend)
}

func (l *Ising[B]) ext() *tensor.Tensor[float32, B] {
	if l.field == nil {
		panic("ising: Update must be called before Mode/Mean/SampleState")
	}
	return l.field
}
