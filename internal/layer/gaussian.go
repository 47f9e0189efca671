package layer

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Gaussian is a layer of real-valued units with a Gaussian conditional
// distribution. Intrinsic parameters: "loc" (per-unit mean) and "log_var"
// (per-unit log variance, kept in log space so gradient steps cannot make
// the variance negative).
type Gaussian[B tensor.Backend] struct {
	base[B]
	numUnits   int
	sampleSize int
	loc        *Parameter[B]
	logVar     *Parameter[B]

	// Extrinsic parameters, valid only after Update.
	mean     *tensor.Tensor[float32, B]
	variance *tensor.Tensor[float32, B]

	backend B
}

// NewGaussian creates a Gaussian layer with zero-initialized parameters
// (unit variance).
func NewGaussian[B tensor.Backend](numUnits int, backend B) *Gaussian[B] {
	loc := NewParameter("loc", tensor.Zeros[float32](tensor.Shape{numUnits}, backend))
	logVar := NewParameter("log_var", tensor.Zeros[float32](tensor.Shape{numUnits}, backend))
	return &Gaussian[B]{
		base:     newBase(loc, logVar),
		numUnits: numUnits,
		loc:      loc,
		logVar:   logVar,
		backend:  backend,
	}
}

// NumUnits returns the fixed size of the layer.
func (l *Gaussian[B]) NumUnits() int { return l.numUnits }

// SampleSize returns the number of observations absorbed so far.
func (l *Gaussian[B]) SampleSize() int { return l.sampleSize }

// Energy computes, for each sample k,
// E_k = 1/2 mean_i (v_ki - loc_i)^2 / var_i.
func (l *Gaussian[B]) Energy(units *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := units.Sub(l.loc.Tensor())
	return diff.Square().Div(l.logVar.Tensor().Exp()).MeanDim(1, false).MulScalar(0.5)
}

// LogPartition computes the per-unit log partition function under the
// external field phi:
//
//	log Z_i = loc_i phi_i + var_i phi_i^2 / 2 + log(var_i)
//
// so that d(log Z_i)/d(phi_i) recovers the conditional mean.
// Precondition: var_i > 0, guaranteed by the log-space parameterization.
func (l *Gaussian[B]) LogPartition(phi *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	variance := l.logVar.Tensor().Exp()
	logZ := phi.Mul(l.loc.Tensor())
	logZ = logZ.Add(phi.Square().Mul(variance).MulScalar(0.5))
	return logZ.Add(variance.Log())
}

// OnlineParamUpdate absorbs an observed batch by moment matching. The
// running first and second moments are accumulated in moment space with
// weights proportional to the sample counts, and log_var is recovered by
// inversion only at the end; accumulating the transformed parameter
// directly would not converge to the maximum-likelihood estimate.
func (l *Gaussian[B]) OnlineParamUpdate(data *tensor.Tensor[float32, B]) error {
	if err := checkData(data, l.numUnits); err != nil {
		return err
	}

	n := data.Shape()[0]
	total := l.sampleSize + n
	wPrev := float32(l.sampleSize) / float32(total)
	wBatch := float32(n) / float32(total)

	// Current second moment E[x^2] = var + loc^2.
	x2 := l.logVar.Tensor().Exp().Add(l.loc.Tensor().Square())

	loc := l.loc.Tensor().MulScalar(wPrev).Add(data.MeanDim(0, false).MulScalar(wBatch))
	x2 = x2.MulScalar(wPrev).Add(data.Square().MeanDim(0, false).MulScalar(wBatch))

	// Guard the log domain: a degenerate batch can make the implied
	// variance collapse to zero.
	variance := x2.Sub(loc.Square()).Clip(epsilon, maxFloat64)

	l.loc.Replace(loc)
	l.logVar.Replace(variance.Log())
	l.sampleSize = total
	return nil
}

// ShrinkParameters mixes the variance toward 1:
// var <- (1-shrinkage) var + shrinkage.
func (l *Gaussian[B]) ShrinkParameters(shrinkage float32) {
	variance := l.logVar.Tensor().Exp().MulScalar(1 - shrinkage).AddScalar(shrinkage)
	l.logVar.Replace(variance.Log())
}

// Update recomputes the extrinsic mean and variance from the connected
// layer's rescaled state and the coupling matrix.
func (l *Gaussian[B]) Update(scaledUnits, weights, beta *tensor.Tensor[float32, B]) {
	field := scaledUnits.MatMul(weights)
	if beta != nil {
		field = field.Mul(beta)
	}
	l.mean = field.Add(l.loc.Tensor())
	l.variance = l.logVar.Tensor().Exp().Expand(l.mean.Shape())
}

// Derivatives computes the data-side gradients of the negative
// log-likelihood:
//
//	d_loc_i     = -mean_k (v_ki / var_i)
//	d_logvar_i  = [-1/2 mean_k (v_ki - loc_i)^2 + 1/n sum_k v_ki (W h_k)_i] / var_i
//
// The cross term enters because the Gaussian natural parameter also scales
// the weight coupling. Registered penalty gradients are added elementwise.
func (l *Gaussian[B]) Derivatives(vis, hid, weights, beta *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B] {
	variance := l.logVar.Tensor().Exp()

	dLoc := l.Rescale(vis).MeanDim(0, false).MulScalar(-1)

	dLogVar := vis.Sub(l.loc.Tensor()).Square().MeanDim(0, false).MulScalar(-0.5)
	cross := hid.MatMul(weights.T()).Mul(vis).MeanDim(0, false)
	dLogVar = dLogVar.Add(cross).Div(variance)

	derivs := map[string]*tensor.Tensor[float32, B]{
		"loc":     dLoc,
		"log_var": dLogVar,
	}
	l.addPenaltyGradients(derivs)
	return derivs
}

// Rescale divides observations by the per-unit variance, the scale used in
// the weight coupling for Gaussian units.
func (l *Gaussian[B]) Rescale(observations *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return observations.Div(l.logVar.Tensor().Exp())
}

// Mode returns the most probable state, which for a Gaussian is the mean.
func (l *Gaussian[B]) Mode() (*tensor.Tensor[float32, B], error) {
	return l.ext(), nil
}

// Mean returns the conditional mean under the current field.
func (l *Gaussian[B]) Mean() *tensor.Tensor[float32, B] {
	return l.ext()
}

// SampleState draws mean + sqrt(variance) * N(0, 1).
func (l *Gaussian[B]) SampleState() *tensor.Tensor[float32, B] {
	r := tensor.Randn[float32](l.ext().Shape(), l.backend)
	return l.mean.Add(l.variance.Sqrt().Mul(r))
}

// Random draws an unconditioned standard-normal state.
func (l *Gaussian[B]) Random(shape tensor.Shape) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, l.backend)
}

func (l *Gaussian[B]) ext() *tensor.Tensor[float32, B] {
	if l.mean == nil {
		panic("gaussian: Update must be called before Mode/Mean/SampleState")
	}
	return l.mean
}
