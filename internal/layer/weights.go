package layer

import (
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Weights couples two unit layers through a dense bilinear energy term.
// Its single intrinsic parameter is the coupling matrix, shape
// (numVisible, numHidden); there are no extrinsic parameters because the
// coupling does not depend on the state of anything else.
type Weights[B tensor.Backend] struct {
	base[B]
	matrix  *Parameter[B]
	backend B
}

// NewWeights creates a weight layer with a small-random-initialized
// coupling matrix (0.01 times standard normal draws).
func NewWeights[B tensor.Backend](numVisible, numHidden int, backend B) *Weights[B] {
	matrix := NewParameter("matrix", tensor.Randn[float32](tensor.Shape{numVisible, numHidden}, backend).MulScalar(0.01))
	return &Weights[B]{
		base:    newBase(matrix),
		matrix:  matrix,
		backend: backend,
	}
}

// W returns the coupling matrix.
func (w *Weights[B]) W() *tensor.Tensor[float32, B] {
	return w.matrix.Tensor()
}

// WT returns the transpose of the coupling matrix.
func (w *Weights[B]) WT() *tensor.Tensor[float32, B] {
	return w.matrix.Tensor().T()
}

// Energy computes the weight layer's contribution to the model energy:
// for sample k, E_k = -sum_ij W_ij vis_ki hid_kj.
//
// vis: (numSamples, numVisible) rescaled visible units.
// hid: (numSamples, numHidden) rescaled hidden units.
// Returns the per-sample energy, shape (numSamples,).
func (w *Weights[B]) Energy(vis, hid *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.BatchDot(vis, w.matrix.Tensor(), hid).MulScalar(-1)
}

// Derivatives computes the gradient with respect to the coupling matrix:
// the negative sample-mean outer product -1/n sum_k vis_k hid_k^T, plus
// any registered penalty gradient. The sign is the descent direction on
// energy, i.e. ascent on the correlation the weight should reinforce.
func (w *Weights[B]) Derivatives(vis, hid *tensor.Tensor[float32, B]) map[string]*tensor.Tensor[float32, B] {
	n := vis.Shape()[0]
	derivs := map[string]*tensor.Tensor[float32, B]{
		"matrix": tensor.BatchOuter(vis, hid).MulScalar(-1 / float32(n)),
	}
	w.addPenaltyGradients(derivs)
	return derivs
}
