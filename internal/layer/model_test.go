package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonium-ml/harmonium/internal/backend/cpu"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// A full contrastive-divergence step over a tiny Bernoulli-Bernoulli
// machine, exercising the whole protocol in order: moment-matching
// initialization, conditional updates through the coupling, derivative
// evaluation on the data and model phases, and the parameter steps.
func TestContrastiveDivergenceStep(t *testing.T) {
	backend := cpu.New()
	const (
		numVisible = 4
		numHidden  = 3
		numSamples = 6
		lr         = 0.1
	)

	visible := NewBernoulli(numVisible, backend)
	hidden := NewBernoulli(numHidden, backend)
	weights := NewWeights(numVisible, numHidden, backend)

	data := fromSlice(t, []float32{
		1, 1, 0, 0,
		1, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 1, 1, 1,
	}, tensor.Shape{numSamples, numVisible})

	// Initialize the visible bias from the data before any gradient step.
	require.NoError(t, visible.OnlineParamUpdate(data))
	assert.Equal(t, numSamples, visible.SampleSize())

	// Positive phase: drive the hidden layer from the observed units.
	hidden.Update(visible.Rescale(data), weights.W(), nil)
	hidMean := hidden.Mean()
	require.Equal(t, tensor.Shape{numSamples, numHidden}, hidMean.Shape())

	posVis := visible.Derivatives(data, hidMean, weights.W(), nil)
	posHid := hidden.Derivatives(hidMean, data, weights.WT(), nil)
	posW := weights.Derivatives(visible.Rescale(data), hidden.Rescale(hidMean))

	// Negative phase: one step of block Gibbs sampling.
	hidSample := hidden.SampleState()
	visible.Update(hidden.Rescale(hidSample), weights.WT(), nil)
	visModel := visible.SampleState()
	hidden.Update(visible.Rescale(visModel), weights.W(), nil)
	hidModel := hidden.Mean()

	negVis := visible.Derivatives(visModel, hidModel, weights.W(), nil)
	negHid := hidden.Derivatives(hidModel, visModel, weights.WT(), nil)
	negW := weights.Derivatives(visible.Rescale(visModel), hidden.Rescale(hidModel))

	// Gradient = positive phase minus negative phase, scaled into a step.
	step := func(pos, neg map[string]*tensor.Tensor[float32, cpuB]) map[string]*tensor.Tensor[float32, cpuB] {
		out := make(map[string]*tensor.Tensor[float32, cpuB], len(pos))
		for name := range pos {
			out[name] = pos[name].Sub(neg[name]).MulScalar(lr)
		}
		return out
	}

	wBefore := weights.W().Clone()
	require.NoError(t, visible.ParameterStep(step(posVis, negVis)))
	require.NoError(t, hidden.ParameterStep(step(posHid, negHid)))
	require.NoError(t, weights.ParameterStep(step(posW, negW)))

	// Parameters moved and stayed finite. The weight gradient contrasts
	// continuous hidden means between the two phases, so an exactly zero
	// step is not possible here.
	moved := false
	for i, v := range weights.W().Data() {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
		if v != wBefore.Data()[i] {
			moved = true
		}
	}
	assert.True(t, moved, "weights did not move")

	for _, v := range visible.Parameters()[0].Tensor().Data() {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
	}

	// Energies of the joint state remain finite after the step.
	hidden.Update(visible.Rescale(data), weights.W(), nil)
	state := hidden.SampleState()
	total := visible.Energy(data).
		Add(hidden.Energy(state)).
		Add(weights.Energy(visible.Rescale(data), hidden.Rescale(state)))
	for _, v := range total.Data() {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
	}
}

// Tempered sampling: beta scales the coupling per sample without touching
// the bias, so a zero-beta row reduces to the bias-only distribution.
func TestTemperedUpdateDecouplesSamples(t *testing.T) {
	backend := cpu.New()
	hidden := NewBernoulli(2, backend)
	copy(hidden.Parameters()[0].Tensor().Data(), []float32{0.3, -0.3})

	weights := NewWeights(2, 2, backend)
	vis := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})
	beta := fromSlice(t, []float32{0, 1}, tensor.Shape{2, 1})

	hidden.Update(vis, weights.W(), beta)
	mean := hidden.Mean()

	// Row 0 sees no coupling at all.
	assert.InDelta(t, 1/(1+math.Exp(-0.3)), float64(mean.At(0, 0)), 1e-5)
	assert.InDelta(t, 1/(1+math.Exp(0.3)), float64(mean.At(0, 1)), 1e-5)
}
