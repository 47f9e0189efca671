package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/harmonium-ml/harmonium/internal/backend/cpu"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

func TestGaussianEnergy(t *testing.T) {
	g := NewGaussian(2, cpu.New())
	copy(g.Parameters()[0].Tensor().Data(), []float32{1, -1})                   // loc
	copy(g.Parameters()[1].Tensor().Data(), []float32{0, float32(math.Log(4))}) // var = [1, 4]

	units := fromSlice(t, []float32{2, 1}, tensor.Shape{1, 2})
	energy := g.Energy(units)
	require.Equal(t, tensor.Shape{1}, energy.Shape())

	// 1/2 * mean([(2-1)^2/1, (1+1)^2/4]) = 1/2 * mean([1, 1]) = 0.5
	assert.InDelta(t, 0.5, float64(energy.At(0)), 1e-5)
}

func TestGaussianOnlineParamUpdate(t *testing.T) {
	g := NewGaussian(2, cpu.New())

	// unit 0: mean 2.5, population variance 1.25
	// unit 1: mean 5, population variance 25
	data := fromSlice(t, []float32{
		1, 0,
		2, 0,
		3, 10,
		4, 10,
	}, tensor.Shape{4, 2})

	require.NoError(t, g.OnlineParamUpdate(data))
	assert.Equal(t, 4, g.SampleSize())

	loc := g.Parameters()[0].Tensor()
	variance := g.Parameters()[1].Tensor().Exp()
	assert.InDelta(t, 2.5, float64(loc.At(0)), 1e-4)
	assert.InDelta(t, 5, float64(loc.At(1)), 1e-4)
	assert.InDelta(t, 1.25, float64(variance.At(0)), 1e-3)
	assert.InDelta(t, 25, float64(variance.At(1)), 1e-2)
}

func TestGaussianOnlineParamUpdatePartitionInvariance(t *testing.T) {
	data := fromSlice(t, []float32{
		1, 0,
		2, 0,
		3, 10,
		4, 10,
	}, tensor.Shape{4, 2})

	whole := NewGaussian(2, cpu.New())
	require.NoError(t, whole.OnlineParamUpdate(data))

	split := NewGaussian(2, cpu.New())
	first := fromSlice(t, []float32{1, 0, 2, 0}, tensor.Shape{2, 2})
	second := fromSlice(t, []float32{3, 10, 4, 10}, tensor.Shape{2, 2})
	require.NoError(t, split.OnlineParamUpdate(first))
	require.NoError(t, split.OnlineParamUpdate(second))

	assert.Equal(t, whole.SampleSize(), split.SampleSize())
	for p := range whole.Parameters() {
		a := whole.Parameters()[p].Tensor().Data()
		b := split.Parameters()[p].Tensor().Data()
		for i := range a {
			assert.InDelta(t, float64(a[i]), float64(b[i]), 1e-3,
				"parameter %q element %d", whole.Parameters()[p].Name(), i)
		}
	}
}

func TestGaussianDegenerateBatchKeepsVarianceFinite(t *testing.T) {
	g := NewGaussian(2, cpu.New())

	// Constant observations imply zero variance; the update must clamp
	// instead of producing log(0).
	data := fromSlice(t, []float32{3, 3, 3, 3}, tensor.Shape{2, 2})
	require.NoError(t, g.OnlineParamUpdate(data))

	for _, v := range g.Parameters()[1].Tensor().Data() {
		require.False(t, math.IsInf(float64(v), 0) || math.IsNaN(float64(v)))
	}
}

func TestGaussianShrinkParameters(t *testing.T) {
	g := NewGaussian(1, cpu.New())
	copy(g.Parameters()[1].Tensor().Data(), []float32{float32(math.Log(4))})

	g.ShrinkParameters(0.5)

	// (1-0.5)*4 + 0.5 = 2.5
	variance := g.Parameters()[1].Tensor().Exp()
	assert.InDelta(t, 2.5, float64(variance.At(0)), 1e-4)
}

func TestGaussianUpdateAndReadouts(t *testing.T) {
	g := NewGaussian(2, cpu.New())
	copy(g.Parameters()[0].Tensor().Data(), []float32{1, -1})

	scaled := fromSlice(t, []float32{0.5, 2, -0.5, 0}, tensor.Shape{2, 2})
	g.Update(scaled, identity(t, 2), nil)

	mean := g.Mean()
	require.Equal(t, tensor.Shape{2, 2}, mean.Shape())
	assert.InDelta(t, 1.5, float64(mean.At(0, 0)), 1e-5)
	assert.InDelta(t, 1, float64(mean.At(0, 1)), 1e-5)
	assert.InDelta(t, 0.5, float64(mean.At(1, 0)), 1e-5)
	assert.InDelta(t, -1, float64(mean.At(1, 1)), 1e-5)

	// The Gaussian mode is the mean.
	mode, err := g.Mode()
	require.NoError(t, err)
	for i := range mean.Data() {
		assert.Equal(t, mean.Data()[i], mode.Data()[i])
	}
}

func TestGaussianUpdateWithBeta(t *testing.T) {
	g := NewGaussian(2, cpu.New())

	scaled := fromSlice(t, []float32{1, 2, 1, 2}, tensor.Shape{2, 2})
	beta := fromSlice(t, []float32{1, 0.5}, tensor.Shape{2, 1})
	g.Update(scaled, identity(t, 2), beta)

	mean := g.Mean()
	assert.InDelta(t, 1, float64(mean.At(0, 0)), 1e-5)
	assert.InDelta(t, 2, float64(mean.At(0, 1)), 1e-5)
	assert.InDelta(t, 0.5, float64(mean.At(1, 0)), 1e-5)
	assert.InDelta(t, 1, float64(mean.At(1, 1)), 1e-5)
}

func TestGaussianRescale(t *testing.T) {
	g := NewGaussian(2, cpu.New())
	copy(g.Parameters()[1].Tensor().Data(), []float32{0, float32(math.Log(4))})

	obs := fromSlice(t, []float32{2, 8}, tensor.Shape{1, 2})
	scaled := g.Rescale(obs)
	assert.InDelta(t, 2, float64(scaled.At(0, 0)), 1e-5)
	assert.InDelta(t, 2, float64(scaled.At(0, 1)), 1e-5)
}

func TestGaussianDerivatives(t *testing.T) {
	backend := cpu.New()
	g := NewGaussian(2, backend)

	vis := tensor.Randn[float32](tensor.Shape{3, 2}, backend)
	hid := tensor.Randn[float32](tensor.Shape{3, 2}, backend)
	weights := tensor.Randn[float32](tensor.Shape{2, 2}, backend)

	derivs := g.Derivatives(vis, hid, weights, nil)
	require.Equal(t, tensor.Shape{2}, derivs["loc"].Shape())
	require.Equal(t, tensor.Shape{2}, derivs["log_var"].Shape())

	// At loc=0, var=1 the formulas reduce to plain moments.
	for i := 0; i < 2; i++ {
		var sumV, sumSq, sumCross float64
		for s := 0; s < 3; s++ {
			v := float64(vis.At(s, i))
			sumV += v
			sumSq += v * v
			var wh float64
			for j := 0; j < 2; j++ {
				wh += float64(weights.At(i, j)) * float64(hid.At(s, j))
			}
			sumCross += v * wh
		}
		assert.InDelta(t, -sumV/3, float64(derivs["loc"].At(i)), 1e-4)
		assert.InDelta(t, -0.5*sumSq/3+sumCross/3, float64(derivs["log_var"].At(i)), 1e-4)
	}
}

func TestGaussianSampleStateMoments(t *testing.T) {
	backend := cpu.New()
	g := NewGaussian(1, backend)
	copy(g.Parameters()[0].Tensor().Data(), []float32{1})
	copy(g.Parameters()[1].Tensor().Data(), []float32{float32(math.Log(4))})

	// Zero field: mean = loc = 1, variance = 4.
	g.Update(tensor.Zeros[float32](tensor.Shape{10000, 1}, backend), identity(t, 1), nil)
	draws := g.SampleState()
	require.Equal(t, tensor.Shape{10000, 1}, draws.Shape())

	samples := make([]float64, draws.NumElements())
	for i, v := range draws.Data() {
		samples[i] = float64(v)
	}
	assert.InDelta(t, 1, stat.Mean(samples, nil), 0.1)
	assert.InDelta(t, 4, stat.Variance(samples, nil), 0.3)
}

func TestGaussianReadoutBeforeUpdatePanics(t *testing.T) {
	g := NewGaussian(2, cpu.New())
	assert.Panics(t, func() { g.Mean() })
	assert.Panics(t, func() { g.SampleState() })
}
