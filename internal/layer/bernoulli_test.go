package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonium-ml/harmonium/internal/backend/cpu"
	"github.com/harmonium-ml/harmonium/internal/tensor"
)

func logit(p float64) float64 { return math.Log(p) - math.Log1p(-p) }

func TestBernoulliEnergy(t *testing.T) {
	l := NewBernoulli(2, cpu.New())
	copy(l.Parameters()[0].Tensor().Data(), []float32{2, -1})

	units := fromSlice(t, []float32{1, 1, 0, 1}, tensor.Shape{2, 2})
	energy := l.Energy(units)

	// -(2 - 1)/2 = -0.5; -(0 - 1)/2 = 0.5
	assert.InDelta(t, -0.5, float64(energy.At(0)), 1e-5)
	assert.InDelta(t, 0.5, float64(energy.At(1)), 1e-5)
}

func TestBernoulliOnlineParamUpdate(t *testing.T) {
	l := NewBernoulli(2, cpu.New())

	// unit 0 is active 3/4 of the time; unit 1 never (saturated).
	data := fromSlice(t, []float32{
		1, 0,
		1, 0,
		1, 0,
		0, 0,
	}, tensor.Shape{4, 2})

	require.NoError(t, l.OnlineParamUpdate(data))
	assert.Equal(t, 4, l.SampleSize())

	loc := l.Parameters()[0].Tensor()
	assert.InDelta(t, logit(0.75), float64(loc.At(0)), 1e-4)
	require.False(t, math.IsInf(float64(loc.At(1)), 0))
	assert.Less(t, float64(loc.At(1)), -5.0)

	// With a zero field, Mean recovers the empirical activation rate.
	l.Update(tensor.Zeros[float32](tensor.Shape{1, 2}, cpu.New()), identity(t, 2), nil)
	assert.InDelta(t, 0.75, float64(l.Mean().At(0, 0)), 1e-4)
}

func TestBernoulliOnlineParamUpdatePartitionInvariance(t *testing.T) {
	data := fromSlice(t, []float32{1, 0, 0, 1, 1, 1, 0, 0}, tensor.Shape{4, 2})

	whole := NewBernoulli(2, cpu.New())
	require.NoError(t, whole.OnlineParamUpdate(data))

	split := NewBernoulli(2, cpu.New())
	require.NoError(t, split.OnlineParamUpdate(fromSlice(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})))
	require.NoError(t, split.OnlineParamUpdate(fromSlice(t, []float32{1, 1, 0, 0}, tensor.Shape{2, 2})))

	a := whole.Parameters()[0].Tensor().Data()
	b := split.Parameters()[0].Tensor().Data()
	for i := range a {
		assert.InDelta(t, float64(a[i]), float64(b[i]), 1e-3)
	}
}

func TestBernoulliLogPartitionGrowsWithField(t *testing.T) {
	l := NewBernoulli(1, cpu.New())

	lo := l.LogPartition(fromSlice(t, []float32{-1}, tensor.Shape{1}))
	hi := l.LogPartition(fromSlice(t, []float32{3}, tensor.Shape{1}))
	assert.Less(t, float64(lo.At(0)), float64(hi.At(0)))

	// softplus(0) = log 2 at zero bias and zero field.
	zero := l.LogPartition(fromSlice(t, []float32{0}, tensor.Shape{1}))
	assert.InDelta(t, math.Ln2, float64(zero.At(0)), 1e-5)
}

func TestBernoulliModeAndMean(t *testing.T) {
	l := NewBernoulli(2, cpu.New())

	scaled := fromSlice(t, []float32{1.5, -0.5}, tensor.Shape{1, 2})
	l.Update(scaled, identity(t, 2), nil)

	mode, err := l.Mode()
	require.NoError(t, err)
	assert.Equal(t, float32(1), mode.At(0, 0))
	assert.Equal(t, float32(0), mode.At(0, 1))

	mean := l.Mean()
	assert.InDelta(t, 1/(1+math.Exp(-1.5)), float64(mean.At(0, 0)), 1e-5)
	assert.InDelta(t, 1/(1+math.Exp(0.5)), float64(mean.At(0, 1)), 1e-5)
}

func TestBernoulliUpdateWithBeta(t *testing.T) {
	l := NewBernoulli(1, cpu.New())
	copy(l.Parameters()[0].Tensor().Data(), []float32{0.5})

	scaled := fromSlice(t, []float32{2, 2}, tensor.Shape{2, 1})
	beta := fromSlice(t, []float32{1, 0}, tensor.Shape{2, 1})
	l.Update(scaled, identity(t, 1), beta)

	mean := l.Mean()
	// Row 0: field = 2 + 0.5. Row 1: beta zero kills the coupling, leaving
	// only the bias.
	assert.InDelta(t, 1/(1+math.Exp(-2.5)), float64(mean.At(0, 0)), 1e-5)
	assert.InDelta(t, 1/(1+math.Exp(-0.5)), float64(mean.At(1, 0)), 1e-5)
}

func TestBernoulliSampleStateFrequency(t *testing.T) {
	backend := cpu.New()
	l := NewBernoulli(1, backend)
	copy(l.Parameters()[0].Tensor().Data(), []float32{1})

	l.Update(tensor.Zeros[float32](tensor.Shape{10000, 1}, backend), identity(t, 1), nil)
	draws := l.SampleState()

	var sum float64
	for _, v := range draws.Data() {
		require.True(t, v == 0 || v == 1, "got %v", v)
		sum += float64(v)
	}
	p := 1 / (1 + math.Exp(-1))
	assert.InDelta(t, p, sum/10000, 0.02)
}

func TestBernoulliRandomIsFairCoin(t *testing.T) {
	l := NewBernoulli(1, cpu.New())
	draws := l.Random(tensor.Shape{10000, 1})

	var sum float64
	for _, v := range draws.Data() {
		require.True(t, v == 0 || v == 1)
		sum += float64(v)
	}
	assert.InDelta(t, 0.5, sum/10000, 0.02)
}

func TestBernoulliReadoutBeforeUpdatePanics(t *testing.T) {
	l := NewBernoulli(2, cpu.New())
	assert.Panics(t, func() { l.SampleState() })
}
