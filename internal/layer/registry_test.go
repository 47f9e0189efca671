package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonium-ml/harmonium/internal/backend/cpu"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"gaussian", KindGaussian},
		{"GAUSSIAN", KindGaussian},
		{"gauss_layer", KindGaussian},
		{"ising", KindIsing},
		{"Ising", KindIsing},
		{"bernoulli", KindBernoulli},
		{"bern", KindBernoulli},
		{"exponential", KindExponential},
		{"expo", KindExponential},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		require.NoError(t, err, "name %q", tt.name)
		assert.Equal(t, tt.want, got, "name %q", tt.name)
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("quux")
	require.ErrorIs(t, err, ErrUnknownLayerKind)
	assert.Contains(t, err.Error(), "quux")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "gaussian", KindGaussian.String())
	assert.Equal(t, "ising", KindIsing.String())
	assert.Equal(t, "bernoulli", KindBernoulli.String())
	assert.Equal(t, "exponential", KindExponential.String())
}

func TestNewUnit(t *testing.T) {
	backend := cpu.New()

	assert.IsType(t, &Gaussian[cpuB]{}, NewUnit(KindGaussian, 3, backend))
	assert.IsType(t, &Ising[cpuB]{}, NewUnit(KindIsing, 3, backend))
	assert.IsType(t, &Bernoulli[cpuB]{}, NewUnit(KindBernoulli, 3, backend))
	assert.IsType(t, &Exponential[cpuB]{}, NewUnit(KindExponential, 3, backend))

	u := NewUnit(KindBernoulli, 5, backend)
	assert.Equal(t, 5, u.NumUnits())
	assert.Equal(t, 0, u.SampleSize())

	assert.Panics(t, func() { NewUnit(Kind(42), 3, backend) })
}

func TestNewUnitFromName(t *testing.T) {
	backend := cpu.New()

	u, err := NewUnitFromName[cpuB]("Gaussian", 4, backend)
	require.NoError(t, err)
	assert.IsType(t, &Gaussian[cpuB]{}, u)
	assert.Equal(t, 4, u.NumUnits())

	_, err = NewUnitFromName[cpuB]("spin glass", 4, backend)
	require.ErrorIs(t, err, ErrUnknownLayerKind)
}
