package layer

import (
	"fmt"
	"strings"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// Kind identifies one of the closed set of unit-layer variants. It is
// resolved from configuration strings once, by ParseKind; construction
// from a Kind cannot fail.
type Kind int

const (
	KindGaussian Kind = iota
	KindIsing
	KindBernoulli
	KindExponential
)

func (k Kind) String() string {
	switch k {
	case KindGaussian:
		return "gaussian"
	case KindIsing:
		return "ising"
	case KindBernoulli:
		return "bernoulli"
	case KindExponential:
		return "exponential"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a configuration string to a layer kind. Matching is
// case-insensitive and accepts any name containing a recognized fragment
// ("gauss", "ising", "bern", "expo"), so "GAUSSIAN" and "gauss_layer"
// both resolve. Fragments are checked in a fixed order; an ambiguous name
// resolves to the first match.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "gauss"):
		return KindGaussian, nil
	case strings.Contains(lower, "ising"):
		return KindIsing, nil
	case strings.Contains(lower, "bern"):
		return KindBernoulli, nil
	case strings.Contains(lower, "expo"):
		return KindExponential, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayerKind, name)
}

// NewUnit constructs a unit layer of the given kind with zero-initialized
// intrinsic parameters.
func NewUnit[B tensor.Backend](kind Kind, numUnits int, backend B) Unit[B] {
	switch kind {
	case KindGaussian:
		return NewGaussian(numUnits, backend)
	case KindIsing:
		return NewIsing(numUnits, backend)
	case KindBernoulli:
		return NewBernoulli(numUnits, backend)
	case KindExponential:
		return NewExponential(numUnits, backend)
	}
	panic(fmt.Sprintf("layer: invalid kind %d", int(kind)))
}

// NewUnitFromName resolves a configuration string with ParseKind and
// constructs the layer in one step.
func NewUnitFromName[B tensor.Backend](name string, numUnits int, backend B) (Unit[B], error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return NewUnit(kind, numUnits, backend), nil
}
