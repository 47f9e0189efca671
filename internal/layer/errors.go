package layer

import "errors"

// Sentinel errors for the layer contracts. All are catchable with
// errors.Is; none are retried internally.
var (
	// ErrNoMode is returned by Mode on distributions without a mode
	// (Exponential).
	ErrNoMode = errors.New("distribution has no mode")

	// ErrUnknownLayerKind is returned when a layer-kind token matches no
	// known distribution family.
	ErrUnknownLayerKind = errors.New("unknown layer kind")

	// ErrUnknownParameter is returned when a delta, penalty or constraint
	// references a parameter name the layer does not have.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrShapeMismatch is returned when an argument disagrees with the
	// layer's unit count or a parameter's shape.
	ErrShapeMismatch = errors.New("shape mismatch")
)
