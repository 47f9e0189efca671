package tensor

import "fmt"

// DType is the generic constraint for tensor element types.
// Float32 is the conventional element type for layer math; Bool tensors
// carry comparison masks.
type DType interface {
	float32 | float64 | bool
}

// DataType is the runtime type tag of a RawTensor.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Bool
)

// String returns a human-readable type name.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Size returns the size of one element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
	default:
		panic(fmt.Sprintf("unknown dtype %d", int(dt)))
	}
}

// inferDataType maps a Go value to its DataType tag.
func inferDataType(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case bool:
		return Bool
	default:
		panic(fmt.Sprintf("unsupported element type %T", v))
	}
}

// Epsilon is the float32 machine epsilon. Layer math uses it wherever a
// ratio or log argument could reach zero.
const Epsilon = float32(1.1920929e-07)
