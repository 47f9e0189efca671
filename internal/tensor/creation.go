package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // shape validation should prevent this
	}
	// make() already zero-initialized the buffer
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, one[T](), b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Rand creates a tensor with values drawn uniformly from [0, 1).
// Only float types are supported.
// Note: math/rand, not crypto/rand - statistical sampling, by convention
// reproducible through rand.Seed.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	fillFloat(t, func() float64 { return rand.Float64() }) //nolint:gosec // G404: statistical sampling
	return t
}

// Randn creates a tensor with standard-normal draws (mean 0, std 1).
// Only float types are supported.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	fillFloat(t, distuv.UnitNormal.Rand)
	return t
}

func fillFloat[T DType, B Backend](t *Tensor[T, B], draw func() float64) {
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(draw())
		}
	case []float64:
		for i := range data {
			data[i] = draw()
		}
	default:
		panic("random fill only supports float32 and float64 tensors")
	}
}

func one[T DType]() T {
	var dummy T
	var v any
	switch any(dummy).(type) {
	case float32:
		v = float32(1)
	case float64:
		v = float64(1)
	case bool:
		v = true
	}
	return v.(T)
}
