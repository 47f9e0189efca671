package tensor

// Backend is the numeric capability contract the layer math is written
// against. A backend owns the actual computation; the layers stay portable
// across implementations as long as every operation below is honored.
//
// Conventions shared by all operations:
//   - Binary elementwise operations follow NumPy broadcasting rules.
//   - Operations return freshly allocated tensors; inputs are never mutated.
//   - Shape or dtype misuse is a programming error and panics. Analytic
//     domain violations (log of a non-positive value reached through layer
//     parameters) are the caller's responsibility and are not intercepted.
type Backend interface {
	// Elementwise binary operations (broadcasting).
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations.
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor
	Pow(x *RawTensor, exponent float64) *RawTensor
	Clip(x *RawTensor, low, high float64) *RawTensor

	// Elementwise transcendental and unary operations.
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Square(x *RawTensor) *RawTensor
	Reciprocal(x *RawTensor) *RawTensor
	Sign(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	Atanh(x *RawTensor) *RawTensor
	Logistic(x *RawTensor) *RawTensor // 1 / (1 + exp(-x))
	Logit(x *RawTensor) *RawTensor    // log(x / (1 - x))
	Softplus(x *RawTensor) *RawTensor // log(1 + exp(x))
	Logcosh(x *RawTensor) *RawTensor  // log(cosh(x))

	// Comparison operations (elementwise, broadcasting, bool result).
	Greater(a, b *RawTensor) *RawTensor
	Lower(a, b *RawTensor) *RawTensor

	// Where selects x where condition is true, y otherwise.
	Where(condition, x, y *RawTensor) *RawTensor

	// Linear algebra.
	//
	// MatMul: (M, K) @ (K, N) -> (M, N).
	// Dot: (K,)·(K,) -> scalar, or (N, K)·(K,) -> (N,) row-wise.
	// BatchDot: per-sample bilinear form v_k^T W h_k -> (N,).
	// BatchOuter: sample-summed outer product sum_k v_k h_k^T -> (K, M).
	MatMul(a, b *RawTensor) *RawTensor
	Dot(a, b *RawTensor) *RawTensor
	Transpose(x *RawTensor, axes ...int) *RawTensor
	BatchDot(vis, w, hid *RawTensor) *RawTensor
	BatchOuter(vis, hid *RawTensor) *RawTensor

	// Reductions. Sum/Max/Min/Any/All reduce over all elements; the Dim
	// variants reduce along one dimension (negative dims index from the
	// end).
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	VarDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Max(x *RawTensor) *RawTensor
	Min(x *RawTensor) *RawTensor
	Any(x *RawTensor) bool
	All(x *RawTensor) bool

	// Shape operations.
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
