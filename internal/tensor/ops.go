package tensor

// Method sugar over the Backend contract. Every method allocates a fresh
// result; see the Backend documentation for broadcasting and panic rules.

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Div(t.raw, other.raw), t.backend)
}

// AddScalar adds a scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.AddScalar(t.raw, scalar), t.backend)
}

// SubScalar subtracts a scalar from every element.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.SubScalar(t.raw, scalar), t.backend)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.MulScalar(t.raw, scalar), t.backend)
}

// DivScalar divides every element by a scalar.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.DivScalar(t.raw, scalar), t.backend)
}

// Pow raises every element to the given power.
func (t *Tensor[T, B]) Pow(exponent float64) *Tensor[T, B] {
	return New[T, B](t.backend.Pow(t.raw, exponent), t.backend)
}

// Clip clamps every element into [low, high].
func (t *Tensor[T, B]) Clip(low, high float64) *Tensor[T, B] {
	return New[T, B](t.backend.Clip(t.raw, low, high), t.backend)
}

// Exp computes the element-wise exponential.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return New[T, B](t.backend.Exp(t.raw), t.backend)
}

// Log computes the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return New[T, B](t.backend.Log(t.raw), t.backend)
}

// Sqrt computes the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return New[T, B](t.backend.Sqrt(t.raw), t.backend)
}

// Square computes the element-wise square.
func (t *Tensor[T, B]) Square() *Tensor[T, B] {
	return New[T, B](t.backend.Square(t.raw), t.backend)
}

// Reciprocal computes 1/x element-wise.
func (t *Tensor[T, B]) Reciprocal() *Tensor[T, B] {
	return New[T, B](t.backend.Reciprocal(t.raw), t.backend)
}

// Sign computes the element-wise sign (-1, 0, +1).
func (t *Tensor[T, B]) Sign() *Tensor[T, B] {
	return New[T, B](t.backend.Sign(t.raw), t.backend)
}

// Tanh computes the element-wise hyperbolic tangent.
func (t *Tensor[T, B]) Tanh() *Tensor[T, B] {
	return New[T, B](t.backend.Tanh(t.raw), t.backend)
}

// Atanh computes the element-wise inverse hyperbolic tangent.
func (t *Tensor[T, B]) Atanh() *Tensor[T, B] {
	return New[T, B](t.backend.Atanh(t.raw), t.backend)
}

// Logistic computes the element-wise logistic function 1/(1+exp(-x)).
func (t *Tensor[T, B]) Logistic() *Tensor[T, B] {
	return New[T, B](t.backend.Logistic(t.raw), t.backend)
}

// Logit computes the element-wise log-odds log(x/(1-x)).
func (t *Tensor[T, B]) Logit() *Tensor[T, B] {
	return New[T, B](t.backend.Logit(t.raw), t.backend)
}

// Softplus computes the element-wise log(1+exp(x)).
func (t *Tensor[T, B]) Softplus() *Tensor[T, B] {
	return New[T, B](t.backend.Softplus(t.raw), t.backend)
}

// Logcosh computes the element-wise log(cosh(x)).
func (t *Tensor[T, B]) Logcosh() *Tensor[T, B] {
	return New[T, B](t.backend.Logcosh(t.raw), t.backend)
}

// Greater compares element-wise: t > other.
func (t *Tensor[T, B]) Greater(other *Tensor[T, B]) *Tensor[bool, B] {
	return New[bool, B](t.backend.Greater(t.raw, other.raw), t.backend)
}

// Lower compares element-wise: t < other.
func (t *Tensor[T, B]) Lower(other *Tensor[T, B]) *Tensor[bool, B] {
	return New[bool, B](t.backend.Lower(t.raw, other.raw), t.backend)
}

// Where selects x where condition is true and y otherwise.
func Where[T DType, B Backend](condition *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](x.Backend().Where(condition.Raw(), x.Raw(), y.Raw()), x.Backend())
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Dot contracts against a vector: (K,)·(K,) -> scalar, (N, K)·(K,) -> (N,).
func (t *Tensor[T, B]) Dot(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Dot(t.raw, other.raw), t.backend)
}

// Transpose permutes the tensor's dimensions. With no axes, reverses them.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Transpose(t.raw, axes...), t.backend)
}

// T is a shortcut for 2D transpose. Panics if the tensor is not 2D.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// BatchDot computes the per-sample bilinear form vis_k^T w hid_k.
//
// vis: (N, K), w: (K, M), hid: (N, M) -> result (N,).
func BatchDot[T DType, B Backend](vis, w, hid *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](vis.Backend().BatchDot(vis.Raw(), w.Raw(), hid.Raw()), vis.Backend())
}

// BatchOuter computes the sample-summed outer product sum_k vis_k hid_k^T.
//
// vis: (N, K), hid: (N, M) -> result (K, M).
func BatchOuter[T DType, B Backend](vis, hid *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](vis.Backend().BatchOuter(vis.Raw(), hid.Raw()), vis.Backend())
}

// Sum reduces all elements to a scalar tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return New[T, B](t.backend.Sum(t.raw), t.backend)
}

// SumDim sums along one dimension.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}

// MeanDim averages along one dimension.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.MeanDim(t.raw, dim, keepDim), t.backend)
}

// VarDim computes the population variance along one dimension.
func (t *Tensor[T, B]) VarDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.VarDim(t.raw, dim, keepDim), t.backend)
}

// Max reduces all elements to their maximum.
func (t *Tensor[T, B]) Max() *Tensor[T, B] {
	return New[T, B](t.backend.Max(t.raw), t.backend)
}

// Min reduces all elements to their minimum.
func (t *Tensor[T, B]) Min() *Tensor[T, B] {
	return New[T, B](t.backend.Min(t.raw), t.backend)
}

// Any reports whether any element of a bool tensor is true.
// Panics if the tensor's dtype is not Bool.
func (t *Tensor[T, B]) Any() bool {
	return t.backend.Any(t.raw)
}

// All reports whether every element of a bool tensor is true.
// Panics if the tensor's dtype is not Bool.
func (t *Tensor[T, B]) All() bool {
	return t.backend.All(t.raw)
}

// Reshape returns a tensor with the same data but a different shape.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Expand broadcasts the tensor to a larger shape.
func (t *Tensor[T, B]) Expand(shape Shape) *Tensor[T, B] {
	return New[T, B](t.backend.Expand(t.raw, shape), t.backend)
}
