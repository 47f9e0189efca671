package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/harmonium-ml/harmonium/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: inputs must be 2D, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimension mismatch: %v vs %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}
	checkFloat("matmul", a)

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := cpu.newResult("matmul", tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	}
	return result
}

// matmulFloat32 uses the cache-friendly ikj loop order.
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			v := a[i*k+l]
			if v == 0 {
				continue
			}
			row := b[l*n : (l+1)*n]
			out := c[i*n : (i+1)*n]
			for j, bv := range row {
				out[j] += v * bv
			}
		}
	}
}

func matmulFloat64(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			v := a[i*k+l]
			if v == 0 {
				continue
			}
			floats.AddScaled(c[i*n:(i+1)*n], v, b[l*n:(l+1)*n])
		}
	}
}

// Dot contracts against a vector.
//
// (K,)·(K,) -> scalar; (N, K)·(K,) -> (N,) row-wise.
func (cpu *CPUBackend) Dot(a, b *tensor.RawTensor) *tensor.RawTensor {
	if len(b.Shape()) != 1 {
		panic(fmt.Sprintf("dot: second argument must be 1D, got %v", b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("dot: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}
	checkFloat("dot", a)

	k := b.Shape()[0]
	switch len(a.Shape()) {
	case 1:
		if a.Shape()[0] != k {
			panic(fmt.Sprintf("dot: length mismatch: %v vs %v", a.Shape(), b.Shape()))
		}
		result := cpu.newResult("dot", tensor.Shape{}, a.DType())
		switch a.DType() {
		case tensor.Float32:
			result.AsFloat32()[0] = dotFloat32(a.AsFloat32(), b.AsFloat32())
		case tensor.Float64:
			result.AsFloat64()[0] = floats.Dot(a.AsFloat64(), b.AsFloat64())
		}
		return result
	case 2:
		if a.Shape()[1] != k {
			panic(fmt.Sprintf("dot: inner dimension mismatch: %v vs %v", a.Shape(), b.Shape()))
		}
		n := a.Shape()[0]
		result := cpu.newResult("dot", tensor.Shape{n}, a.DType())
		switch a.DType() {
		case tensor.Float32:
			src, vec, dst := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			for i := 0; i < n; i++ {
				dst[i] = dotFloat32(src[i*k:(i+1)*k], vec)
			}
		case tensor.Float64:
			src, vec, dst := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
			for i := 0; i < n; i++ {
				dst[i] = floats.Dot(src[i*k:(i+1)*k], vec)
			}
		}
		return result
	default:
		panic(fmt.Sprintf("dot: first argument must be 1D or 2D, got %v", a.Shape()))
	}
}

func dotFloat32(a, b []float32) float32 {
	var sum float32
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// Transpose permutes the tensor's dimensions. With no axes, reverses them.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: expected %d axes, got %d", ndim, len(axes)))
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		outShape[i] = shape[ax]
	}

	checkFloat("transpose", x)
	result := cpu.newResult("transpose", outShape, x.DType())

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	srcStrides := make([]int, ndim)
	for i, ax := range axes {
		srcStrides[i] = inStrides[ax]
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i := range dst {
			dst[i] = src[flatIndex(i, outStrides, srcStrides)]
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = src[flatIndex(i, outStrides, srcStrides)]
		}
	}
	return result
}

// BatchDot computes the per-sample bilinear form vis_k^T w hid_k in a
// single pass: result[k] = sum_ij vis[k,i] w[i,j] hid[k,j].
//
// vis: (N, K), w: (K, M), hid: (N, M) -> (N,).
func (cpu *CPUBackend) BatchDot(vis, w, hid *tensor.RawTensor) *tensor.RawTensor {
	n, k, m := batchShapes("batchdot", vis, w, hid)
	checkFloat("batchdot", vis)
	result := cpu.newResult("batchdot", tensor.Shape{n}, vis.DType())

	switch vis.DType() {
	case tensor.Float32:
		vs, ws, hs, dst := vis.AsFloat32(), w.AsFloat32(), hid.AsFloat32(), result.AsFloat32()
		for s := 0; s < n; s++ {
			hrow := hs[s*m : (s+1)*m]
			var sum float32
			for i := 0; i < k; i++ {
				v := vs[s*k+i]
				if v == 0 {
					continue
				}
				sum += v * dotFloat32(ws[i*m:(i+1)*m], hrow)
			}
			dst[s] = sum
		}
	case tensor.Float64:
		vs, ws, hs, dst := vis.AsFloat64(), w.AsFloat64(), hid.AsFloat64(), result.AsFloat64()
		for s := 0; s < n; s++ {
			hrow := hs[s*m : (s+1)*m]
			var sum float64
			for i := 0; i < k; i++ {
				if v := vs[s*k+i]; v != 0 {
					sum += v * floats.Dot(ws[i*m:(i+1)*m], hrow)
				}
			}
			dst[s] = sum
		}
	}
	return result
}

// BatchOuter computes the sample-summed outer product sum_k vis_k hid_k^T.
//
// vis: (N, K), hid: (N, M) -> (K, M).
func (cpu *CPUBackend) BatchOuter(vis, hid *tensor.RawTensor) *tensor.RawTensor {
	if len(vis.Shape()) != 2 || len(hid.Shape()) != 2 || vis.Shape()[0] != hid.Shape()[0] {
		panic(fmt.Sprintf("batchouter: want (N,K) and (N,M), got %v and %v", vis.Shape(), hid.Shape()))
	}
	if vis.DType() != hid.DType() {
		panic(fmt.Sprintf("batchouter: dtype mismatch: %s vs %s", vis.DType(), hid.DType()))
	}
	checkFloat("batchouter", vis)

	n, k, m := vis.Shape()[0], vis.Shape()[1], hid.Shape()[1]
	result := cpu.newResult("batchouter", tensor.Shape{k, m}, vis.DType())

	switch vis.DType() {
	case tensor.Float32:
		vs, hs, dst := vis.AsFloat32(), hid.AsFloat32(), result.AsFloat32()
		for s := 0; s < n; s++ {
			hrow := hs[s*m : (s+1)*m]
			for i := 0; i < k; i++ {
				v := vs[s*k+i]
				if v == 0 {
					continue
				}
				out := dst[i*m : (i+1)*m]
				for j, hv := range hrow {
					out[j] += v * hv
				}
			}
		}
	case tensor.Float64:
		vs, hs, dst := vis.AsFloat64(), hid.AsFloat64(), result.AsFloat64()
		for s := 0; s < n; s++ {
			hrow := hs[s*m : (s+1)*m]
			for i := 0; i < k; i++ {
				if v := vs[s*k+i]; v != 0 {
					floats.AddScaled(dst[i*m:(i+1)*m], v, hrow)
				}
			}
		}
	}
	return result
}

func batchShapes(op string, vis, w, hid *tensor.RawTensor) (n, k, m int) {
	if len(vis.Shape()) != 2 || len(w.Shape()) != 2 || len(hid.Shape()) != 2 {
		panic(fmt.Sprintf("%s: all inputs must be 2D, got %v, %v, %v", op, vis.Shape(), w.Shape(), hid.Shape()))
	}
	n, k = vis.Shape()[0], vis.Shape()[1]
	m = hid.Shape()[1]
	if w.Shape()[0] != k || w.Shape()[1] != m || hid.Shape()[0] != n {
		panic(fmt.Sprintf("%s: incompatible shapes vis %v, w %v, hid %v", op, vis.Shape(), w.Shape(), hid.Shape()))
	}
	if vis.DType() != w.DType() || w.DType() != hid.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s, %s, %s", op, vis.DType(), w.DType(), hid.DType()))
	}
	return n, k, m
}
