// Copyright 2025 Harmonium Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/harmonium-ml/harmonium/internal/backend/cpu"
	"github.com/harmonium-ml/harmonium/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.Clone() == nil {
		t.Error("Clone() returned nil")
	}
}

// TestPublicAPIRoundTrip exercises the aliased creation functions and
// method sugar end to end on the CPU backend.
func TestPublicAPIRoundTrip(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	y := x.AddScalar(1).MulScalar(2) // [4, 6, 8, 10]
	want := []float32{4, 6, 8, 10}
	for i, v := range y.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}

	mask := y.Greater(tensor.Full[float32](tensor.Shape{2, 2}, 5, backend))
	sel := tensor.Where(mask, y, tensor.Zeros[float32](tensor.Shape{2, 2}, backend))
	if sel.At(0, 0) != 0 || sel.At(1, 1) != 10 {
		t.Errorf("Where selection wrong: %v", sel.Data())
	}
}
