// Package tensor implements a row-major multi-dimensional array used to
// pack batches for the training consumer: shape/stride bookkeeping plus a
// ParallelForEach helper, generic over the numeric element types
// segpipe's output tensors need (float32 images, int32 dense targets,
// float32 one-hot targets, uint8 intermediate label planes).
package tensor

import (
	"runtime"
	"sync"

	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
)

// Numeric is the set of element types segpipe's tensors are built from.
type Numeric interface {
	~float32 | ~uint8 | ~int32
}

// Tensor is a row-major contiguous array of T with a fixed-rank shape.
// It is not internally synchronized: a Tensor is built once by a single
// prefetch worker and handed to the consumer by move, so per-element
// locking would only add overhead on a path that is already
// single-writer.
type Tensor[T Numeric] struct {
	data    []T
	shape   []int
	strides []int
}

// New allocates a zero-filled tensor with the given shape.
func New[T Numeric](shape ...int) (*Tensor[T], error) {
	if len(shape) == 0 {
		return nil, segerrors.ErrInvalidNumClasses
	}
	size := 1
	strides := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] <= 0 {
			return nil, segerrors.ErrInvalidNumClasses
		}
		strides[i] = size
		size *= shape[i]
	}
	return &Tensor[T]{
		data:    make([]T, size),
		shape:   append([]int(nil), shape...),
		strides: strides,
	}, nil
}

// Shape returns the tensor's dimensions.
func (t *Tensor[T]) Shape() []int { return t.shape }

// Strides returns the per-dimension element strides.
func (t *Tensor[T]) Strides() []int { return t.strides }

// Data returns the underlying flat backing slice.
func (t *Tensor[T]) Data() []T { return t.data }

func (t *Tensor[T]) index(idx []int) int {
	off := 0
	for i, v := range idx {
		off += v * t.strides[i]
	}
	return off
}

// At returns the value at idx.
func (t *Tensor[T]) At(idx ...int) T {
	return t.data[t.index(idx)]
}

// Set assigns value at idx.
func (t *Tensor[T]) Set(value T, idx ...int) {
	t.data[t.index(idx)] = value
}

// Fill sets every element to value.
func (t *Tensor[T]) Fill(value T) {
	for i := range t.data {
		t.data[i] = value
	}
}

// Reshape returns a new Tensor over a copy of this tensor's data with a
// different shape of the same total element count.
func (t *Tensor[T]) Reshape(shape ...int) (*Tensor[T], error) {
	size := 1
	for _, dim := range shape {
		if dim <= 0 {
			return nil, segerrors.ErrInvalidNumClasses
		}
		size *= dim
	}
	if size != len(t.data) {
		return nil, ErrInvalidReshape
	}
	out, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	copy(out.data, t.data)
	return out, nil
}

// ScrubNaN replaces any NaN float value with 0. A no-op for non-float
// element types.
func (t *Tensor[T]) ScrubNaN() {
	for i, v := range t.data {
		if isNaN(v) {
			t.data[i] = 0
		}
	}
}

func isNaN[T Numeric](v T) bool {
	f := float64(v)
	return f != f
}

// Row returns the flat slice for batch element b's sub-tensor, i.e. the
// slice t.data[b*stride0 : (b+1)*stride0]. Panics if len(shape) == 0.
func (t *Tensor[T]) Row(b int) []T {
	stride0 := t.strides[0]
	start := b * stride0
	return t.data[start : start+stride0]
}

// ParallelForEach runs fn(b) for every index along the tensor's leading
// (batch) dimension using up to runtime.NumCPU() goroutines, the grain
// segpipe actually parallelizes over.
func (t *Tensor[T]) ParallelForEach(fn func(b int)) {
	if len(t.shape) == 0 {
		return
	}
	n := t.shape[0]
	workers := min(runtime.NumCPU(), n)
	if workers <= 1 {
		for b := 0; b < n; b++ {
			fn(b)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for b := start; b < end; b++ {
				fn(b)
			}
		}(start, end)
	}
	wg.Wait()
}
