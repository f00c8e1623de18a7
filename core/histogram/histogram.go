// Package histogram provides NDHistogram, a dense frequency table over a
// quantised integer coordinate space with one or three axes.
//
// The table is filled with Increment during training and then normalised
// exactly once. Normalize is deliberately not idempotent: a second call
// divides the already-normalised table by its new sum (about 1) or maximum,
// which shifts every value. Callers own the single-call contract.
package histogram

import (
	"fmt"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Dims is the declared dimensionality of a histogram.
type Dims int

const (
	// OneAxis indexes cells by a single coordinate.
	OneAxis Dims = 1
	// ThreeAxis indexes cells by three coordinates.
	ThreeAxis Dims = 3
)

// String returns "1D" or "3D".
func (d Dims) String() string {
	return fmt.Sprintf("%dD", int(d))
}

func (d Dims) valid() bool {
	return d == OneAxis || d == ThreeAxis
}

// NormPolicy selects the divisor used by Normalize.
type NormPolicy int

const (
	// NormSum divides by the sum of all cells, giving a probability mass function.
	NormSum NormPolicy = iota
	// NormMax divides by the largest cell, giving peak-relative values.
	NormMax
)

// NDHistogram is a dense table of size^dims cells. Cell (i, j, k) lives at
// offset i + j*size + k*size*size.
type NDHistogram struct {
	dims Dims
	size int
	data []float64
}

// New returns an all-zero histogram. It panics when dims is not OneAxis or
// ThreeAxis or size is not positive.
func New(dims Dims, size int) *NDHistogram {
	if !dims.valid() {
		panic(fmt.Sprintf("histogram: unsupported dimensionality %d", int(dims)))
	}
	if size < 1 {
		panic(fmt.Sprintf("histogram: axis size must be positive, got %d", size))
	}
	return &NDHistogram{
		dims: dims,
		size: size,
		data: make([]float64, cellCount(dims, size)),
	}
}

// FromData rebuilds a histogram from raw cells, e.g. after loading a saved model.
func FromData(dims Dims, size int, data []float64) (*NDHistogram, error) {
	if !dims.valid() {
		return nil, errors.NewValidationError("dims", "must be 1 or 3", int(dims))
	}
	if size < 1 {
		return nil, errors.NewValidationError("size", "must be positive", size)
	}
	if want := cellCount(dims, size); len(data) != want {
		return nil, errors.NewDimensionError("histogram.FromData", want, len(data), 0)
	}
	cells := make([]float64, len(data))
	copy(cells, data)
	return &NDHistogram{dims: dims, size: size, data: cells}, nil
}

func cellCount(dims Dims, size int) int {
	n := 1
	for i := 0; i < int(dims); i++ {
		n *= size
	}
	return n
}

// Dims returns the declared dimensionality.
func (h *NDHistogram) Dims() Dims { return h.dims }

// Size returns the number of buckets per axis.
func (h *NDHistogram) Size() int { return h.size }

// Len returns the total number of cells.
func (h *NDHistogram) Len() int { return len(h.data) }

// Data returns a copy of the cells in storage order.
func (h *NDHistogram) Data() []float64 {
	out := make([]float64, len(h.data))
	copy(out, h.data)
	return out
}

// offset panics on wrong arity or out-of-range coordinates: both are
// programming errors in the caller.
func (h *NDHistogram) offset(coords []int) int {
	if len(coords) != int(h.dims) {
		panic(fmt.Sprintf("histogram: %s histogram indexed with %d coordinates", h.dims, len(coords)))
	}
	off, stride := 0, 1
	for _, c := range coords {
		if c < 0 || c >= h.size {
			panic(fmt.Sprintf("histogram: coordinate %d out of range [0, %d)", c, h.size))
		}
		off += c * stride
		stride *= h.size
	}
	return off
}

// Increment adds one observation to the cell at coords.
func (h *NDHistogram) Increment(coords ...int) {
	h.data[h.offset(coords)]++
}

// At returns the value of the cell at coords. Unseen cells are zero.
func (h *NDHistogram) At(coords ...int) float64 {
	return h.data[h.offset(coords)]
}

// Sum returns the total of all cells.
func (h *NDHistogram) Sum() float64 {
	return floats.Sum(h.data)
}

// Max returns the largest cell value.
func (h *NDHistogram) Max() float64 {
	return floats.Max(h.data)
}

// Normalize divides every cell by Sum() (NormSum) or Max() (NormMax).
//
// Call it once. A second call is not rejected and rescales the table again.
// An all-zero table is left unchanged, so a class without observations keeps
// density 0 everywhere instead of NaN.
func (h *NDHistogram) Normalize(policy NormPolicy) {
	var norm float64
	switch policy {
	case NormMax:
		norm = h.Max()
	default:
		norm = h.Sum()
	}
	if norm == 0 {
		return
	}
	for i := range h.data {
		h.data[i] /= norm
	}
}
