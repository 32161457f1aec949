// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ddim provides DDim, the shape of a tensor with a number of
// axes between 1 and MaxRank.
//
// The number of axes of a DDim is selected when it is created and never
// changes. Operations producing a shape with a different number of axes
// (slicing, concatenation) return a new DDim.
//
// A DDim is a value: copying it copies all its extents. Reading distinct
// DDim values from different goroutines is safe. Mutating the same DDim
// from several goroutines, using SetAxis or Ref, requires external
// synchronization.
package ddim

import (
	"iter"
	"math"
	"math/bits"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// MaxRank is the maximum number of axes of a DDim.
const MaxRank = 9

// DDim is a dynamic dimension: a tuple of 1 to MaxRank extents.
//
// The zero value has no axis and is not a valid shape.
// It is only returned alongside an error.
type DDim struct {
	rank    int
	extents [MaxRank]int
}

// Make returns a DDim with the given extents.
// The number of axes of the DDim is len(extents).
func Make(extents []int) (DDim, error) {
	if len(extents) == 0 || len(extents) > MaxRank {
		return DDim{}, errors.Wrapf(ErrInvalidArity, "cannot create a shape from %d extents", len(extents))
	}
	d := DDim{rank: len(extents)}
	copy(d.extents[:], extents)
	return d, nil
}

// New returns a DDim from a literal list of extents.
func New(extents ...int) (DDim, error) {
	return Make(extents)
}

// MustNew returns a DDim from a literal list of extents.
// It panics if the number of extents is invalid.
func MustNew(extents ...int) DDim {
	d, err := Make(extents)
	if err != nil {
		panic(err)
	}
	return d
}

// Rank returns the number of axes.
func (d DDim) Rank() int {
	return d.rank
}

// Arity returns the number of axes of a shape.
func Arity(d DDim) int {
	return d.rank
}

func (d DDim) checkAxis(idx int) error {
	if idx < 0 || idx >= d.rank {
		return errors.Wrapf(ErrIndexOutOfRange, "axis %d out of range for shape %s of rank %d", idx, d, d.rank)
	}
	return nil
}

// Axis returns the extent of an axis.
func (d DDim) Axis(idx int) (int, error) {
	if err := d.checkAxis(idx); err != nil {
		return 0, err
	}
	return d.extents[idx], nil
}

// SetAxis sets the extent of an axis.
func (d *DDim) SetAxis(idx, value int) error {
	if err := d.checkAxis(idx); err != nil {
		return err
	}
	d.extents[idx] = value
	return nil
}

// Ref returns the storage of the extent of an axis.
// The pointer is valid as long as d is.
func (d *DDim) Ref(idx int) (*int, error) {
	if err := d.checkAxis(idx); err != nil {
		return nil, err
	}
	return &d.extents[idx], nil
}

// Get returns the extent of axis idx of d.
func Get(d DDim, idx int) (int, error) {
	return d.Axis(idx)
}

// Set the extent of axis idx of d.
func Set(d *DDim, idx, value int) error {
	return d.SetAxis(idx, value)
}

// Equal returns true if both shapes have the same number of axes
// and the same extents.
func (d DDim) Equal(other DDim) bool {
	if d.rank != other.rank {
		return false
	}
	for i := range d.rank {
		if d.extents[i] != other.extents[i] {
			return false
		}
	}
	return true
}

// Equal returns true if a and b are equal.
func Equal(a, b DDim) bool {
	return a.Equal(b)
}

// NotEqual returns true if a and b are different.
func NotEqual(a, b DDim) bool {
	return !a.Equal(b)
}

func elementwise(name string, a, b DDim, f func(x, y int) int) (DDim, error) {
	if a.rank != b.rank {
		return DDim{}, errors.Wrapf(ErrArityMismatch, "cannot %s shape %s of rank %d and shape %s of rank %d", name, a, a.rank, b, b.rank)
	}
	va, vb := a.Vectorize(), b.Vectorize()
	vc := make([]int, len(va))
	for i := range va {
		vc[i] = f(va[i], vb[i])
	}
	return Make(vc)
}

// Add returns the element-wise sum of two shapes with the same number of axes.
func Add(a, b DDim) (DDim, error) {
	return elementwise("add", a, b, func(x, y int) int { return x + y })
}

// Multiply returns the element-wise product of two shapes with the same number of axes.
func Multiply(a, b DDim) (DDim, error) {
	return elementwise("multiply", a, b, func(x, y int) int { return x * y })
}

// Vectorize returns the extents of the shape, first axis first.
// The returned slice is a copy.
func (d DDim) Vectorize() []int {
	return slices.Clone(d.extents[:d.rank])
}

// Vectorize returns the extents of a shape.
func Vectorize(d DDim) []int {
	return d.Vectorize()
}

// All iterates over the (axis, extent) pairs of the shape.
func (d DDim) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := range d.rank {
			if !yield(i, d.extents[i]) {
				return
			}
		}
	}
}

// Product returns the product of all the extents, that is the number of
// elements of a tensor with that shape.
// The computation silently wraps around on overflow: use CheckedProduct
// for shapes coming from untrusted sources.
func (d DDim) Product() int64 {
	prod := int64(1)
	for _, extent := range d.All() {
		prod *= int64(extent)
	}
	return prod
}

// Product returns the product of all the extents of d.
func Product(d DDim) int64 {
	return d.Product()
}

// CheckedProduct returns the product of all the extents.
// It returns an error if an extent is negative or if the product overflows.
func (d DDim) CheckedProduct() (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	prod := uint64(1)
	for axis, extent := range d.All() {
		hi, lo := bits.Mul64(prod, uint64(extent))
		if hi != 0 || lo > math.MaxInt64 {
			return 0, errors.Wrapf(ErrProductOverflow, "shape %s at axis %d", d, axis)
		}
		prod = lo
	}
	return int64(prod), nil
}

// Validate returns an error if the shape has no axis or if an extent is negative.
// All the negative extents are reported.
func (d DDim) Validate() error {
	if d.rank == 0 {
		return errors.Wrap(ErrInvalidArity, "shape has no axis")
	}
	var errs error
	for axis, extent := range d.All() {
		if extent < 0 {
			errs = multierr.Append(errs, errors.Wrapf(ErrNegativeExtent, "axis %d of shape %s has extent %d", axis, d, extent))
		}
	}
	return errs
}
