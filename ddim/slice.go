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

package ddim

import "github.com/pkg/errors"

// Slice returns the axes [begin, end) of a shape.
func Slice(d DDim, begin, end int) (DDim, error) {
	if begin >= end {
		return DDim{}, errors.Wrapf(ErrInvalidSliceRange, "begin index %d must be less than end index %d", begin, end)
	}
	if begin < 0 {
		return DDim{}, errors.Wrapf(ErrInvalidSliceRange, "begin index %d can't be less than zero", begin)
	}
	if end > d.rank {
		return DDim{}, errors.Wrapf(ErrSliceOutOfBounds, "cannot slice [%d:%d] of shape %s of rank %d", begin, end, d, d.rank)
	}
	return Make(d.extents[begin:end])
}

// Concat returns a shape with the axes of a followed by the axes of b.
func Concat(a, b DDim) (DDim, error) {
	return Make(append(a.Vectorize(), b.Vectorize()...))
}

// FlattenTo2D collapses the axes [0, numColDims) and [numColDims, rank)
// of a shape into a shape with 2 axes.
func FlattenTo2D(d DDim, numColDims int) (DDim, error) {
	rows, err := Slice(d, 0, numColDims)
	if err != nil {
		return DDim{}, errors.Wrapf(err, "cannot flatten shape %s to 2 axes", d)
	}
	cols, err := Slice(d, numColDims, d.rank)
	if err != nil {
		return DDim{}, errors.Wrapf(err, "cannot flatten shape %s to 2 axes", d)
	}
	return New(int(rows.Product()), int(cols.Product()))
}

// Strides returns the row-major strides of a shape:
// the stride of an axis is the product of the extents of all the axes after it.
func Strides(d DDim) DDim {
	strides := DDim{rank: d.rank}
	if d.rank == 0 {
		return strides
	}
	strides.extents[d.rank-1] = 1
	for i := d.rank - 2; i >= 0; i-- {
		strides.extents[i] = strides.extents[i+1] * d.extents[i+1]
	}
	return strides
}

// Offset returns the position of an element in the row-major layout of a shape
// given the index of the element along each axis.
func Offset(d DDim, index ...int) (int64, error) {
	if len(index) != d.rank {
		return 0, errors.Wrapf(ErrArityMismatch, "index %v has %d axes but shape %s has %d axes", index, len(index), d, d.rank)
	}
	strides := Strides(d)
	var offset int64
	for axis, i := range index {
		if i < 0 || i >= d.extents[axis] {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d out of range [0, %d) for axis %d of shape %s", i, d.extents[axis], axis, d)
		}
		offset += int64(i) * int64(strides.extents[axis])
	}
	return offset, nil
}

// Unravel returns the index along each axis of the element at a given
// position of the row-major layout of a shape. It is the inverse of Offset.
func Unravel(d DDim, offset int64) (DDim, error) {
	size, err := d.CheckedProduct()
	if err != nil {
		return DDim{}, err
	}
	if offset < 0 || offset >= size {
		return DDim{}, errors.Wrapf(ErrIndexOutOfRange, "offset %d out of range [0, %d) for shape %s", offset, size, d)
	}
	index := make([]int, d.rank)
	for axis := d.rank - 1; axis >= 0; axis-- {
		extent := int64(d.extents[axis])
		index[axis] = int(offset % extent)
		offset /= extent
	}
	return Make(index)
}
