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

// Package ddimconv converts shapes between DDim and the representations
// used by storage layers: backend shapes, integer slices and axis maps.
package ddimconv

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/constraints"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/ddim/ddim"
)

// ToShape returns the backend shape of an array of a given data type.
func ToShape(d ddim.DDim, dt dtype.DataType) (*shape.Shape, error) {
	if err := d.Validate(); err != nil {
		return nil, errors.Wrapf(err, "cannot convert %s to a %s backend shape", d, dt)
	}
	return &shape.Shape{
		DType:       dt,
		AxisLengths: d.Vectorize(),
	}, nil
}

// FromShape returns the axis lengths of a backend shape as a DDim.
func FromShape(sh *shape.Shape) (ddim.DDim, error) {
	if sh == nil {
		return ddim.DDim{}, errors.Wrap(ddim.ErrInvalidArity, "cannot convert a nil backend shape")
	}
	d, err := ddim.Make(sh.AxisLengths)
	if err != nil {
		return ddim.DDim{}, errors.Wrapf(err, "cannot convert backend shape %s", sh)
	}
	if err := d.Validate(); err != nil {
		return ddim.DDim{}, errors.Wrapf(err, "cannot convert backend shape %s", sh)
	}
	return d, nil
}

// FromShapes converts a list of backend shapes.
// All the shapes are converted: the returned error combines the errors
// of all the shapes that could not be converted.
func FromShapes(shs []*shape.Shape) ([]ddim.DDim, error) {
	ds := make([]ddim.DDim, len(shs))
	var errs error
	for i, sh := range shs {
		d, err := FromShape(sh)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "shape %d", i))
			continue
		}
		ds[i] = d
	}
	if errs != nil {
		return nil, errs
	}
	return ds, nil
}

// FromInts returns a DDim given extents of any integer type.
func FromInts[T constraints.Integer](vals []T) (ddim.DDim, error) {
	extents := make([]int, len(vals))
	for i, val := range vals {
		extent := int(val)
		if T(extent) != val || (extent < 0) != (val < 0) {
			return ddim.DDim{}, errors.Errorf("extent %d of axis %d does not fit in an int", val, i)
		}
		extents[i] = extent
	}
	return ddim.Make(extents)
}

// ToInts returns the extents of a DDim converted to an integer type.
// Extents are converted as Go does: they can overflow if T is too small.
func ToInts[T constraints.Integer](d ddim.DDim) []T {
	vals := make([]T, 0, d.Rank())
	for _, extent := range d.All() {
		vals = append(vals, T(extent))
	}
	return vals
}

// AxisMap returns a map from axis index to extent.
func AxisMap(d ddim.DDim) map[int]int {
	m := make(map[int]int, d.Rank())
	for axis, extent := range d.All() {
		m[axis] = extent
	}
	return m
}

// FromAxisMap returns a DDim from a map from axis index to extent.
// The keys of the map must be 0, 1, ..., len(m)-1.
func FromAxisMap(m map[int]int) (ddim.DDim, error) {
	extents := make([]int, len(m))
	for axis := range extents {
		extent, ok := m[axis]
		if !ok {
			return ddim.DDim{}, errors.Wrapf(ddim.ErrIndexOutOfRange, "axis %d missing in a map of %d axes", axis, len(m))
		}
		extents[axis] = extent
	}
	return ddim.Make(extents)
}

// ByteSize returns the number of bytes required to store an array
// given its shape and its data type.
func ByteSize(d ddim.DDim, dt dtype.DataType) (int64, error) {
	numElements, err := d.CheckedProduct()
	if err != nil {
		return 0, err
	}
	elementSize := int64(dtype.Sizeof(dt))
	if elementSize > 0 && numElements > math.MaxInt64/elementSize {
		return 0, errors.Wrapf(ddim.ErrProductOverflow, "%s array of shape %s", dt, d)
	}
	return numElements * elementSize, nil
}
