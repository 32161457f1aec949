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

// Errors returned by the package. Returned errors wrap one of these values:
// use errors.Is to test for a kind of error.
var (
	// ErrInvalidArity is returned when a shape would have less than 1 or more than MaxRank axes.
	ErrInvalidArity = errors.New("dynamic dimensions must have between 1 and 9 dimensions")
	// ErrInvalidSliceRange is returned when a slice range is empty or starts before the first axis.
	ErrInvalidSliceRange = errors.New("invalid ddim slice range")
	// ErrSliceOutOfBounds is returned when a slice range ends after the last axis.
	ErrSliceOutOfBounds = errors.New("end index in ddim slice is out of bound")
	// ErrArityMismatch is returned when two operands do not have the same number of axes.
	ErrArityMismatch = errors.New("ddim arity mismatch")
	// ErrIndexOutOfRange is returned when an axis or an element index is out of range.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNegativeExtent is returned when an axis has a negative extent.
	ErrNegativeExtent = errors.New("negative extent")
	// ErrProductOverflow is returned when the number of elements does not fit in an int64.
	ErrProductOverflow = errors.New("product of extents overflows int64")
	// ErrParse is returned when a shape cannot be parsed.
	ErrParse = errors.New("cannot parse ddim")
)
