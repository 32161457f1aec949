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

package ddimconv

import (
	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
)

var dataTypes = []dtype.DataType{
	dtype.Bool,
	dtype.Float32,
	dtype.Float64,
	dtype.Int32,
	dtype.Int64,
	dtype.Uint32,
	dtype.Uint64,
}

// ParseDataType returns the data type given its name, for example "float32".
func ParseDataType(name string) (dtype.DataType, error) {
	for _, dt := range dataTypes {
		if dt.String() == name {
			return dt, nil
		}
	}
	return dtype.Invalid, errors.Errorf("unknown data type %q", name)
}
