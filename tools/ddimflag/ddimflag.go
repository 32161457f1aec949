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

// Package ddimflag provides flag types to pass shapes and data types
// from the command line.
package ddimflag

import (
	"flag"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/ddim/ddim"
	"github.com/gx-org/ddim/ddim/ddimconv"
)

type shapeValue struct {
	d *ddim.DDim
}

func (v *shapeValue) String() string {
	if v.d == nil || v.d.Rank() == 0 {
		return ""
	}
	return v.d.String()
}

func (v *shapeValue) Set(s string) error {
	d, err := ddim.Parse(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

// ShapeVar defines a shape flag in a flag set.
// The flag accepts a list of comma separated extents, for example "2,3,4".
func ShapeVar(fs *flag.FlagSet, p *ddim.DDim, name, doc string) {
	fs.Var(&shapeValue{d: p}, name, doc)
}

// Shape returns a flag to pass a shape from the command line.
func Shape(name, doc string) *ddim.DDim {
	var d ddim.DDim
	ShapeVar(flag.CommandLine, &d, name, doc)
	return &d
}

type dataTypeValue struct {
	dt *dtype.DataType
}

func (v *dataTypeValue) String() string {
	if v.dt == nil {
		return ""
	}
	return v.dt.String()
}

func (v *dataTypeValue) Set(s string) error {
	dt, err := ddimconv.ParseDataType(s)
	if err != nil {
		return err
	}
	*v.dt = dt
	return nil
}

// DataTypeVar defines a data type flag in a flag set.
// p is also the default value of the flag.
func DataTypeVar(fs *flag.FlagSet, p *dtype.DataType, name, doc string) {
	fs.Var(&dataTypeValue{dt: p}, name, doc)
}

// DataType returns a flag to pass a data type from the command line.
func DataType(name string, value dtype.DataType, doc string) *dtype.DataType {
	dt := value
	DataTypeVar(flag.CommandLine, &dt, name, doc)
	return &dt
}
