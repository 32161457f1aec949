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

package ddimflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/ddim/ddim"
	"github.com/gx-org/ddim/tools/ddimflag"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestShapeFlag(t *testing.T) {
	fs := newFlagSet()
	var d ddim.DDim
	ddimflag.ShapeVar(fs, &d, "shape", "shape of the tensor")
	if err := fs.Parse([]string{"--shape", "2,3,4"}); err != nil {
		t.Fatalf("Parse error: %+v", err)
	}
	if diff := cmp.Diff(ddim.MustNew(2, 3, 4), d); diff != "" {
		t.Errorf("shape flag mismatch (-want +got):\n%s", diff)
	}
	if got, want := fs.Lookup("shape").Value.String(), "[2, 3, 4]"; got != want {
		t.Errorf("flag value = %q, want %q", got, want)
	}
}

func TestShapeFlagErrors(t *testing.T) {
	for _, arg := range []string{"", "2,x", "1,2,3,4,5,6,7,8,9,10"} {
		fs := newFlagSet()
		var d ddim.DDim
		ddimflag.ShapeVar(fs, &d, "shape", "shape of the tensor")
		if err := fs.Parse([]string{"--shape=" + arg}); err == nil {
			t.Errorf("--shape=%q did not return an error", arg)
		}
		if d.Rank() != 0 {
			t.Errorf("--shape=%q set the shape to %s", arg, d)
		}
	}
}

func TestDataTypeFlag(t *testing.T) {
	fs := newFlagSet()
	dt := dtype.Float32
	ddimflag.DataTypeVar(fs, &dt, "dtype", "data type")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse error: %+v", err)
	}
	if dt != dtype.Float32 {
		t.Errorf("default data type = %s, want %s", dt, dtype.Float32)
	}
	if err := fs.Parse([]string{"--dtype", dtype.Int64.String()}); err != nil {
		t.Fatalf("Parse error: %+v", err)
	}
	if dt != dtype.Int64 {
		t.Errorf("data type = %s, want %s", dt, dtype.Int64)
	}
	if err := fs.Parse([]string{"--dtype", "notatype"}); err == nil {
		t.Errorf("--dtype=notatype did not return an error")
	}
}
