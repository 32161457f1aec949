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

// Package ddimcli runs the operations of the ddim command.
package ddimcli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/ddim/ddim"
	"github.com/gx-org/ddim/ddim/ddimconv"
	"github.com/gx-org/ddim/manifest"
)

func tracer() tracing.Trace {
	return tracing.Select("ddim")
}

// Config of an operation.
type Config struct {
	// Op is the name of the operation.
	Op string
	// Shape is the first operand.
	Shape ddim.DDim
	// Other is the second operand of binary operations.
	Other ddim.DDim
	// Begin and End are the axis range for slice.
	Begin, End int
	// DType is the data type of the elements for bytes.
	DType dtype.DataType
	// Manifest lists the shapes for the manifest operation.
	Manifest *manifest.Manifest
}

type operation func(w io.Writer, cfg *Config) error

var operations = map[string]operation{
	"arity": func(w io.Writer, cfg *Config) error {
		_, err := fmt.Fprintln(w, ddim.Arity(cfg.Shape))
		return err
	},
	"format": func(w io.Writer, cfg *Config) error {
		_, err := fmt.Fprintln(w, ddim.Format(cfg.Shape))
		return err
	},
	"vectorize": func(w io.Writer, cfg *Config) error {
		_, err := fmt.Fprintln(w, ddim.Vectorize(cfg.Shape))
		return err
	},
	"product": func(w io.Writer, cfg *Config) error {
		prod, err := cfg.Shape.CheckedProduct()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, prod)
		return err
	},
	"strides": func(w io.Writer, cfg *Config) error {
		_, err := fmt.Fprintln(w, ddim.Strides(cfg.Shape))
		return err
	},
	"slice": func(w io.Writer, cfg *Config) error {
		return printShape(w)(ddim.Slice(cfg.Shape, cfg.Begin, cfg.End))
	},
	"add": func(w io.Writer, cfg *Config) error {
		return printShape(w)(ddim.Add(cfg.Shape, cfg.Other))
	},
	"mul": func(w io.Writer, cfg *Config) error {
		return printShape(w)(ddim.Multiply(cfg.Shape, cfg.Other))
	},
	"concat": func(w io.Writer, cfg *Config) error {
		return printShape(w)(ddim.Concat(cfg.Shape, cfg.Other))
	},
	"bytes": func(w io.Writer, cfg *Config) error {
		size, err := ddimconv.ByteSize(cfg.Shape, cfg.DType)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, size)
		return err
	},
	"manifest": runManifest,
}

var binaryOps = map[string]bool{
	"add":    true,
	"mul":    true,
	"concat": true,
}

func printShape(w io.Writer) func(ddim.DDim, error) error {
	return func(d ddim.DDim, err error) error {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, d)
		return err
	}
}

func runManifest(w io.Writer, cfg *Config) error {
	if cfg.Manifest == nil {
		return errors.Errorf("no manifest specified: please use --manifest to specify a manifest file")
	}
	for _, entry := range cfg.Manifest.Entries() {
		dt := entry.DType
		if dt == dtype.Invalid {
			dt = cfg.DType
		}
		size, err := ddimconv.ByteSize(entry.Shape, dt)
		if err != nil {
			return errors.Wrapf(err, "shape %q", entry.Name)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", entry.Name, entry.Shape, dt, entry.Shape.Product(), size); err != nil {
			return err
		}
	}
	return nil
}

// Operations returns the sorted list of operation names.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run an operation and write its result to w.
func Run(w io.Writer, cfg Config) error {
	op, ok := operations[cfg.Op]
	if !ok {
		return errors.Errorf("unknown operation %q: available operations are %s", cfg.Op, strings.Join(Operations(), ", "))
	}
	if cfg.Op != "manifest" && cfg.Shape.Rank() == 0 {
		return errors.Errorf("operation %s requires a shape: please use --shape", cfg.Op)
	}
	if binaryOps[cfg.Op] && cfg.Other.Rank() == 0 {
		return errors.Errorf("operation %s requires a second shape: please use --other", cfg.Op)
	}
	tracer().Debugf("running %s on %s (other: %s)", cfg.Op, cfg.Shape, cfg.Other)
	return op(w, &cfg)
}
