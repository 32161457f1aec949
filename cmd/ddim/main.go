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

// Package main inspects and transforms tensor shapes from the command line.
//
// Usage:
//
//	ddim --shape=10,20,30,40 --begin=1 --end=3 slice
//	ddim --shape=2,3 --other=4,5 mul
//	ddim --manifest=model.yaml --dtype=float32 manifest
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/ddim/manifest"
	"github.com/gx-org/ddim/tools/ddimcli"
	"github.com/gx-org/ddim/tools/ddimflag"
)

var (
	shape        = ddimflag.Shape("shape", "shape to operate on, for example 2,3,4")
	other        = ddimflag.Shape("other", "second shape of add, mul and concat")
	begin        = flag.Int("begin", 0, "first axis of slice")
	end          = flag.Int("end", 0, "axis after the last axis of slice")
	dataType     = ddimflag.DataType("dtype", dtype.Float32, "data type of the elements for bytes and manifest")
	manifestPath = flag.String("manifest", "", "YAML file listing named shapes")
	verbose      = flag.Bool("v", false, "print debug traces on the standard error")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: ddim [flags] <%s>\n", strings.Join(ddimcli.Operations(), "|"))
	flag.PrintDefaults()
}

func exitf(format string, a ...any) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		color.New(color.FgRed).Fprintf(os.Stderr, format, a...)
	} else {
		fmt.Fprintf(os.Stderr, format, a...)
	}
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	if *verbose {
		tracing.Select("ddim").SetTraceLevel(tracing.LevelDebug)
	}

	cfg := ddimcli.Config{
		Op:    flag.Arg(0),
		Shape: *shape,
		Other: *other,
		Begin: *begin,
		End:   *end,
		DType: *dataType,
	}
	if *manifestPath != "" {
		m, err := manifest.Load(*manifestPath)
		if err != nil {
			exitf("%+v\n", err)
		}
		cfg.Manifest = m
	}
	if err := ddimcli.Run(os.Stdout, cfg); err != nil {
		exitf("%+v\n", err)
	}
}
