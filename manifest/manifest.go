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

// Package manifest loads the shapes of named tensors from a YAML document.
//
// A manifest looks like:
//
//	dtype: float32
//	shapes:
//	  weights: [784, 10]
//	  bias: [10]
//	  labels:
//	    shape: [64]
//	    dtype: int64
//
// The top-level dtype is the default data type of the tensors.
// Entries keep the order of the document.
package manifest

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/ddim/ddim"
	"github.com/gx-org/ddim/ddim/ddimconv"
	"gopkg.in/yaml.v3"
)

func tracer() tracing.Trace {
	return tracing.Select("ddim")
}

// Entry is a named tensor shape.
type Entry struct {
	Name  string
	Shape ddim.DDim
	DType dtype.DataType
}

// Manifest is a list of named tensor shapes.
type Manifest struct {
	entries []Entry
	byName  map[string]int
}

type (
	document struct {
		DType  string    `yaml:"dtype"`
		Shapes yaml.Node `yaml:"shapes"`
	}

	entryDocument struct {
		Shape ddim.DDim `yaml:"shape"`
		DType string    `yaml:"dtype"`
	}
)

// Load reads a manifest from a file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("cannot read manifest: %v", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, nil
}

// Parse a manifest from YAML.
// All the invalid entries are reported in the returned error.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("cannot parse manifest: %v", err)
	}
	defaultDType := dtype.Invalid
	if doc.DType != "" {
		var err error
		if defaultDType, err = ddimconv.ParseDataType(doc.DType); err != nil {
			return nil, errors.Wrap(err, "invalid default data type")
		}
	}
	m := &Manifest{byName: make(map[string]int)}
	if doc.Shapes.Kind == 0 {
		return m, nil
	}
	if doc.Shapes.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: shapes must be a mapping from names to shapes", doc.Shapes.Line)
	}
	var errs error
	content := doc.Shapes.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value
		entry, err := parseEntry(name, content[i+1], defaultDType)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "shape %q", name))
			continue
		}
		if _, dup := m.byName[name]; dup {
			errs = multierr.Append(errs, errors.Errorf("line %d: shape %q defined more than once", content[i].Line, name))
			continue
		}
		m.byName[name] = len(m.entries)
		m.entries = append(m.entries, entry)
	}
	if errs != nil {
		return nil, errs
	}
	tracer().Debugf("manifest: %d shapes loaded", len(m.entries))
	return m, nil
}

func parseEntry(name string, node *yaml.Node, defaultDType dtype.DataType) (Entry, error) {
	entry := Entry{Name: name, DType: defaultDType}
	var doc entryDocument
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&doc.Shape); err != nil {
			return entry, err
		}
	case yaml.MappingNode:
		if err := node.Decode(&doc); err != nil {
			return entry, err
		}
		if doc.Shape.Rank() == 0 {
			return entry, errors.Wrapf(ddim.ErrInvalidArity, "line %d: missing shape", node.Line)
		}
	default:
		return entry, errors.Errorf("line %d: expected a shape or a mapping with a shape field", node.Line)
	}
	if err := doc.Shape.Validate(); err != nil {
		return entry, err
	}
	entry.Shape = doc.Shape
	if doc.DType != "" {
		dt, err := ddimconv.ParseDataType(doc.DType)
		if err != nil {
			return entry, errors.Wrapf(err, "line %d", node.Line)
		}
		entry.DType = dt
	}
	return entry, nil
}

// Entries returns all the entries in the order of the document.
func (m *Manifest) Entries() []Entry {
	return append([]Entry{}, m.entries...)
}

// Names returns the names of all the entries in the order of the document.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.entries))
	for i, entry := range m.entries {
		names[i] = entry.Name
	}
	return names
}

// Lookup returns the entry given its name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}
