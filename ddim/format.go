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

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func (d DDim) appendExtents(b *strings.Builder) {
	for axis, extent := range d.All() {
		if axis > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(extent))
	}
}

// Format returns the extents of a shape separated by commas, for example "2, 3, 4".
func Format(d DDim) string {
	var b strings.Builder
	d.appendExtents(&b)
	return b.String()
}

// String returns the shape as a list of extents, for example "[2, 3, 4]".
func (d DDim) String() string {
	var b strings.Builder
	b.WriteString("[")
	d.appendExtents(&b)
	b.WriteString("]")
	return b.String()
}

func trimDelimiters(s string) string {
	for _, delims := range []string{"[]", "()"} {
		if strings.HasPrefix(s, delims[:1]) && strings.HasSuffix(s, delims[1:]) {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// Parse parses a list of comma separated extents.
// The list can be enclosed in brackets or parentheses, so that
// the output of String can be parsed back.
func Parse(s string) (DDim, error) {
	list := trimDelimiters(strings.TrimSpace(s))
	if list == "" {
		return DDim{}, errors.Wrapf(ErrParse, "%q: no extent", s)
	}
	fields := strings.Split(list, ",")
	if len(fields) > MaxRank {
		return DDim{}, errors.Wrapf(ErrInvalidArity, "cannot parse %q: %d extents", s, len(fields))
	}
	extents := make([]int, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		extent, err := strconv.Atoi(field)
		if err != nil {
			return DDim{}, errors.Wrapf(ErrParse, "%q: invalid extent %q at axis %d", s, field, i)
		}
		if extent < 0 {
			return DDim{}, errors.Wrapf(ErrParse, "%q: negative extent %d at axis %d", s, extent, i)
		}
		extents[i] = extent
	}
	return Make(extents)
}

// MarshalYAML encodes a shape as a flow sequence of extents.
func (d DDim) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.SequenceNode,
		Tag:   "!!seq",
		Style: yaml.FlowStyle,
	}
	for _, extent := range d.All() {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(extent),
		})
	}
	return node, nil
}

// UnmarshalYAML decodes a sequence of extents into a shape.
func (d *DDim) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Wrapf(ErrParse, "line %d: expected a sequence of extents", node.Line)
	}
	var extents []int
	if err := node.Decode(&extents); err != nil {
		return errors.Wrapf(ErrParse, "line %d: %v", node.Line, err)
	}
	dd, err := Make(extents)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*d = dd
	return nil
}
