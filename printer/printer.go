// Copyright 2024-2026 The fmtkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package printer renders a solved fragment tree as text.
//
// It implements the [layout.Sink] contract: indentation is a stack of scoped
// pushes and pops, line breaks are buffered so that no line carries trailing
// whitespace, and a "separate" child keeps sibling content off its final
// line.
package printer

import (
	"strings"

	"github.com/fmtkit/fmtkit/internal/ext/slicesx"
	"github.com/fmtkit/fmtkit/layout"
)

// Print renders root using the resolved states in res.
//
// The output has no trailing newline; it is a rendering of the fragment, not
// of a file.
func Print(root layout.Fragment, res *layout.Resolution) string {
	p := &printer{res: res}
	p.Render(root, false)
	if len(p.indents) != 0 {
		panic("printer: fragment left indentation pushed")
	}
	return p.out.String()
}

type printer struct {
	res *layout.Resolution
	out strings.Builder

	indents []layout.IndentKind

	// A buffered line break and a pending separate-child boundary. Both are
	// flushed by the next Text, so indentation is decided when a line gains
	// content and blank output never carries indent.
	newline  bool
	separate bool
}

// Text implements [layout.Sink].
func (p *printer) Text(text string) {
	if p.separate {
		// No sibling content may share a separate child's last line.
		p.newline = true
		p.separate = false
	}
	if p.newline {
		p.out.WriteByte('\n')
		for _, kind := range p.indents {
			p.out.WriteString(strings.Repeat(" ", kind.Columns()))
		}
		p.newline = false
	}
	p.out.WriteString(text)
}

// Newline implements [layout.Sink].
func (p *printer) Newline() {
	if p.newline {
		// Two breaks in a row still emit a single blank line boundary.
		p.out.WriteByte('\n')
	}
	p.newline = true
	p.separate = false
}

// PushIndent implements [layout.Sink].
func (p *printer) PushIndent(kind layout.IndentKind) {
	p.indents = append(p.indents, kind)
}

// PopIndent implements [layout.Sink].
func (p *printer) PopIndent() {
	if _, ok := slicesx.Pop(&p.indents); !ok {
		panic("printer: PopIndent without matching PushIndent")
	}
}

// SetShapeMode implements [layout.Sink]. Shape modes classify measurement;
// they have no textual effect.
func (p *printer) SetShapeMode(layout.ShapeMode) {}

// Render implements [layout.Sink].
func (p *printer) Render(child layout.Fragment, separate bool) {
	child.Render(p, p.res.Of(child))
	if separate {
		p.separate = true
	}
}
