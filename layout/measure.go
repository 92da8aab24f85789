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

package layout

import (
	"github.com/rivo/uniseg"

	"github.com/fmtkit/fmtkit/internal/ext/slicesx"
)

// measurer is a [Sink] that computes the fit of a candidate assignment
// instead of emitting text: total overflow beyond the page width, and whether
// any child shape constraint is violated.
//
// Subtrees whose every stateful descendant resolves unsplit are charged their
// cached flat width without recursing; once a line has overflowed, that
// amount alone is what ranks the candidate.
type measurer struct {
	stateOf   func(Fragment) State
	pageWidth int

	col      int
	dirty    bool // line has content beyond its indent
	indents  []int
	overflow int
	invalid  bool

	frames []measureFrame
}

// measureFrame is one open fragment during the measuring walk. The virtual
// root frame has a nil fragment.
type measureFrame struct {
	fragment Fragment
	state    State
	children Shape
}

// measure evaluates root under the given assignment at pageWidth.
func measure(root Fragment, stateOf func(Fragment) State, pageWidth int) (overflow int, invalid bool) {
	m := &measurer{
		stateOf:   stateOf,
		pageWidth: pageWidth,
		frames:    []measureFrame{{}},
	}
	m.Render(root, false)
	m.endLine()
	return m.overflow, m.invalid
}

// Text implements [Sink].
func (m *measurer) Text(text string) {
	m.write(uniseg.StringWidth(text))
}

// write charges width columns to the current line, applying the indent when
// the line is first written to.
func (m *measurer) write(width int) {
	if !m.dirty {
		m.col = slicesx.Sum(m.indents)
		m.dirty = true
	}
	m.col += width
}

// Newline implements [Sink].
func (m *measurer) Newline() {
	m.endLine()
}

// PushIndent implements [Sink].
func (m *measurer) PushIndent(kind IndentKind) {
	m.indents = append(m.indents, kind.Columns())
}

// PopIndent implements [Sink].
func (m *measurer) PopIndent() {
	if _, ok := slicesx.Pop(&m.indents); !ok {
		panic("layout: PopIndent without matching PushIndent")
	}
}

// SetShapeMode implements [Sink]. Measurement derives shapes from
// [Fragment.Shape], so the mode hint carries no extra information here.
func (m *measurer) SetShapeMode(ShapeMode) {}

// Render implements [Sink].
func (m *measurer) Render(child Fragment, separate bool) {
	state := m.stateOf(child)

	var shape Shape
	if rendersFlat(child, m.stateOf) {
		m.write(child.base().flatWidth)
		shape = Inline
	} else {
		m.frames = append(m.frames, measureFrame{fragment: child, state: state})
		child.Render(m, state)
		frame, _ := slicesx.Pop(&m.frames)
		shape = child.Shape(state, frame.children)
	}

	// A separate child owns its last line: any sibling content would be
	// pushed to a fresh line, so account for the break here.
	if separate && m.dirty {
		m.endLine()
	}

	parent, _ := slicesx.Last(m.frames)
	constraint := AllShapes
	if parent.fragment != nil {
		constraint = parent.fragment.ChildShapeConstraint(parent.state, child)
	}
	if !constraint.Contains(shape) {
		m.invalid = true
	}
	m.frames[len(m.frames)-1].children = parent.children.Merge(shape)
}

func (m *measurer) endLine() {
	if m.col > m.pageWidth {
		m.overflow += m.col - m.pageWidth
	}
	m.col = 0
	m.dirty = false
}
