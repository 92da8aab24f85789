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
)

const listSeparator = ", "

// List is a delimited, comma-separated sequence of elements: an argument
// list or a collection literal.
//
// A list is either unsplit or fully split. The split form is block-shaped:
// a break after the opening delimiter, one element per line with a trailing
// comma, and the closing delimiter on its own line. An empty list has no
// legal states at all, so it can never be split.
type List struct {
	Base

	open, close string
	states      []State
}

func newList(open, close string, elements []Fragment) *List {
	l := &List{
		Base:  Base{children: elements},
		open:  open,
		close: close,
	}
	l.ownWidth = uniseg.StringWidth(open) + uniseg.StringWidth(close)
	if len(elements) > 1 {
		l.ownWidth += (len(elements) - 1) * uniseg.StringWidth(listSeparator)
	}
	if len(elements) > 0 {
		l.states = []State{FullSplit(1)}
	}
	return l
}

// LegalStates implements [Fragment].
func (l *List) LegalStates() []State { return l.states }

// Shape implements [Fragment]. A split list is a block regardless of how its
// elements render; an unsplit one is as multi-line as its contents.
func (l *List) Shape(state State, children Shape) Shape {
	if state.IsFullSplit() {
		return Block
	}
	return children
}

// ChildShapeConstraint implements [Fragment]. Elements of an unsplit list
// must stay inline; elements on their own lines may take any shape.
func (l *List) ChildShapeConstraint(state State, _ Fragment) ShapeSet {
	if state.IsUnsplit() {
		return Only(Inline)
	}
	return AllShapes
}

// ApplyConstraints implements [Fragment]. An unsplit list forces every
// stateful element unsplit.
func (l *List) ApplyConstraints(state State, emit func(Fragment, State)) {
	if !state.IsUnsplit() {
		return
	}
	for _, e := range l.children {
		forceFlat(e, emit)
	}
}

// Render implements [Fragment].
func (l *List) Render(sink Sink, state State) {
	sink.Text(l.open)
	if state.IsUnsplit() {
		for i, e := range l.children {
			if i > 0 {
				sink.Text(listSeparator)
			}
			sink.Render(e, false)
		}
		sink.Text(l.close)
		return
	}

	func() {
		sink.PushIndent(IndentBlock)
		defer sink.PopIndent()
		for _, e := range l.children {
			sink.Newline()
			// Not separate: the trailing comma shares the element's last
			// line, even when the element splits internally.
			sink.Render(e, false)
			sink.Text(",")
		}
	}()
	sink.Newline()
	sink.Text(l.close)
}
