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

// Infix is a sequence of operands joined by one binary operator.
//
// It is either unsplit or fully split with a break before each operator:
//
//	first
//	    + second
//	    + third
type Infix struct {
	Base

	operator string
	states   []State
}

func newInfix(operator string, operands []Fragment) *Infix {
	i := &Infix{
		Base:     Base{children: operands},
		operator: operator,
	}
	if len(operands) > 1 {
		i.ownWidth = (len(operands) - 1) * (uniseg.StringWidth(i.operator) + 2)
		i.states = []State{FullSplit(1)}
	}
	return i
}

// LegalStates implements [Fragment].
func (i *Infix) LegalStates() []State { return i.states }

// Shape implements [Fragment].
func (i *Infix) Shape(state State, children Shape) Shape {
	if state.IsFullSplit() {
		return Headline
	}
	return children
}

// ChildShapeConstraint implements [Fragment].
func (i *Infix) ChildShapeConstraint(state State, _ Fragment) ShapeSet {
	if state.IsUnsplit() {
		return Only(Inline)
	}
	return AllShapes
}

// ApplyConstraints implements [Fragment].
func (i *Infix) ApplyConstraints(state State, emit func(Fragment, State)) {
	if !state.IsUnsplit() {
		return
	}
	for _, o := range i.children {
		forceFlat(o, emit)
	}
}

// EagerState implements [Fragment]: an operator sequence wider than the page
// can never fit inline in any context, so it always fully splits.
func (i *Infix) EagerState(pageWidth int) (State, bool) {
	if len(i.states) > 0 && i.Width() > pageWidth {
		return i.states[0], true
	}
	return State{}, false
}

// Render implements [Fragment].
func (i *Infix) Render(sink Sink, state State) {
	if state.IsUnsplit() {
		for n, o := range i.children {
			if n > 0 {
				sink.Text(" " + i.operator + " ")
			}
			sink.Render(o, false)
		}
		return
	}

	sink.PushIndent(IndentExpression)
	defer sink.PopIndent()
	for n, o := range i.children {
		if n > 0 {
			sink.Newline()
			sink.Text(i.operator + " ")
		}
		sink.Render(o, n < len(i.children)-1)
		if n == 0 {
			sink.SetShapeMode(ShapeModeContinuation)
		}
	}
}
