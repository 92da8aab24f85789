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

const (
	// IndentExpression is the continuation indent of a surrounding
	// expression, such as the calls of a split chain.
	IndentExpression IndentKind = iota
	// IndentCascade is the narrower indent of cascade sections.
	IndentCascade
	// IndentBlock is the indent of a delimited block body.
	IndentBlock
)

// IndentKind identifies a scoped indentation change pushed onto a sink.
type IndentKind int8

// Columns returns the number of columns this indent kind occupies.
func (k IndentKind) Columns() int {
	switch k {
	case IndentExpression:
		return 4
	default:
		return 2
	}
}

const (
	// ShapeModeDefault is the initial measurement mode.
	ShapeModeDefault ShapeMode = iota
	// ShapeModeContinuation marks everything emitted so far as the headline
	// and everything after as its continuation.
	ShapeModeContinuation
)

// ShapeMode classifies how subsequent sibling content relates to what a
// fragment has already emitted. It is a measurement hint and has no textual
// effect.
type ShapeMode int8

// Sink is the render contract a fragment exercises; implementations either
// measure the described output or emit it as text.
//
// PushIndent and PopIndent must always pair; fragments use defer so that the
// pop occurs on every exit path.
type Sink interface {
	// Text emits literal text at the current position. The text must not
	// contain line breaks; fragments describe breaks with Newline.
	Text(text string)

	// Newline emits a line break at the current indentation.
	Newline()

	// PushIndent begins a scoped indentation change.
	PushIndent(kind IndentKind)

	// PopIndent ends the most recent PushIndent.
	PopIndent()

	// SetShapeMode toggles how subsequent sibling content is classified.
	SetShapeMode(mode ShapeMode)

	// Render recursively renders child in its resolved state. If separate is
	// true, the child owns its final line exclusively: no sibling content
	// may share it.
	Render(child Fragment, separate bool)
}
