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
	"fmt"
)

const (
	callKindUnknown CallKind = iota //nolint:unused

	// PropertyCall is a plain property access with no argument list.
	PropertyCall
	// UnsplittableCall is a call with no arguments; it cannot split.
	UnsplittableCall
	// SplittableCall has a non-empty argument list that may split
	// internally but is not eligible for block formatting.
	SplittableCall
	// BlockFormatCall has an argument list eligible for block formatting.
	BlockFormatCall
)

// CallKind classifies one link of a chain.
type CallKind int8

// Call is one link of a [Chain]: a property access or invocation. Body is the
// call's full rendering, including its leading dot and any argument list.
type Call struct {
	Kind CallKind
	Body Fragment
}

// Chain states, ascending. Full split is [fullSplitValue].
const (
	chainBlockFormatCall int = iota + 1
	chainSplitAfterProperties
)

// TargetPolicy controls whether a chain's target may break internally while
// the chain itself stays unsplit.
type TargetPolicy int8

const (
	// TargetPolicyCurrent permits a block-shaped target under an unsplit
	// chain, so a collection literal can hang off the opening line.
	TargetPolicyCurrent TargetPolicy = iota
	// TargetPolicyLegacy keeps the target of an unsplit chain inline.
	TargetPolicyLegacy
)

// Chain is a dotted sequence: a target expression followed by one or more
// calls. A receiver with no calls is never wrapped in a chain.
//
// Its states, ascending:
//
//   - [Unsplit]: target and every call on one line.
//
//   - Block-format trailing call (cost 0, only when a block-formattable
//     trailing call exists): everything inline except the designated call's
//     argument list, which alone may break as a block.
//
//   - Split after properties (cost 1, only when leading properties exist and
//     do not make up the whole chain): the target and leading properties stay
//     on the opening line; a break precedes every later call.
//
//   - [FullSplit]: a break precedes every call. Cost 1, except 0 for a
//     cascade (splitting the cascade is preferred over splitting its
//     receiver) and 2 for an all-property non-cascade chain (the surrounding
//     context should split before an all-property chain does).
type Chain struct {
	Base

	target Fragment
	calls  []Call

	leadingProperties int
	blockCall         int // index eligible for block formatting, or -1
	cascade           bool
	indent            IndentKind
	policy            TargetPolicy

	states []State
}

func newChain(target Fragment, calls []Call, cascade bool, policy TargetPolicy) *Chain {
	if len(calls) == 0 {
		panic("layout: chain fragment built with zero calls")
	}

	children := make([]Fragment, 0, len(calls)+1)
	children = append(children, target)
	for i, call := range calls {
		if call.Body == nil {
			panic(fmt.Sprintf("layout: chain call %d has no body", i))
		}
		children = append(children, call.Body)
	}

	c := &Chain{
		Base:      Base{children: children},
		target:    target,
		calls:     calls,
		blockCall: -1,
		cascade:   cascade,
		indent:    IndentExpression,
		policy:    policy,
	}
	if cascade {
		c.indent = IndentCascade
	}

	for _, call := range calls {
		if call.Kind != PropertyCall {
			break
		}
		c.leadingProperties++
	}

	// The block-formattable call is normally the last one; a trailing
	// property or unsplittable call may also hang off the call before it.
	last := len(calls) - 1
	switch {
	case calls[last].Kind == BlockFormatCall:
		c.blockCall = last
	case last > 0 &&
		(calls[last].Kind == PropertyCall || calls[last].Kind == UnsplittableCall) &&
		calls[last-1].Kind == BlockFormatCall:
		c.blockCall = last - 1
	}

	if c.blockCall >= 0 {
		c.states = append(c.states, NewState(chainBlockFormatCall, 0))
	}
	if c.leadingProperties > 0 && c.leadingProperties < len(calls) {
		c.states = append(c.states, NewState(chainSplitAfterProperties, 1))
	}
	fullCost := 1
	switch {
	case cascade:
		fullCost = 0
	case c.leadingProperties == len(calls):
		fullCost = 2
	}
	c.states = append(c.states, FullSplit(fullCost))

	return c
}

// IsCascade reports whether this chain is a cascade: a sequence of operations
// applied to one receiver without repeating the receiver.
func (c *Chain) IsCascade() bool { return c.cascade }

// LegalStates implements [Fragment].
func (c *Chain) LegalStates() []State { return c.states }

// Shape implements [Fragment].
//
// A block-formatted chain reads as a compact block to its context, except
// that a cascade never does: an assignment whose value is a cascade should
// read as "assign receiver, then apply side effects", not as assigning the
// result of a block.
func (c *Chain) Shape(state State, children Shape) Shape {
	switch {
	case state.IsUnsplit():
		return children
	case state.Value() == chainBlockFormatCall:
		if c.cascade {
			return Other
		}
		return Block
	case state.Value() == chainSplitAfterProperties:
		return Headline
	default:
		return Other
	}
}

// ChildShapeConstraint implements [Fragment].
func (c *Chain) ChildShapeConstraint(state State, child Fragment) ShapeSet {
	if child == c.target {
		return c.targetConstraint(state)
	}

	switch {
	case state.IsUnsplit():
		return Only(Inline)
	case state.Value() == chainBlockFormatCall:
		if child == c.calls[c.blockCall].Body {
			return Only(Inline, Block)
		}
		return Only(Inline)
	case state.Value() == chainSplitAfterProperties:
		if c.isLeadingProperty(child) {
			return Only(Inline)
		}
		return AllShapes
	default:
		return AllShapes
	}
}

// targetConstraint is the shape constraint for the target child. Short of a
// full split, the target may be block-shaped so that a collection literal can
// hang a trailing block, but never headline or other; under the legacy policy
// an unsplit chain keeps its target inline entirely.
func (c *Chain) targetConstraint(state State) ShapeSet {
	if state.IsFullSplit() {
		return AllShapes
	}
	if state.IsUnsplit() && c.policy == TargetPolicyLegacy {
		return Only(Inline)
	}
	return Only(Inline, Block)
}

func (c *Chain) isLeadingProperty(child Fragment) bool {
	for i := 0; i < c.leadingProperties; i++ {
		if c.calls[i].Body == child {
			return true
		}
	}
	return false
}

// ApplyConstraints implements [Fragment]. States that require a call to stay
// inline force that call's body unsplit, shrinking the solver's live search
// space when the chain is pinned.
func (c *Chain) ApplyConstraints(state State, emit func(Fragment, State)) {
	forceUnsplit := func(f Fragment) { forceFlat(f, emit) }

	switch {
	case state.IsUnsplit():
		if c.policy == TargetPolicyLegacy {
			forceUnsplit(c.target)
		}
		for _, call := range c.calls {
			forceUnsplit(call.Body)
		}
	case state.Value() == chainBlockFormatCall:
		for i, call := range c.calls {
			if i != c.blockCall {
				forceUnsplit(call.Body)
			}
		}
	case state.Value() == chainSplitAfterProperties:
		for i := 0; i < c.leadingProperties; i++ {
			forceUnsplit(c.calls[i].Body)
		}
	}
}

// Render implements [Fragment].
func (c *Chain) Render(sink Sink, state State) {
	switch {
	case state.IsUnsplit(), state.Value() == chainBlockFormatCall:
		// Identical text; in the block-format state the designated call's
		// argument list is the one child permitted to break.
		sink.Render(c.target, false)
		for _, call := range c.calls {
			sink.Render(call.Body, false)
		}

	case state.Value() == chainSplitAfterProperties:
		sink.Render(c.target, false)
		for i := 0; i < c.leadingProperties; i++ {
			sink.Render(c.calls[i].Body, false)
		}
		sink.SetShapeMode(ShapeModeContinuation)
		c.renderSplitCalls(sink, c.leadingProperties)

	default:
		sink.Render(c.target, false)
		sink.SetShapeMode(ShapeModeContinuation)
		c.renderSplitCalls(sink, 0)
	}
}

// renderSplitCalls renders calls[first:] with a break before each. All but
// the last call render separate, so a call's own split cannot bleed into the
// next call's line.
func (c *Chain) renderSplitCalls(sink Sink, first int) {
	sink.PushIndent(c.indent)
	defer sink.PopIndent()
	for i := first; i < len(c.calls); i++ {
		sink.Newline()
		sink.Render(c.calls[i].Body, i < len(c.calls)-1)
	}
}
