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

// Fragment is a node in the layout tree: one formattable unit together with
// its legal line-break choices.
//
// A fragment owns its children exclusively; the same fragment must not appear
// under two parents. Trees are built bottom-up, finalized once with
// [Finalize], and structurally immutable thereafter. Only the pinned state of
// a fragment changes after finalization, monotonically, via [Pin].
//
// Concrete kinds embed [Base], which provides defaults for everything except
// [Fragment.Render].
type Fragment interface {
	// LegalStates returns the states this fragment may resolve to beyond the
	// implicit [Unsplit], strictly ascending by value. An empty list means
	// the fragment is unsplittable.
	//
	// The returned list must be stable: it is computed once at construction
	// and must not change across queries.
	LegalStates() []State

	// Cost returns the cost of resolving this fragment to state.
	//
	// The default is the state's intrinsic cost; kinds override this to
	// context-sensitize costs.
	Cost(state State) int

	// ChildShapeConstraint returns the shapes child may legally take when
	// this fragment resolves to state. An assignment violating a shape
	// constraint is illegal, not merely expensive.
	ChildShapeConstraint(state State, child Fragment) ShapeSet

	// Shape returns the shape this fragment reports to its parent when
	// resolved to state, given the merged shape of its children's actual
	// renderings.
	Shape(state State, children Shape) Shape

	// ForcesNewline reports whether resolving to state guarantees at least
	// one line break, either directly or through a descendant's
	// unconditional break.
	//
	// Must not be called before [Finalize].
	ForcesNewline(state State) bool

	// ApplyConstraints reports the descendant states that resolving this
	// fragment to state forces, by calling emit for each forced pair.
	ApplyConstraints(state State, emit func(child Fragment, state State))

	// EagerState returns a state this fragment will provably resolve to at
	// the given page width regardless of surrounding context, letting the
	// solver skip searching it. Returning ok == false is always safe;
	// returning a wrong state is a correctness bug.
	//
	// Must not be called before [Finalize].
	EagerState(pageWidth int) (state State, ok bool)

	// Render describes this fragment's output for the resolved state in
	// terms of the sink's contract, recursing into children through
	// [Sink.Render].
	Render(sink Sink, state State)

	// Children returns this fragment's children in rendering order.
	Children() []Fragment

	base() *Base
}

// Base carries the state shared by every fragment kind: children, metrics
// computed by [Finalize], and the pinned state.
//
// Base provides defaults for all of [Fragment] except Render. It is not a
// fragment on its own.
type Base struct {
	children []Fragment

	// Intrinsic contribution of this node, set at construction: the width of
	// text the node emits itself (delimiters, separators, literals) and
	// whether that text contains a hard line break.
	ownWidth int
	ownBreak bool

	finalized bool
	flatWidth int
	hardBreak bool
	stateful  []Fragment

	pin      State
	isPinned bool
}

func (b *Base) base() *Base { return b }

// Children returns the fragment's children in rendering order.
func (b *Base) Children() []Fragment { return b.children }

// LegalStates returns no additional states; the fragment is unsplittable.
func (b *Base) LegalStates() []State { return nil }

// Cost returns the state's intrinsic cost.
func (b *Base) Cost(state State) int { return state.Cost() }

// ChildShapeConstraint permits all shapes.
func (b *Base) ChildShapeConstraint(State, Fragment) ShapeSet { return AllShapes }

// Shape reports [Other] for any split state or intrinsic break, and otherwise
// passes the children's merged shape through: an unsplit fragment is exactly
// as multi-line as its children.
func (b *Base) Shape(state State, children Shape) Shape {
	if !state.IsUnsplit() || b.ownBreak {
		return Other
	}
	return children
}

// ForcesNewline reports a guaranteed break for any split state, or when a
// hard break exists beneath this node.
func (b *Base) ForcesNewline(state State) bool {
	b.assertFinalized()
	return !state.IsUnsplit() || b.hardBreak
}

// ApplyConstraints forces nothing.
func (b *Base) ApplyConstraints(State, func(Fragment, State)) {}

// EagerState declines the fast path.
func (b *Base) EagerState(int) (State, bool) { return State{}, false }

// Width returns the total width of this fragment's rendered content ignoring
// splitting, measured in display columns.
//
// Must not be called before [Finalize].
func (b *Base) Width() int {
	b.assertFinalized()
	return b.flatWidth
}

// Pinned returns the pinned state, if any.
func (b *Base) Pinned() (state State, ok bool) {
	return b.pin, b.isPinned
}

func (b *Base) assertFinalized() {
	if !b.finalized {
		panic("layout: fragment metrics queried before Finalize")
	}
}

// Finalize computes the memoized metrics of every fragment under root: total
// flat width, the hard-break flag, and the list of stateful descendants used
// to restrict the solver's search. It also validates each fragment's
// legal-state list.
//
// Finalize must be called exactly once, on a complete tree, before metrics,
// [Pin], or [Solve] are used. Encountering an already-finalized fragment
// means the node appears under two parents, which is a usage error.
func Finalize(root Fragment) {
	b := root.base()
	if b.finalized {
		panic(fmt.Sprintf("layout: %T finalized twice; fragment trees must not share nodes", root))
	}

	for _, child := range root.Children() {
		Finalize(child)
	}

	validateStates(root)

	b.flatWidth = b.ownWidth
	b.hardBreak = b.ownBreak
	if len(root.LegalStates()) > 0 {
		b.stateful = append(b.stateful, root)
	}
	for _, child := range root.Children() {
		cb := child.base()
		b.flatWidth += cb.flatWidth
		b.hardBreak = b.hardBreak || cb.hardBreak
		b.stateful = append(b.stateful, cb.stateful...)
	}
	b.finalized = true
}

// Pin permanently fixes f to state, bypassing search for it.
//
// Pinning is idempotent: once a fragment is pinned, later pins are no-ops.
// Pinning also transitively pins every fragment that f's state forces through
// [Fragment.ApplyConstraints], so the pinned set is always closed under the
// constraint relation.
func Pin(f Fragment, state State) {
	b := f.base()
	b.assertFinalized()
	if b.isPinned {
		return
	}
	if !state.IsUnsplit() && !legalState(f, state) {
		panic(fmt.Sprintf("layout: %T pinned to state %v it does not declare", f, state))
	}

	b.pin = state
	b.isPinned = true
	f.ApplyConstraints(state, func(child Fragment, childState State) {
		Pin(child, childState)
	})
}

func legalState(f Fragment, state State) bool {
	for _, s := range f.LegalStates() {
		if s == state {
			return true
		}
	}
	return false
}

// forceFlat emits an unsplit constraint for every stateful fragment in f's
// subtree, including f itself. A parent state that requires a child inline
// constrains everything beneath that child.
//
// Must not be called before [Finalize].
func forceFlat(f Fragment, emit func(Fragment, State)) {
	f.base().assertFinalized()
	for _, s := range f.base().stateful {
		emit(s, Unsplit)
	}
}

// rendersFlat reports whether f renders on a single line under the given
// assignment: no intrinsic hard break, and every stateful descendant
// (including f itself) resolved to unsplit.
//
// When it does, its rendered width is exactly its flat width, so fit
// evaluation can charge the cached metric instead of recursing.
func rendersFlat(f Fragment, stateOf func(Fragment) State) bool {
	b := f.base()
	if b.hardBreak {
		return false
	}
	for _, s := range b.stateful {
		if !stateOf(s).IsUnsplit() {
			return false
		}
	}
	return true
}
