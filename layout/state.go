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
	"cmp"
	"fmt"
	"math"
)

// fullSplitValue is the value of the universal "split everywhere" state. It is
// maximal so that no fragment kind can declare a state beyond it.
const fullSplitValue = math.MaxInt

// State is one discrete way a fragment may be laid out.
//
// A state is an ordered identifier plus a cost. The zero value is [Unsplit],
// which every fragment has implicitly. State values are private to each
// fragment kind: two kinds may reuse the same intermediate value with
// different meanings. Only [Unsplit] and [FullSplit] are shared semantics.
type State struct {
	value int
	cost  int
}

// Unsplit is the implicit state of every fragment: everything on one line.
var Unsplit State

// NewState returns a state with the given value and cost.
//
// Panics if value is not strictly between the unsplit and full-split values,
// or if cost is negative; both indicate a bug in a fragment kind.
func NewState(value, cost int) State {
	if value <= 0 || value >= fullSplitValue {
		panic(fmt.Sprintf("layout: state value %d outside of (0, max)", value))
	}
	if cost < 0 {
		panic(fmt.Sprintf("layout: negative state cost %d", cost))
	}
	return State{value: value, cost: cost}
}

// FullSplit returns the universal "split everywhere" fallback state with the
// given cost.
func FullSplit(cost int) State {
	if cost < 0 {
		panic(fmt.Sprintf("layout: negative state cost %d", cost))
	}
	return State{value: fullSplitValue, cost: cost}
}

// Value returns the ordering value of this state.
func (s State) Value() int { return s.value }

// Cost returns the intrinsic cost of this state.
func (s State) Cost() int { return s.cost }

// IsUnsplit reports whether this is the implicit unsplit state.
func (s State) IsUnsplit() bool { return s.value == 0 }

// IsFullSplit reports whether this is the split-everywhere fallback.
func (s State) IsFullSplit() bool { return s.value == fullSplitValue }

// Compare orders states by value, ignoring cost.
func (s State) Compare(t State) int { return cmp.Compare(s.value, t.value) }

// String implements [fmt.Stringer].
func (s State) String() string {
	switch {
	case s.IsUnsplit():
		return "unsplit"
	case s.IsFullSplit():
		return fmt.Sprintf("fullSplit(cost: %d)", s.cost)
	default:
		return fmt.Sprintf("state(%d, cost: %d)", s.value, s.cost)
	}
}

// validateStates checks the legal-state list contract: strictly ascending
// values, none of them claiming the implicit unsplit slot.
//
// Called from [Finalize] so that a broken fragment kind is rejected before any
// search begins, rather than being discovered mid-solve.
func validateStates(f Fragment) {
	prev := 0
	for i, s := range f.LegalStates() {
		if s.value <= prev {
			panic(fmt.Sprintf(
				"layout: %T reports unsorted legal states: %v at index %d after value %d",
				f, s, i, prev))
		}
		prev = s.value
	}
}
