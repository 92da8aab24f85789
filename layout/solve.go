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

	"github.com/tidwall/btree"

	"github.com/fmtkit/fmtkit/trace"
)

// Resolution assigns exactly one state to every stateful fragment of a solved
// tree.
type Resolution struct {
	states   map[Fragment]State
	cost     int
	overflow int
}

// Of returns the resolved state of f. Stateless fragments are always
// [Unsplit].
func (r *Resolution) Of(f Fragment) State {
	return r.states[f]
}

// Cost returns the total cost of the assignment: the sum of every stateful
// fragment's cost in its resolved state.
func (r *Resolution) Cost() int { return r.cost }

// Overflow returns the total number of columns by which the rendered text
// exceeds the page width. Zero means everything fits.
func (r *Resolution) Overflow() int { return r.overflow }

// SolveOption configures [Solve].
type SolveOption func(*solver)

// WithCollector routes solver events to collector.
func WithCollector(collector trace.Collector) SolveOption {
	return func(s *solver) {
		if collector != nil {
			s.collector = collector
		}
	}
}

// Solve assigns one legal state to every stateful fragment under root so
// that no child shape constraint is violated, every pinned fragment keeps
// its pinned state, and, subject to that, total cost is minimized with line
// overflow beyond pageWidth as the dominant ugliness signal. Among equally
// good assignments the lexicographically least state vector, in preorder,
// wins, so output is deterministic.
//
// Solve never fails for lack of space: when nothing fits, the least-ugly
// legal assignment is returned. The tree must be finalized; pageWidth must
// be positive.
func Solve(root Fragment, pageWidth int, opts ...SolveOption) *Resolution {
	if pageWidth <= 0 {
		panic(fmt.Sprintf("layout: page width %d is not positive", pageWidth))
	}
	root.base().assertFinalized()

	s := &solver{
		root:      root,
		pageWidth: pageWidth,
		collector: trace.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.solve()
}

// solver is a best-first branch-and-bound search over partial state
// assignments.
//
// Candidates bind a preorder prefix of the stateful fragment list; unbound
// fragments default to their pinned state or [Unsplit], which costs nothing,
// so a candidate's cost never decreases as it is expanded. The frontier is
// ordered by (cost, overflow, state vector), so the first complete, legal,
// non-overflowing assignment popped at minimal cost is optimal.
type solver struct {
	root      Fragment
	pageWidth int
	collector trace.Collector

	stateful []Fragment
	index    map[Fragment]int

	frontier *btree.BTreeG[*candidate]
	seq      int
}

// candidate is a partial assignment: states[:bound] are explicit; later
// fragments take their pinned or constraint-forced state, if any, and
// otherwise [Unsplit].
type candidate struct {
	bound  int
	states []State
	forced map[int]State

	cost     int
	overflow int
	invalid  bool

	seq int
}

func (s *solver) solve() *Resolution {
	s.stateful = s.root.base().stateful
	s.index = make(map[Fragment]int, len(s.stateful))
	for i, f := range s.stateful {
		s.index[f] = i
	}

	// Offer every fragment the width-based fast path before searching.
	// Accepted states pin permanently and propagate through
	// ApplyConstraints, shrinking the live search space.
	for _, f := range s.stateful {
		if _, pinned := f.base().Pinned(); pinned {
			continue
		}
		if state, ok := f.EagerState(s.pageWidth); ok {
			Pin(f, state)
			s.collector.Count(trace.EagerPin)
		}
	}

	s.frontier = btree.NewBTreeG(s.less)
	start := &candidate{}
	s.evaluate(start)
	s.push(start)

	var best *candidate
	for {
		c, ok := s.frontier.PopMin()
		if !ok {
			break
		}
		s.collector.Count(trace.CandidatePopped)

		// Cost is monotone under expansion: once a fitting solution is in
		// hand, candidates that already cost more cannot beat it.
		if best != nil && best.overflow == 0 && c.cost > best.cost {
			break
		}

		if c.bound == len(s.stateful) {
			if !c.invalid {
				s.collector.Count(trace.SolutionFound)
				if s.better(c, best) {
					best = c
				}
			}
			continue
		}

		for _, state := range s.options(c, c.bound) {
			if next := s.bind(c, state); next != nil {
				s.push(next)
			}
		}
	}

	if best == nil {
		// Legality is independent of width, so this is unreachable unless a
		// fragment kind's shape constraints are unsatisfiable, which is a
		// construction bug.
		panic("layout: no legal assignment exists for this tree")
	}

	states := make(map[Fragment]State, len(s.stateful))
	for i, f := range s.stateful {
		states[f] = s.stateAt(best, i)
	}
	return &Resolution{states: states, cost: best.cost, overflow: best.overflow}
}

// stateAt returns the effective state of stateful fragment i under c.
func (s *solver) stateAt(c *candidate, i int) State {
	if i < c.bound {
		return c.states[i]
	}
	if pin, ok := s.stateful[i].base().Pinned(); ok {
		return pin
	}
	if forced, ok := c.forced[i]; ok {
		return forced
	}
	return Unsplit
}

// options returns the states fragment i may be bound to under c, in
// ascending state order.
func (s *solver) options(c *candidate, i int) []State {
	f := s.stateful[i]
	if pin, ok := f.base().Pinned(); ok {
		return []State{pin}
	}
	if forced, ok := c.forced[i]; ok {
		return []State{forced}
	}
	return append([]State{Unsplit}, f.LegalStates()...)
}

// bind extends c by assigning state to the fragment at c.bound, propagating
// the state's constraints to later fragments. Returns nil if the constraints
// contradict an existing pin or forced state; such a branch can never become
// legal.
func (s *solver) bind(c *candidate, state State) *candidate {
	i := c.bound
	next := &candidate{
		bound:  i + 1,
		states: append(c.states[:i:i], state),
		forced: c.forced,
	}

	conflict := false
	cloned := false
	s.stateful[i].ApplyConstraints(state, func(child Fragment, childState State) {
		idx, ok := s.index[child]
		if !ok || conflict {
			return
		}

		switch {
		case idx < next.bound:
			conflict = next.states[idx] != childState
			return
		default:
			if pin, pinned := s.stateful[idx].base().Pinned(); pinned {
				conflict = pin != childState
				return
			}
			if forced, ok := next.forced[idx]; ok {
				conflict = forced != childState
				return
			}
		}

		if !cloned {
			clone := make(map[int]State, len(c.forced)+1)
			for k, v := range c.forced {
				clone[k] = v
			}
			next.forced = clone
			cloned = true
		}
		next.forced[idx] = childState
	})
	if conflict {
		return nil
	}

	s.evaluate(next)
	return next
}

// evaluate computes c's cost, overflow, and legality under its effective
// assignment.
func (s *solver) evaluate(c *candidate) {
	stateOf := func(f Fragment) State {
		if i, ok := s.index[f]; ok {
			return s.stateAt(c, i)
		}
		return Unsplit
	}

	c.cost = 0
	for i, f := range s.stateful {
		c.cost += f.Cost(s.stateAt(c, i))
	}
	c.overflow, c.invalid = measure(s.root, stateOf, s.pageWidth)
}

func (s *solver) push(c *candidate) {
	s.seq++
	c.seq = s.seq
	s.frontier.Set(c)
	s.collector.Count(trace.CandidateEnqueued)
}

// less orders the frontier by (cost, overflow, state vector, insertion
// order). The state-vector comparison provides the deterministic tie-break:
// earlier, smaller state values win.
func (s *solver) less(a, b *candidate) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.overflow != b.overflow {
		return a.overflow < b.overflow
	}
	for i := range s.stateful {
		av, bv := s.stateAt(a, i).Value(), s.stateAt(b, i).Value()
		if av != bv {
			return av < bv
		}
	}
	return a.seq < b.seq
}

// better reports whether complete candidate c beats the current best:
// less overflow, then less cost, then the lexicographically lesser state
// vector.
func (s *solver) better(c, best *candidate) bool {
	if best == nil {
		return true
	}
	if c.overflow != best.overflow {
		return c.overflow < best.overflow
	}
	if c.cost != best.cost {
		return c.cost < best.cost
	}
	for i := range s.stateful {
		cv, bv := s.stateAt(c, i).Value(), s.stateAt(best, i).Value()
		if cv != bv {
			return cv < bv
		}
	}
	return false
}
