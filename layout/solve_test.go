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

package layout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtkit/fmtkit/layout"
	"github.com/fmtkit/fmtkit/printer"
	"github.com/fmtkit/fmtkit/trace"
)

// methodChain builds target.getter.method(arg).another.method(arg),
// a chain with one leading property and a mix of calls after it.
func methodChain(b *layout.Builder) *layout.Chain {
	call := func() layout.Call {
		return layout.Call{
			Kind: layout.SplittableCall,
			Body: b.Seq(b.Text(".method"), b.List("(", ")", b.Text("arg"))),
		}
	}
	return b.Chain(b.Text("target"), []layout.Call{
		{Kind: layout.PropertyCall, Body: b.Text(".getter")},
		call(),
		{Kind: layout.PropertyCall, Body: b.Text(".another")},
		call(),
	})
}

func TestSolveFitsUnsplit(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	chain := methodChain(b)
	layout.Finalize(chain)

	res := layout.Solve(chain, 60)
	assert.Zero(t, res.Cost())
	assert.Zero(t, res.Overflow())
	assert.True(t, res.Of(chain).IsUnsplit())
	assert.Equal(t, "target.getter.method(arg).another.method(arg)",
		printer.Print(chain, res))
}

func TestSolvePrefersSplitAfterProperties(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	chain := methodChain(b)
	layout.Finalize(chain)

	// Too narrow to stay flat. Splitting after the leading property and a
	// full split both cost 1; the lower-valued state breaks the tie.
	res := layout.Solve(chain, 20)
	assert.Equal(t, 1, res.Cost())
	assert.Zero(t, res.Overflow())
	state := res.Of(chain)
	assert.False(t, state.IsUnsplit())
	assert.False(t, state.IsFullSplit())
	assert.Equal(t,
		"target.getter\n    .method(arg)\n    .another\n    .method(arg)",
		printer.Print(chain, res))
}

func TestSolveSplitsPropertyChain(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	property := func(name string) layout.Call {
		return layout.Call{Kind: layout.PropertyCall, Body: b.Text(name)}
	}
	chain := b.Chain(b.Text("target"), []layout.Call{
		property(".propertyA"), property(".propertyB"), property(".propertyC"),
	})
	layout.Finalize(chain)

	// An all-property chain has only the expensive full split to offer.
	res := layout.Solve(chain, 15)
	assert.Equal(t, 2, res.Cost())
	assert.Zero(t, res.Overflow())
	assert.True(t, res.Of(chain).IsFullSplit())
	assert.Equal(t,
		"target\n    .propertyA\n    .propertyB\n    .propertyC",
		printer.Print(chain, res))
}

func TestSolveSplitsCascadeForFree(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	chain := b.Chain(b.Text("paint"), []layout.Call{
		{Kind: layout.UnsplittableCall, Body: b.Text("..fill()")},
		{
			Kind: layout.BlockFormatCall,
			Body: b.Seq(b.Text("..stroke"), b.List("(", ")", b.Text("width"), b.Text("cap"))),
		},
	}, layout.Cascade())
	layout.Finalize(chain)

	res := layout.Solve(chain, 25)
	assert.Zero(t, res.Cost())
	assert.Zero(t, res.Overflow())
	assert.True(t, res.Of(chain).IsFullSplit())
	assert.Equal(t,
		"paint\n  ..fill()\n  ..stroke(width, cap)",
		printer.Print(chain, res))
}

func TestSolveBlockFormatsTrailingCall(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	args := b.List("(", ")", b.Text("aaaa"), b.Text("bbbb"))
	chain := b.Chain(b.Text("recv"), []layout.Call{
		{Kind: layout.BlockFormatCall, Body: b.Seq(b.Text(".method"), args)},
		{Kind: layout.PropertyCall, Body: b.Text(".first")},
	})
	layout.Finalize(chain)

	// Splitting just the argument list keeps the chain itself on one
	// visual line and beats fully splitting the chain.
	res := layout.Solve(chain, 20)
	assert.Equal(t, 1, res.Cost())
	assert.Zero(t, res.Overflow())
	assert.False(t, res.Of(chain).IsUnsplit())
	assert.False(t, res.Of(chain).IsFullSplit())
	assert.True(t, res.Of(args).IsFullSplit())
	assert.Equal(t,
		"recv.method(\n  aaaa,\n  bbbb,\n).first",
		printer.Print(chain, res))
}

func TestSolveMinimizesOverflowFirst(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	chain := methodChain(b)
	layout.Finalize(chain)

	// Nothing fits in 10 columns; the solver still returns the assignment
	// with the least overflow rather than the cheapest one.
	res := layout.Solve(chain, 10)
	assert.Positive(t, res.Overflow())
	assert.Positive(t, res.Cost())
	assert.False(t, res.Of(chain).IsUnsplit())
}

func TestSolveEagerlyPinsWideInfix(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	infix := b.Infix("+", b.Text("alpha"), b.Text("bravo"), b.Text("charlie"))
	layout.Finalize(infix)

	var counts trace.Counts
	res := layout.Solve(infix, 15, layout.WithCollector(&counts))
	assert.True(t, res.Of(infix).IsFullSplit())
	assert.Zero(t, res.Overflow())
	assert.EqualValues(t, 1, counts.Get(trace.EagerPin))
	assert.Equal(t,
		"alpha\n    + bravo\n    + charlie",
		printer.Print(infix, res))
}

func TestSolveSplitsList(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	list := b.List("[", "]", b.Text("alpha"), b.Text("bravo"), b.Text("charlie"))
	layout.Finalize(list)

	res := layout.Solve(list, 10)
	assert.Equal(t, 1, res.Cost())
	assert.Zero(t, res.Overflow())
	assert.Equal(t,
		"[\n  alpha,\n  bravo,\n  charlie,\n]",
		printer.Print(list, res))
}

func TestSolveIsDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *layout.Chain {
		b := layout.NewBuilder(nil)
		chain := methodChain(b)
		layout.Finalize(chain)
		return chain
	}

	first := build()
	second := build()
	a := printer.Print(first, layout.Solve(first, 20))
	z := printer.Print(second, layout.Solve(second, 20))
	if diff := cmp.Diff(a, z); diff != "" {
		t.Fatalf("solver output differs between runs:\n%s", diff)
	}
}

func TestSolveHonorsPins(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	chain := methodChain(b)
	layout.Finalize(chain)
	layout.Pin(chain, layout.FullSplit(1))

	// Even at a width where the chain fits flat, a pinned state stands.
	res := layout.Solve(chain, 80)
	assert.True(t, res.Of(chain).IsFullSplit())
	assert.Equal(t, 1, res.Cost())
}

func TestSolveRejectsBadInput(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	text := b.Text("x")
	require.Panics(t, func() { layout.Solve(text, 80) },
		"solving before finalization must panic")

	layout.Finalize(text)
	require.Panics(t, func() { layout.Solve(text, 0) })
}
