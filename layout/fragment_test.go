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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeMetrics(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	list := b.List("(", ")", b.Text("aa"), b.Text("bbb"))
	seq := b.Seq(b.Text(".call"), list)
	Finalize(seq)

	// "(aa, bbb)" is nine columns; ".call" is five more.
	assert.Equal(t, 9, list.Width())
	assert.Equal(t, 14, seq.Width())

	assert.False(t, seq.ForcesNewline(Unsplit))
	assert.True(t, list.ForcesNewline(FullSplit(1)))
}

func TestFinalizeHardBreak(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	multiline := b.Text("first\nsecond")
	seq := b.Seq(b.Text("x"), multiline)
	Finalize(seq)

	assert.True(t, multiline.ForcesNewline(Unsplit))
	assert.True(t, seq.ForcesNewline(Unsplit), "a hard break beneath must fold upward")
	// Character count ignores splitting: both lines are counted.
	assert.Equal(t, 11, multiline.Width())
}

func TestFinalizeStatefulDescendants(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	inner := b.List("(", ")", b.Text("x"))
	chain := b.Chain(b.Text("recv"), []Call{
		{Kind: SplittableCall, Body: b.Seq(b.Text(".f"), inner)},
	})
	Finalize(chain)

	// The chain and the argument list are the only fragments whose state
	// matters; text leaves contribute no search dimension.
	require.Equal(t, []Fragment{chain, inner}, chain.base().stateful)
}

func TestMetricsBeforeFinalize(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	text := b.Text("abc")
	assert.Panics(t, func() { text.Width() })
	assert.Panics(t, func() { text.ForcesNewline(Unsplit) })
}

func TestFinalizeRejectsSharedNodes(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	shared := b.Text("x")
	seq := b.Seq(shared, shared)
	assert.Panics(t, func() { Finalize(seq) })
}

func TestPinIdempotent(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	list := b.List("(", ")", b.Text("x"))
	Finalize(list)

	full := list.LegalStates()[0]
	Pin(list, full)
	Pin(list, Unsplit) // no-op; already pinned

	state, ok := list.Pinned()
	require.True(t, ok)
	assert.Equal(t, full, state)
}

func TestPinClosedUnderConstraints(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	args := b.List("(", ")", b.Text("a"), b.Text("b"))
	chain := b.Chain(b.Text("recv"), []Call{
		{Kind: PropertyCall, Body: b.Text(".p")},
		{Kind: SplittableCall, Body: b.Seq(b.Text(".f"), args)},
	})
	Finalize(chain)

	// Pinning the chain unsplit forces every call inline, which in turn
	// pins the argument list unsplit.
	Pin(chain, Unsplit)

	state, ok := args.Pinned()
	require.True(t, ok, "pinned set must be closed under the constraint relation")
	assert.True(t, state.IsUnsplit())
}

func TestPinRejectsUndeclaredState(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	list := b.List("(", ")", b.Text("x"))
	Finalize(list)

	assert.Panics(t, func() { Pin(list, NewState(7, 0)) })
}
