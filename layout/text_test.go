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
)

func TestTextWidthIsDisplayWidth(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)

	// Display columns, not bytes or runes.
	accented := b.Text("héllo")
	Finalize(accented)
	assert.Equal(t, 5, accented.Width())

	emoji := b.Text("a🙂b")
	Finalize(emoji)
	assert.Equal(t, 4, emoji.Width())
}

func TestTextMultiline(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	text := b.Text("aaaa\nbb")
	Finalize(text)

	assert.True(t, text.ForcesNewline(Unsplit))
	assert.Empty(t, text.LegalStates())
}

func TestStatelessEdges(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)

	// Nothing to split in an empty list or a one-operand infix.
	empty := b.List("(", ")")
	Finalize(empty)
	assert.Empty(t, empty.LegalStates())
	assert.Equal(t, 2, empty.Width())

	lone := b.Infix("+", b.Text("x"))
	Finalize(lone)
	assert.Empty(t, lone.LegalStates())
	assert.Equal(t, 1, lone.Width())
}

func TestListWidthIncludesSeparators(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	list := b.List("[", "]", b.Text("aa"), b.Text("bb"), b.Text("cc"))
	Finalize(list)

	// "[aa, bb, cc]"
	assert.Equal(t, 12, list.Width())
}
