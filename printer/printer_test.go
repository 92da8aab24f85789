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

package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmtkit/fmtkit/layout"
	"github.com/fmtkit/fmtkit/printer"
)

func TestPrintFlat(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	seq := b.Seq(b.Text("alpha"), b.Text("bravo"))
	layout.Finalize(seq)

	got := printer.Print(seq, layout.Solve(seq, 80))
	assert.Equal(t, "alphabravo", got)
	assert.False(t, strings.HasSuffix(got, "\n"), "output carries no trailing newline")
}

func TestPrintIndentsContinuationLines(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	list := b.List("(", ")", b.Text("first\nsecond"))
	layout.Finalize(list)

	// The embedded hard break forces the list open; the text's second line
	// picks up the list's indentation.
	got := printer.Print(list, layout.Solve(list, 80))
	assert.Equal(t, "(\n  first\n  second,\n)", got)
}

func TestPrintPreservesBlankLines(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	text := b.Text("alpha\n\nbravo")
	layout.Finalize(text)

	got := printer.Print(text, layout.Solve(text, 80))
	assert.Equal(t, "alpha\n\nbravo", got)
}

func TestPrintNestedIndent(t *testing.T) {
	t.Parallel()

	b := layout.NewBuilder(nil)
	inner := b.List("[", "]", b.Text("aaaa"), b.Text("bbbb"))
	outer := b.List("(", ")", b.Text("head"), inner)
	layout.Finalize(outer)

	got := printer.Print(outer, layout.Solve(outer, 10))
	assert.Equal(t, "(\n  head,\n  [\n    aaaa,\n    bbbb,\n  ],\n)", got)
}
