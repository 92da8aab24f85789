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
	"strings"

	"github.com/rivo/uniseg"
)

// Text is a leaf fragment: literal text with no layout choices of its own.
//
// Embedded newlines are hard breaks; a fragment containing such a leaf can
// never render inline.
type Text struct {
	Base

	lines []string
}

func newText(text string) *Text {
	t := &Text{lines: strings.Split(text, "\n")}
	for _, line := range t.lines {
		t.ownWidth += uniseg.StringWidth(line)
	}
	t.ownBreak = len(t.lines) > 1
	return t
}

// Render implements [Fragment].
func (t *Text) Render(sink Sink, _ State) {
	for i, line := range t.lines {
		if i > 0 {
			sink.Newline()
		}
		if line != "" {
			sink.Text(line)
		}
	}
}

// Seq is a stateless concatenation of fragments, rendered in order with no
// separators. It exists so that composite content, such as a call's name and
// argument list, can stand where a single fragment is expected.
type Seq struct {
	Base
}

func newSeq(children []Fragment) *Seq {
	return &Seq{Base: Base{children: children}}
}

// Render implements [Fragment].
func (s *Seq) Render(sink Sink, _ State) {
	for _, child := range s.children {
		sink.Render(child, false)
	}
}
