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

// Package layout decides how a tree of formattable fragments is split across
// lines.
//
// A [Fragment] is one formattable unit together with its legal line-break
// choices, each expressed as a [State] with an integer cost. A construction
// phase (external to this package) builds a fragment tree bottom-up and calls
// [Finalize] on the root; [Solve] then assigns exactly one state to every
// stateful fragment, minimizing total cost subject to a page width and to
// per-state [Shape] constraints that parents impose on their children.
//
// Rendering is decoupled through the [Sink] interface: a fragment's
// [Fragment.Render] describes its output for a resolved state in terms of
// text, line breaks, and scoped indentation, and the same description is used
// both to measure candidate solutions and to emit the final text (see the
// printer package).
//
// The package is strictly sequential: construction, solving, and rendering
// are three phases over one tree, and none of its types are safe for
// concurrent use.
package layout
