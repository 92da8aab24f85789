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

const (
	// Inline fits on a single line.
	Inline Shape = iota
	// Block is a delimited, indented multi-line body, such as a split
	// argument list or collection literal.
	Block
	// Headline is one leading line followed by indented continuation lines.
	Headline
	// Other is multi-line output with no more specific classification.
	Other

	shapeCount
)

// Shape classifies the visual result of rendering a fragment in a given
// state. Parents use shapes to constrain which layouts they tolerate in
// their children; see [Fragment.ChildShapeConstraint].
type Shape byte

// Merge combines the shapes of two adjacent renderings.
//
// Inline is the identity: merging with it yields the other operand. Any two
// non-inline shapes merge to [Other]. Merge is associative and commutative.
func (s Shape) Merge(t Shape) Shape {
	switch {
	case s == Inline:
		return t
	case t == Inline:
		return s
	default:
		return Other
	}
}

// String implements [fmt.Stringer].
func (s Shape) String() string {
	switch s {
	case Inline:
		return "inline"
	case Block:
		return "block"
	case Headline:
		return "headline"
	default:
		return "other"
	}
}

// AllShapes is the shape set that permits everything.
const AllShapes ShapeSet = 1<<shapeCount - 1

// ShapeSet is a set of [Shape]s, used for child shape constraints.
type ShapeSet uint8

// Only returns the set containing exactly the given shapes.
func Only(shapes ...Shape) ShapeSet {
	var set ShapeSet
	for _, s := range shapes {
		set |= 1 << s
	}
	return set
}

// Contains reports whether s is in the set.
func (set ShapeSet) Contains(s Shape) bool {
	return set&(1<<s) != 0
}
