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

// Package slicesx contains extensions to Go's package slices.
package slicesx

import (
	"golang.org/x/exp/constraints"
)

// Last returns the last element of the slice, unless it is empty, in which
// case it returns the zero value and false.
func Last[S ~[]E, E any](s S) (element E, ok bool) {
	if len(s) == 0 {
		return element, false
	}
	return s[len(s)-1], true
}

// Pop removes the last element of the slice and returns it, if the slice is
// nonempty.
func Pop[S ~[]E, E any](s *S) (element E, ok bool) {
	element, ok = Last(*s)
	if ok {
		*s = (*s)[:len(*s)-1]
	}
	return element, ok
}

// Sum adds up the elements of the slice.
func Sum[S ~[]E, E constraints.Integer](s S) E {
	var total E
	for _, e := range s {
		total += e
	}
	return total
}
